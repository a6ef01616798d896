// Package extract turns raw resume text into structured fields. The primary
// extractor is an LLM behind an OpenAI-compatible API; a regex extractor
// serves as the deterministic fallback, mirroring how embedding generation
// degrades.
package extract

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

// Extractor produces structured fields from raw resume text.
type Extractor interface {
	Extract(ctx context.Context, resumeText string) (domain.ParsedData, error)
}

// Chain tries the primary extractor and falls back on any failure. Its
// Extract never returns a non-nil error as long as fallback does not.
type Chain struct {
	primary  Extractor
	fallback Extractor
	logger   *zap.Logger
}

// NewChain creates an extraction chain. primary may be nil, in which case the
// fallback runs directly. logger may be nil.
func NewChain(primary, fallback Extractor, logger *zap.Logger) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{primary: primary, fallback: fallback, logger: logger}
}

// Extract implements Extractor.
func (c *Chain) Extract(ctx context.Context, resumeText string) (domain.ParsedData, error) {
	if c.primary != nil {
		parsed, err := c.primary.Extract(ctx, resumeText)
		if err == nil {
			return parsed, nil
		}
		c.logger.Warn("primary extraction failed, falling back to regex", zap.Error(err))
	}
	return c.fallback.Extract(ctx, resumeText)
}

var ssnPattern = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)

// DetectPII flags the kinds of personal data present in an extracted resume.
func DetectPII(rawText string, parsed domain.ParsedData) domain.PIIFlags {
	return domain.PIIFlags{
		HasEmail:          parsed.Email != "",
		HasPhone:          parsed.Phone != "",
		HasAddress:        parsed.Location != "",
		HasSocialSecurity: ssnPattern.MatchString(rawText),
	}
}
