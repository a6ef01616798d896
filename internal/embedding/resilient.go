package embedding

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/akash62835/ResumeRAG/internal/domain"
	"github.com/akash62835/ResumeRAG/internal/metrics"
)

// DefaultMaxChars is the input cap applied before calling the provider.
const DefaultMaxChars = 10000

// Resilient decorates a provider embedder so that no failure escapes this
// boundary: empty input short-circuits to the zero vector, oversized input is
// truncated, and any provider error or malformed response resolves to the
// deterministic fallback. Embed never returns a non-nil error, which lets
// downstream similarity code skip provider failure handling entirely.
type Resilient struct {
	provider domain.Embedder
	fallback *Fallback
	maxChars int
	timeout  time.Duration
	logger   *zap.Logger
}

// NewResilient wraps provider with the fallback of the given dimension.
// timeout bounds each provider call; zero disables the bound. logger may be
// nil.
func NewResilient(provider domain.Embedder, dimensions, maxChars int, timeout time.Duration, logger *zap.Logger) *Resilient {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resilient{
		provider: provider,
		fallback: NewFallback(dimensions),
		maxChars: maxChars,
		timeout:  timeout,
		logger:   logger,
	}
}

// Embed implements domain.Embedder. The returned error is always nil.
func (r *Resilient) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.EmbeddingResult{Embedding: make([]float32, r.fallback.Dimensions())}, nil
	}

	text = truncate(text, r.maxChars)

	if r.provider != nil {
		callCtx := ctx
		if r.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}

		res, err := r.provider.Embed(callCtx, text)
		if err == nil && len(res.Embedding) == r.fallback.Dimensions() {
			return res, nil
		}

		metrics.EmbeddingFallbackTotal.Inc()
		if err != nil {
			r.logger.Warn("embedding provider failed, using local fallback", zap.Error(err))
		} else {
			r.logger.Warn("embedding provider returned wrong dimension, using local fallback",
				zap.Int("got", len(res.Embedding)),
				zap.Int("want", r.fallback.Dimensions()),
			)
		}
	}

	return r.fallback.Embed(ctx, text)
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
