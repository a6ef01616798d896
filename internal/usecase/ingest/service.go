// Package ingest turns uploaded resume text into stored, embedded, parsed
// resume records.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/akash62835/ResumeRAG/internal/domain"
	"github.com/akash62835/ResumeRAG/internal/extract"
	"github.com/akash62835/ResumeRAG/internal/worker"
)

// Defaults for ingestion limits.
const (
	// DefaultMaxChunks bounds per-resume chunk embedding cost.
	DefaultMaxChunks = 10
	// DefaultDocEmbedChars bounds the text the document-level embedding sees.
	DefaultDocEmbedChars = 8000
)

// Input is one resume to ingest.
type Input struct {
	Filename string
	Text     string
}

// Failure records one input that could not be ingested in a batch.
type Failure struct {
	Filename string
	Err      error
}

// Service ingests resumes: extraction, PII detection, document and chunk
// embeddings, persistence.
type Service struct {
	resumes   ResumeWriter
	embed     Embedder
	extractor Extractor
	chunker   Chunker
	pool      *ants.Pool
	logger    *zap.Logger

	maxChunks     int
	docEmbedChars int
}

// New creates an ingest service. pool may be nil (sequential chunk
// embedding); logger may be nil. Non-positive limits fall back to defaults.
func New(
	resumes ResumeWriter, embed Embedder, extractor Extractor, chunker Chunker,
	pool *ants.Pool, maxChunks, docEmbedChars int, logger *zap.Logger,
) *Service {
	if maxChunks <= 0 {
		maxChunks = DefaultMaxChunks
	}
	if docEmbedChars <= 0 {
		docEmbedChars = DefaultDocEmbedChars
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		resumes:       resumes,
		embed:         embed,
		extractor:     extractor,
		chunker:       chunker,
		pool:          pool,
		logger:        logger,
		maxChunks:     maxChunks,
		docEmbedChars: docEmbedChars,
	}
}

// Ingest processes a single resume and persists it.
func (s *Service) Ingest(ctx context.Context, in Input) (domain.Resume, error) {
	if strings.TrimSpace(in.Text) == "" {
		return domain.Resume{}, fmt.Errorf("%w: resume text is required", domain.ErrValidation)
	}

	parsed, err := s.extractor.Extract(ctx, in.Text)
	if err != nil {
		return domain.Resume{}, fmt.Errorf("extract %s: %w", in.Filename, err)
	}

	docResult, err := s.embed.Embed(ctx, head(in.Text, s.docEmbedChars))
	if err != nil {
		return domain.Resume{}, fmt.Errorf("embed document %s: %w", in.Filename, err)
	}

	chunks := s.chunker.Chunk(in.Text)
	if len(chunks) > s.maxChunks {
		chunks = chunks[:s.maxChunks]
	}
	worker.ForEach(s.pool, len(chunks), func(i int) {
		res, embErr := s.embed.Embed(ctx, chunks[i].Text)
		if embErr != nil {
			s.logger.Warn("chunk embedding failed",
				zap.String("filename", in.Filename), zap.Int("chunk", i), zap.Error(embErr))
			return
		}
		chunks[i].Embedding = res.Embedding
	})

	res := domain.Resume{
		ID:         uuid.NewString(),
		Filename:   in.Filename,
		RawText:    in.Text,
		Parsed:     parsed,
		PII:        extract.DetectPII(in.Text, parsed),
		Embedding:  docResult.Embedding,
		Chunks:     chunks,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.resumes.Save(ctx, &res); err != nil {
		return domain.Resume{}, fmt.Errorf("save resume %s: %w", in.Filename, err)
	}

	s.logger.Info("resume ingested",
		zap.String("id", res.ID),
		zap.String("filename", res.Filename),
		zap.String("candidate", res.CandidateName()),
		zap.Int("chunks", len(res.Chunks)))

	return res, nil
}

// IngestAll processes a batch, continuing past per-file failures. The
// returned failures are in input order.
func (s *Service) IngestAll(ctx context.Context, inputs []Input) ([]domain.Resume, []Failure) {
	var (
		processed []domain.Resume
		failures  []Failure
	)
	for _, in := range inputs {
		res, err := s.Ingest(ctx, in)
		if err != nil {
			failures = append(failures, Failure{Filename: in.Filename, Err: err})
			continue
		}
		processed = append(processed, res)
	}
	return processed, failures
}

// head returns the first max bytes of s without splitting a rune.
func head(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && s[max]&0xC0 == 0x80 {
		max--
	}
	return s[:max]
}
