package ingest

import (
	"context"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

// ResumeWriter persists ingested resumes.
type ResumeWriter interface {
	Save(ctx context.Context, res *domain.Resume) error
}

// Embedder vectorizes resume text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Extractor produces structured fields from raw resume text.
type Extractor interface {
	Extract(ctx context.Context, resumeText string) (domain.ParsedData, error)
}

// Chunker splits text into fixed-window chunks with source offsets.
type Chunker interface {
	Chunk(text string) []domain.Chunk
}
