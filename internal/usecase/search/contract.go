package search

import (
	"context"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

// ResumeReader loads the resume corpus for scanning.
type ResumeReader interface {
	List(ctx context.Context) ([]domain.Resume, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
