package jobs

import (
	"context"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

// Repository persists and reads job postings.
type Repository interface {
	Save(ctx context.Context, job *domain.Job) error
	Get(ctx context.Context, id string) (domain.Job, error)
	List(ctx context.Context) ([]domain.Job, error)
}

// Embedder vectorizes the job's combined text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
