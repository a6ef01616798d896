package match

import (
	"context"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

// JobReader loads the job being matched against.
type JobReader interface {
	Get(ctx context.Context, id string) (domain.Job, error)
}

// ResumeReader loads the resume corpus for scanning.
type ResumeReader interface {
	List(ctx context.Context) ([]domain.Resume, error)
}
