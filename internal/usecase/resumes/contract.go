package resumes

import (
	"context"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

// Repository reads stored resumes.
type Repository interface {
	Get(ctx context.Context, id string) (domain.Resume, error)
	List(ctx context.Context) ([]domain.Resume, error)
}
