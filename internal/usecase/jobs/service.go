// Package jobs manages job postings.
package jobs

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

// DefaultLimit is the page size used when the request does not set one.
const DefaultLimit = 10

// CreateInput carries a new job posting.
type CreateInput struct {
	Title        string
	Company      string
	Description  string
	Requirements string
	Structured   domain.Requirements
	Location     string
	Salary       string
	CreatedBy    string
}

// ListRequest selects a page of jobs filtered by status.
type ListRequest struct {
	Status string
	Limit  int
	Offset int
}

// ListResponse is one page plus the total count after filtering.
type ListResponse struct {
	Jobs   []domain.Job
	Total  int
	Limit  int
	Offset int
}

// Service manages job postings.
type Service struct {
	repo  Repository
	embed Embedder
}

// New creates a jobs service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// Create validates, embeds, and stores a job posting.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Job, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Job{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Company) == "" {
		return domain.Job{}, fmt.Errorf("%w: company is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return domain.Job{}, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Requirements) == "" {
		return domain.Job{}, fmt.Errorf("%w: requirements is required", domain.ErrValidation)
	}

	job := domain.Job{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Company:      in.Company,
		Description:  in.Description,
		Requirements: in.Requirements,
		Structured:   in.Structured,
		Location:     in.Location,
		Salary:       in.Salary,
		Status:       domain.JobStatusOpen,
		CreatedBy:    in.CreatedBy,
		CreatedAt:    time.Now().UTC(),
	}

	embResult, err := s.embed.Embed(ctx, job.CombinedText())
	if err != nil {
		return domain.Job{}, fmt.Errorf("embed job: %w", err)
	}
	job.Embedding = embResult.Embedding

	if err := s.repo.Save(ctx, &job); err != nil {
		return domain.Job{}, fmt.Errorf("save job: %w", err)
	}
	return job, nil
}

// Get returns a job by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Job, error) {
	if id == "" {
		return domain.Job{}, fmt.Errorf("%w: job id is required", domain.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// List returns a page of jobs with the given status (default open), newest
// first.
func (s *Service) List(ctx context.Context, req ListRequest) (ListResponse, error) {
	if req.Status == "" {
		req.Status = domain.JobStatusOpen
	}
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list jobs: %w", err)
	}

	filtered := all[:0:0]
	for _, j := range all {
		if j.Status == req.Status {
			filtered = append(filtered, j)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].ID < filtered[j].ID
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := len(filtered)
	page := filtered[min(req.Offset, total):min(req.Offset+req.Limit, total)]

	return ListResponse{Jobs: page, Total: total, Limit: req.Limit, Offset: req.Offset}, nil
}
