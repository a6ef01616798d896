// Package resumes serves stored resumes for browsing.
package resumes

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

// DefaultLimit is the page size used when the request does not set one.
const DefaultLimit = 10

// ListRequest selects a page of resumes, optionally filtered by a
// case-insensitive substring query over candidate name, skills, and raw text.
type ListRequest struct {
	Query  string
	Limit  int
	Offset int
}

// ListResponse is one page plus the total count after filtering.
type ListResponse struct {
	Resumes []domain.Resume
	Total   int
	Limit   int
	Offset  int
}

// Service reads resumes.
type Service struct {
	repo Repository
}

// New creates a resume read service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a resume by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Resume, error) {
	if id == "" {
		return domain.Resume{}, fmt.Errorf("%w: resume id is required", domain.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// List returns a page of resumes, newest upload first.
func (s *Service) List(ctx context.Context, req ListRequest) (ListResponse, error) {
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list resumes: %w", err)
	}

	filtered := all
	if q := strings.ToLower(strings.TrimSpace(req.Query)); q != "" {
		filtered = all[:0:0]
		for _, r := range all {
			if matchesQuery(&r, q) {
				filtered = append(filtered, r)
			}
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].UploadedAt.Equal(filtered[j].UploadedAt) {
			return filtered[i].ID < filtered[j].ID
		}
		return filtered[i].UploadedAt.After(filtered[j].UploadedAt)
	})

	total := len(filtered)
	page := filtered[min(req.Offset, total):min(req.Offset+req.Limit, total)]

	return ListResponse{Resumes: page, Total: total, Limit: req.Limit, Offset: req.Offset}, nil
}

func matchesQuery(r *domain.Resume, q string) bool {
	if strings.Contains(strings.ToLower(r.Parsed.Name), q) {
		return true
	}
	for _, skill := range r.Parsed.Skills {
		if strings.Contains(strings.ToLower(skill), q) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(r.RawText), q)
}
