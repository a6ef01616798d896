// Package job persists job postings as JSON documents in the key-value store.
package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/akash62835/ResumeRAG/internal/db"
	"github.com/akash62835/ResumeRAG/internal/domain"
)

// store is the consumer interface for job persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the job repository over db.Store.
type Repo struct {
	store  store
	prefix string
}

// New creates a job repository. prefix namespaces all keys.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = "resumerag:"
	}
	return &Repo{store: s, prefix: prefix}
}

func (r *Repo) key(id string) string {
	return r.prefix + "job:" + id
}

// Save creates or replaces a job.
func (r *Repo) Save(ctx context.Context, j *domain.Job) error {
	data, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", j.ID, err)
	}
	if err := r.store.Set(ctx, r.key(j.ID), data); err != nil {
		return fmt.Errorf("set job %s: %w", j.ID, err)
	}
	return nil
}

// Get returns a job by id.
func (r *Repo) Get(ctx context.Context, id string) (domain.Job, error) {
	raw, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Job{}, domain.ErrJobNotFound
		}
		return domain.Job{}, fmt.Errorf("get job %s: %w", id, err)
	}

	var j domain.Job
	if err := json.Unmarshal(raw, &j); err != nil {
		return domain.Job{}, fmt.Errorf("unmarshal job %s: %w", id, err)
	}
	return j, nil
}

// List returns every stored job in ascending id order. Records that fail to
// decode are skipped.
func (r *Repo) List(ctx context.Context) ([]domain.Job, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"job:*")
	if err != nil {
		return nil, fmt.Errorf("scan jobs: %w", err)
	}
	sort.Strings(keys)

	jobs := make([]domain.Job, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("get %s: %w", key, err)
		}
		var j domain.Job
		if err := json.Unmarshal(raw, &j); err != nil {
			continue
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}
