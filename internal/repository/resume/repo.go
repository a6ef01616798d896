// Package resume persists resumes as JSON documents in the key-value store.
package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/akash62835/ResumeRAG/internal/db"
	"github.com/akash62835/ResumeRAG/internal/domain"
)

// store is the consumer interface for resume persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the resume repository over db.Store.
type Repo struct {
	store  store
	prefix string
}

// New creates a resume repository. prefix namespaces all keys.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = "resumerag:"
	}
	return &Repo{store: s, prefix: prefix}
}

func (r *Repo) key(id string) string {
	return r.prefix + "resume:" + id
}

// Save creates or replaces a resume.
func (r *Repo) Save(ctx context.Context, res *domain.Resume) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal resume %s: %w", res.ID, err)
	}
	if err := r.store.Set(ctx, r.key(res.ID), data); err != nil {
		return fmt.Errorf("set resume %s: %w", res.ID, err)
	}
	return nil
}

// Get returns a resume by id.
func (r *Repo) Get(ctx context.Context, id string) (domain.Resume, error) {
	raw, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Resume{}, domain.ErrResumeNotFound
		}
		return domain.Resume{}, fmt.Errorf("get resume %s: %w", id, err)
	}

	var res domain.Resume
	if err := json.Unmarshal(raw, &res); err != nil {
		return domain.Resume{}, fmt.Errorf("unmarshal resume %s: %w", id, err)
	}
	return res, nil
}

// List returns every stored resume in ascending id order. Records that fail
// to decode are skipped rather than failing the whole scan.
func (r *Repo) List(ctx context.Context) ([]domain.Resume, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"resume:*")
	if err != nil {
		return nil, fmt.Errorf("scan resumes: %w", err)
	}
	sort.Strings(keys)

	resumes := make([]domain.Resume, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue // deleted between scan and get
			}
			return nil, fmt.Errorf("get %s: %w", key, err)
		}
		var res domain.Resume
		if err := json.Unmarshal(raw, &res); err != nil {
			continue
		}
		resumes = append(resumes, res)
	}
	return resumes, nil
}

// Delete removes a resume by id.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("del resume %s: %w", id, err)
	}
	return nil
}
