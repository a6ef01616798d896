// Package search scores the resume corpus against a free-form query.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/akash62835/ResumeRAG/internal/domain"
	"github.com/akash62835/ResumeRAG/internal/evidence"
	"github.com/akash62835/ResumeRAG/internal/metrics"
	"github.com/akash62835/ResumeRAG/internal/worker"
)

// DefaultK is the number of results returned when the request does not ask
// for a specific count.
const DefaultK = 5

// Result is one ranked resume with its supporting evidence.
type Result struct {
	ResumeID      string
	CandidateName string
	Score         float64
	Evidence      []evidence.Snippet
	Parsed        domain.ParsedData
}

// Response is a ranked answer over the whole corpus.
type Response struct {
	Results       []Result
	TotalSearched int
}

// Service ranks resumes by semantic similarity to a query.
type Service struct {
	resumes ResumeReader
	embed   Embedder
	pool    *ants.Pool
}

// New creates a search service. pool may be nil, which degrades scoring to a
// sequential scan.
func New(resumes ResumeReader, embed Embedder, pool *ants.Pool) *Service {
	return &Service{resumes: resumes, embed: embed, pool: pool}
}

// Search embeds the query, scores every embedded resume against it, and
// returns the top k in deterministic order.
func (s *Service) Search(ctx context.Context, query string, k int) (Response, error) {
	if strings.TrimSpace(query) == "" {
		return Response{}, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}
	if k < 1 {
		return Response{}, fmt.Errorf("%w: k must be at least 1", domain.ErrValidation)
	}

	start := time.Now()
	defer func() {
		metrics.SearchDuration.WithLabelValues("ask").Observe(time.Since(start).Seconds())
	}()

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		return Response{}, fmt.Errorf("vectorize query: %w", err)
	}
	queryVec := embResult.Embedding

	all, err := s.resumes.List(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("list resumes: %w", err)
	}

	eligible := all[:0:0]
	for _, r := range all {
		if r.HasEmbedding() {
			eligible = append(eligible, r)
		}
	}
	metrics.SearchDocumentsScanned.WithLabelValues("ask").Add(float64(len(eligible)))

	results := make([]Result, len(eligible))
	worker.ForEach(s.pool, len(eligible), func(i int) {
		r := eligible[i]
		results[i] = Result{
			ResumeID:      r.ID,
			CandidateName: r.CandidateName(),
			Score:         domain.Cosine(queryVec, r.Embedding),
			Evidence:      evidence.Extract(queryVec, r.Chunks, -1),
			Parsed:        r.Parsed,
		}
	})

	sort.Slice(results, func(i, j int) bool {
		return domain.RankLess(results[i].Score, results[j].Score, results[i].ResumeID, results[j].ResumeID)
	})
	if len(results) > k {
		results = results[:k]
	}

	return Response{Results: results, TotalSearched: len(eligible)}, nil
}
