// Package embedding provides the deterministic local embedder and the
// resilient decorator that guarantees every caller receives a vector of the
// configured dimension, whatever the external provider does.
package embedding

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

// maxFallbackTokens caps how many distinct tokens feed the fallback vector.
const maxFallbackTokens = 100

var tokenPattern = regexp.MustCompile(`\w+`)

// Fallback is a deterministic term-frequency embedder. It is pure CPU work,
// needs no external resource, and always returns a vector of the configured
// dimension with a nil error.
type Fallback struct {
	dimensions int
}

// NewFallback creates a fallback embedder of the given dimension.
func NewFallback(dimensions int) *Fallback {
	if dimensions <= 0 {
		dimensions = domain.DefaultDimensions
	}
	return &Fallback{dimensions: dimensions}
}

// Dimensions returns the vector dimension this embedder produces.
func (f *Fallback) Dimensions() int { return f.dimensions }

// Embed builds a term-frequency vector: tokenize to lowercase word tokens,
// rank distinct tokens by frequency (ties by token, ascending, so the ranking
// is reproducible), keep the top 100, then fill the vector by cycling through
// the ranked list with each slot carrying its token's frequency. The result
// is L2-normalized; a zero norm yields the all-zero vector.
func (f *Fallback) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	vec := make([]float32, f.dimensions)

	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return domain.EmbeddingResult{Embedding: vec}, nil
	}

	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}

	ranked := make([]string, 0, len(freq))
	for tok := range freq {
		ranked = append(ranked, tok)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if freq[ranked[i]] != freq[ranked[j]] {
			return freq[ranked[i]] > freq[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > maxFallbackTokens {
		ranked = ranked[:maxFallbackTokens]
	}

	var norm float64
	for i := range vec {
		v := float64(freq[ranked[i%len(ranked)]])
		vec[i] = float32(v)
		norm += v * v
	}
	if norm == 0 {
		return domain.EmbeddingResult{Embedding: vec}, nil
	}

	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return domain.EmbeddingResult{Embedding: vec}, nil
}
