// Package evidence selects the chunk snippets that justify a match.
package evidence

import (
	"sort"
	"unicode/utf8"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

const (
	// MaxSnippets is how many evidence snippets a result carries at most.
	MaxSnippets = 3
	// SnippetChars is the snippet truncation length.
	SnippetChars = 200
	// MatchThreshold is the minimum chunk similarity for job-match evidence.
	// Query search applies no threshold.
	MatchThreshold = 0.7
)

// Snippet is one evidence item: a truncated chunk with its similarity score.
type Snippet struct {
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// Extract scores every chunk against the query vector and returns the top
// snippets in descending similarity order. Chunks without an embedding are
// skipped rather than failing the request. threshold < 0 disables filtering.
func Extract(queryVec []float32, chunks []domain.Chunk, threshold float64) []Snippet {
	type scored struct {
		text string
		sim  float64
	}

	matches := make([]scored, 0, len(chunks))
	for _, ch := range chunks {
		if len(ch.Embedding) == 0 {
			continue
		}
		sim := domain.Cosine(queryVec, ch.Embedding)
		if threshold >= 0 && sim <= threshold {
			continue
		}
		matches = append(matches, scored{text: ch.Text, sim: sim})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].sim > matches[j].sim
	})
	if len(matches) > MaxSnippets {
		matches = matches[:MaxSnippets]
	}

	snippets := make([]Snippet, len(matches))
	for i, m := range matches {
		snippets[i] = Snippet{Snippet: snippet(m.text), Score: m.sim}
	}
	return snippets
}

// snippet truncates text to SnippetChars with an ellipsis when cut.
func snippet(text string) string {
	if len(text) <= SnippetChars {
		return text
	}
	cut := SnippetChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
