// Package chunker splits resume text into overlapping word windows for
// fine-grained embedding and evidence retrieval.
package chunker

import (
	"unicode"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

// Default window geometry, in words.
const (
	DefaultWindowSize = 500
	DefaultOverlap    = 50
)

// Chunker produces overlapping word windows over source text. It is stateless
// and deterministic for identical input.
type Chunker struct {
	windowSize int
	overlap    int
}

// New creates a chunker with the given window size and overlap, both counted
// in words. Non-positive or inconsistent values fall back to the defaults.
func New(windowSize, overlap int) *Chunker {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if overlap < 0 || overlap >= windowSize {
		overlap = windowSize / 10
	}
	return &Chunker{windowSize: windowSize, overlap: overlap}
}

// span is the byte range of one whitespace-separated word.
type span struct {
	start int
	end   int
}

// Chunk splits text into windows of windowSize words advancing by
// windowSize-overlap words per step. Byte offsets are tracked while splitting,
// so each chunk's text is the exact source slice [StartChar, EndChar) and
// spans stay correct even when window text repeats elsewhere in the document.
// Text shorter than one window yields exactly one chunk covering every word.
// Whitespace before the first word and after the last is outside every span:
// chunks start at the first word's byte and end at their last word's final
// byte.
func (c *Chunker) Chunk(text string) []domain.Chunk {
	words := splitWords(text)
	if len(words) == 0 {
		return []domain.Chunk{{Text: text, StartChar: 0, EndChar: len(text)}}
	}

	stride := c.windowSize - c.overlap
	chunks := make([]domain.Chunk, 0, (len(words)+stride-1)/stride)

	for i := 0; i < len(words); i += stride {
		end := i + c.windowSize
		if end > len(words) {
			end = len(words)
		}

		startChar := words[i].start
		endChar := words[end-1].end
		chunks = append(chunks, domain.Chunk{
			Text:      text[startChar:endChar],
			StartChar: startChar,
			EndChar:   endChar,
		})

		if end == len(words) {
			break
		}
	}

	return chunks
}

// splitWords locates every whitespace-separated word and its byte range.
func splitWords(text string) []span {
	var words []span
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				words = append(words, span{start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, span{start: start, end: len(text)})
	}
	return words
}
