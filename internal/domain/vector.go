package domain

import "math"

// Cosine computes cosine similarity between two vectors in a single pass.
// It is total: nil inputs, mismatched lengths, and zero-norm vectors all
// yield 0 rather than an error or NaN. Vectors of differing dimension are
// treated as unrelated, not invalid.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
