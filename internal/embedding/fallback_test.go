package embedding

import (
	"context"
	"math"
	"reflect"
	"testing"
)

func TestFallback_Dimension(t *testing.T) {
	f := NewFallback(768)
	res, err := f.Embed(context.Background(), "go developer with go experience")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embedding) != 768 {
		t.Errorf("dimension = %d, want 768", len(res.Embedding))
	}
}

func TestFallback_DefaultDimension(t *testing.T) {
	f := NewFallback(0)
	if f.Dimensions() != 768 {
		t.Errorf("Dimensions() = %d, want 768", f.Dimensions())
	}
}

func TestFallback_EmptyTextZeroVector(t *testing.T) {
	f := NewFallback(16)
	for _, text := range []string{"", "   ", "\n\t", "!!! ---"} {
		res, err := f.Embed(context.Background(), text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, v := range res.Embedding {
			if v != 0 {
				t.Fatalf("Embed(%q)[%d] = %v, want 0", text, i, v)
			}
		}
	}
}

func TestFallback_Normalized(t *testing.T) {
	f := NewFallback(768)
	res, _ := f.Embed(context.Background(), "kubernetes docker go go go python terraform")

	var norm float64
	for _, v := range res.Embedding {
		norm += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(norm)-1) > 1e-5 {
		t.Errorf("norm = %v, want 1", math.Sqrt(norm))
	}
}

func TestFallback_Deterministic(t *testing.T) {
	f := NewFallback(768)
	text := "senior backend engineer go postgres kafka kubernetes aws"

	a, _ := f.Embed(context.Background(), text)
	b, _ := f.Embed(context.Background(), text)
	if !reflect.DeepEqual(a.Embedding, b.Embedding) {
		t.Error("fallback embedding is not deterministic")
	}
}

func TestFallback_FrequencyRanking(t *testing.T) {
	// "go" appears 3x, "java" 1x: slot 0 carries the most frequent token's
	// frequency, so before normalization slot 0 > slot 1.
	f := NewFallback(4)
	res, _ := f.Embed(context.Background(), "go go go java")

	if res.Embedding[0] <= res.Embedding[1] {
		t.Errorf("slot 0 (%v) should exceed slot 1 (%v)", res.Embedding[0], res.Embedding[1])
	}
	// Cycling: with 2 distinct tokens, slots 0/2 and 1/3 repeat.
	if res.Embedding[0] != res.Embedding[2] || res.Embedding[1] != res.Embedding[3] {
		t.Errorf("vector does not cycle through ranked tokens: %v", res.Embedding)
	}
}

func TestFallback_CaseInsensitiveTokens(t *testing.T) {
	f := NewFallback(32)
	a, _ := f.Embed(context.Background(), "Go Developer")
	b, _ := f.Embed(context.Background(), "go developer")
	if !reflect.DeepEqual(a.Embedding, b.Embedding) {
		t.Error("tokenization should lowercase input")
	}
}
