package embedding

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akash62835/ResumeRAG/internal/domain"
)

type mockProvider struct {
	vec      []float32
	err      error
	called   bool
	lastText string
}

func (m *mockProvider) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.called = true
	m.lastText = text
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func TestResilient_ProviderSuccess(t *testing.T) {
	vec := make([]float32, 8)
	vec[0] = 1
	provider := &mockProvider{vec: vec}
	r := NewResilient(provider, 8, 0, 0, nil)

	res, err := r.Embed(context.Background(), "some text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !provider.called {
		t.Error("provider was not called")
	}
	if res.Embedding[0] != 1 {
		t.Error("provider result was not passed through")
	}
}

func TestResilient_EmptyTextSkipsProvider(t *testing.T) {
	provider := &mockProvider{vec: make([]float32, 8)}
	r := NewResilient(provider, 8, 0, 0, nil)

	res, err := r.Embed(context.Background(), "   \n ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.called {
		t.Error("provider must not be called for whitespace-only text")
	}
	if len(res.Embedding) != 8 {
		t.Fatalf("dimension = %d, want 8", len(res.Embedding))
	}
	for _, v := range res.Embedding {
		if v != 0 {
			t.Fatal("expected zero vector for empty text")
		}
	}
}

func TestResilient_ProviderErrorFallsBack(t *testing.T) {
	provider := &mockProvider{err: errors.New("quota exceeded")}
	r := NewResilient(provider, 16, 0, 0, nil)

	res, err := r.Embed(context.Background(), "go engineer")
	if err != nil {
		t.Fatalf("error must never surface, got: %v", err)
	}
	if len(res.Embedding) != 16 {
		t.Fatalf("dimension = %d, want 16", len(res.Embedding))
	}
	var nonZero bool
	for _, v := range res.Embedding {
		if v != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Error("fallback should produce a non-zero vector for real text")
	}
}

func TestResilient_WrongDimensionFallsBack(t *testing.T) {
	provider := &mockProvider{vec: make([]float32, 3)}
	r := NewResilient(provider, 16, 0, 0, nil)

	res, err := r.Embed(context.Background(), "go engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embedding) != 16 {
		t.Errorf("dimension = %d, want 16", len(res.Embedding))
	}
}

func TestResilient_Truncation(t *testing.T) {
	provider := &mockProvider{vec: make([]float32, 4)}
	r := NewResilient(provider, 4, 100, 0, nil)

	long := strings.Repeat("resume text ", 50)
	if _, err := r.Embed(context.Background(), long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(provider.lastText) > 100 {
		t.Errorf("provider received %d bytes, cap is 100", len(provider.lastText))
	}
}

func TestResilient_NilProviderUsesFallback(t *testing.T) {
	r := NewResilient(nil, 8, 0, 0, nil)
	res, err := r.Embed(context.Background(), "standalone fallback")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embedding) != 8 {
		t.Errorf("dimension = %d, want 8", len(res.Embedding))
	}
}

func TestTruncate_RuneBoundary(t *testing.T) {
	s := "héllo" // é is 2 bytes, starting at index 1
	got := truncate(s, 2)
	if got != "h" {
		t.Errorf("truncate split a rune: %q", got)
	}
	if truncate("abc", 10) != "abc" {
		t.Error("truncate must not alter short strings")
	}
}
