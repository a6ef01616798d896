package domain

import (
	"math"
	"testing"
)

func TestCosine_Identical(t *testing.T) {
	v := []float32{0.3, -1.2, 4.5, 0.01}
	got := Cosine(v, v)
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("Cosine(v, v) = %v, want 1", got)
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	if got := Cosine(a, b); got != 0 {
		t.Errorf("Cosine(orthogonal) = %v, want 0", got)
	}
}

func TestCosine_Opposite(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-1, -2, -3}
	got := Cosine(a, b)
	if math.Abs(got+1) > 1e-6 {
		t.Errorf("Cosine(opposite) = %v, want -1", got)
	}
}

func TestCosine_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
	}{
		{"both nil", nil, nil},
		{"a nil", nil, []float32{1}},
		{"b nil", []float32{1}, nil},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}},
		{"zero norm a", []float32{0, 0}, []float32{1, 2}},
		{"zero norm b", []float32{1, 2}, []float32{0, 0}},
		{"both zero", []float32{0, 0}, []float32{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if got != 0 {
				t.Errorf("Cosine = %v, want 0", got)
			}
			if math.IsNaN(got) {
				t.Error("Cosine returned NaN")
			}
		})
	}
}

func TestCosine_Range(t *testing.T) {
	a := []float32{0.9, 0.1, -0.4}
	b := []float32{0.8, 0.2, -0.5}
	got := Cosine(a, b)
	if got < -1 || got > 1 {
		t.Errorf("Cosine = %v, out of [-1, 1]", got)
	}
}
