package utils

import (
	"math"
	"testing"
)

func TestNormalizeL2(t *testing.T) {
	x := []float64{3, 4}
	norm := NormalizeL2(x)
	if norm != 5 {
		t.Errorf("norm = %f, want 5", norm)
	}
	if math.Abs(x[0]-0.6) > 1e-12 || math.Abs(x[1]-0.8) > 1e-12 {
		t.Errorf("normalized = %v, want [0.6 0.8]", x)
	}

	zero := []float64{0, 0}
	if NormalizeL2(zero) != 0 || zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero vector should be unchanged, got %v", zero)
	}
}
