package tfidf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparseVector_Dot(t *testing.T) {
	v := SparseVector{Indices: []int{0, 2, 5}, Values: []float64{1, 2, 3}}
	w := SparseVector{Indices: []int{2, 3, 5}, Values: []float64{4, 7, 1}}

	assert.InDelta(t, 2*4+3*1, v.Dot(w), 1e-12)
	assert.InDelta(t, v.Dot(w), w.Dot(v), 1e-12)
	assert.Zero(t, v.Dot(SparseVector{}))
}

func TestSparseVector_Norm(t *testing.T) {
	v := SparseVector{Indices: []int{1, 4}, Values: []float64{3, 4}}
	assert.InDelta(t, 5.0, v.Norm(), 1e-12)
	assert.Equal(t, 2, v.Len())
	assert.False(t, v.IsZero())
	assert.True(t, SparseVector{}.IsZero())
}
