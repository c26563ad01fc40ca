// Package vector holds the document vector table and the cosine-similarity ranker.
package vector

import "github.com/hyperjump/trialsearch/internal/tfidf"

// CosineSimilarity returns the cosine of the angle between a and b, or 0 when either is
// the zero vector.
func CosineSimilarity(a, b tfidf.SparseVector) float64 {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}
