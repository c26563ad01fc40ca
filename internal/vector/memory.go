package vector

import (
	"sort"

	"github.com/hyperjump/trialsearch/internal/tfidf"
)

// Table is the immutable document vector table: entry i is the vector of document i.
// It is built once and shared read-only across concurrent queries.
type Table struct {
	vectors []tfidf.SparseVector
}

// NewTable returns a table over a copy of vectors.
func NewTable(vectors []tfidf.SparseVector) *Table {
	return &Table{vectors: append([]tfidf.SparseVector(nil), vectors...)}
}

// Rank scores every document by cosine similarity to query and returns a freshly
// allocated ranking sorted by score descending, ties by document index ascending.
// A zero query scores every document 0, so the ranking is corpus order.
func (t *Table) Rank(query tfidf.SparseVector) []Result {
	results := make([]Result, len(t.vectors))
	for i, vec := range t.vectors {
		results[i] = Result{Index: i, Score: CosineSimilarity(query, vec)}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})
	return results
}

// Vector returns the vector of document i.
func (t *Table) Vector(i int) (tfidf.SparseVector, bool) {
	if i < 0 || i >= len(t.vectors) {
		return tfidf.SparseVector{}, false
	}
	return t.vectors[i], true
}

// Size returns the number of documents in the table.
func (t *Table) Size() int {
	return len(t.vectors)
}
