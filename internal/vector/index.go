package vector

import "github.com/hyperjump/trialsearch/internal/tfidf"

// Index ranks every document against a query vector.
type Index interface {
	Rank(query tfidf.SparseVector) []Result
	Size() int
}

// Result is one entry of a ranking: a document index and its similarity to the query.
type Result struct {
	Index int
	Score float64
}
