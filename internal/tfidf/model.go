// Package tfidf provides the term-weight model: a vocabulary-bounded TF-IDF vectorizer
// fitted once over the normalized corpus and used read-only afterwards.
package tfidf

import (
	"math"
	"sort"

	"github.com/hyperjump/trialsearch/pkg/utils"
)

// DefaultMaxFeatures bounds the vocabulary when Options.MaxFeatures is not set.
const DefaultMaxFeatures = 5000

// Options configures Fit.
type Options struct {
	// MaxFeatures keeps only the terms with the highest corpus-wide counts.
	MaxFeatures int
}

// Model is an immutable vocabulary with smoothed inverse document frequencies.
// All methods are safe for concurrent use.
type Model struct {
	analyzer   *Analyzer
	vocabulary map[string]int
	terms      []string
	idf        []float64
	numDocs    int
}

// Fit builds a model from texts. Terms are ranked by total count across the corpus, ties
// broken alphabetically; the top MaxFeatures are kept and indexed in alphabetical order.
// IDF is ln((1+n)/(1+df)) + 1. Fit is deterministic for identical input.
func Fit(texts []string, opts Options) *Model {
	maxFeatures := opts.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	analyzer := NewAnalyzer()

	counts := make(map[string]int)
	docFreq := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, term := range analyzer.Terms(text) {
			counts[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(texts))
	m := &Model{
		analyzer:   analyzer,
		vocabulary: make(map[string]int, len(terms)),
		terms:      terms,
		idf:        make([]float64, len(terms)),
		numDocs:    len(texts),
	}
	for i, term := range terms {
		m.vocabulary[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return m
}

// Transform maps text onto the fitted vocabulary: raw term counts weighted by IDF and
// L2-normalized. Unknown terms are ignored, so text with no known terms yields the zero
// vector.
func (m *Model) Transform(text string) SparseVector {
	tf := make(map[int]int)
	for _, term := range m.analyzer.Terms(text) {
		if idx, ok := m.vocabulary[term]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return SparseVector{}
	}
	indices := make([]int, 0, len(tf))
	for idx := range tf {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = float64(tf[idx]) * m.idf[idx]
	}
	utils.NormalizeL2(values)
	return SparseVector{Indices: indices, Values: values}
}

// VocabularySize returns the number of terms in the vocabulary.
func (m *Model) VocabularySize() int { return len(m.terms) }

// NumDocs returns the number of texts the model was fitted on.
func (m *Model) NumDocs() int { return m.numDocs }

// Terms returns a copy of the vocabulary in index order.
func (m *Model) Terms() []string {
	return append([]string(nil), m.terms...)
}

// IDF returns the inverse document frequency of term and whether it is in the vocabulary.
func (m *Model) IDF(term string) (float64, bool) {
	idx, ok := m.vocabulary[term]
	if !ok {
		return 0, false
	}
	return m.idf[idx], true
}
