package search

import (
	"strings"

	"github.com/hyperjump/trialsearch/internal/indexer"
	"github.com/hyperjump/trialsearch/internal/tfidf"
	"github.com/hyperjump/trialsearch/internal/vector"
)

// ClauseSeparator splits a query into conjunctive clauses. The match is case-sensitive
// and not restricted to word boundaries.
const ClauseSeparator = "AND"

// Clause is the request-local state of one conjunct.
type Clause struct {
	Raw        string
	Normalized string
	Vector     tfidf.SparseVector
	Ranking    []vector.Result
	Confirmed  CandidateSet
}

// SplitClauses splits query on ClauseSeparator and normalizes each part. Blank clauses are
// dropped when any non-blank clause exists; otherwise a single empty clause is returned.
func SplitClauses(query string) []*Clause {
	parts := strings.Split(query, ClauseSeparator)
	clauses := make([]*Clause, 0, len(parts))
	for _, raw := range parts {
		normalized := strings.TrimSpace(indexer.NormalizeText(raw))
		if normalized == "" {
			continue
		}
		clauses = append(clauses, &Clause{Raw: raw, Normalized: normalized})
	}
	if len(clauses) == 0 {
		return []*Clause{{Raw: query}}
	}
	return clauses
}

// CandidateSet maps each confirmed trial index of a clause to its similarity score.
type CandidateSet map[int]float64

// NewCandidateSet builds the set for confirmed indices, taking scores from ranking.
func NewCandidateSet(confirmed []int, ranking []vector.Result) CandidateSet {
	set := make(CandidateSet, len(confirmed))
	if len(confirmed) == 0 {
		return set
	}
	for _, i := range confirmed {
		set[i] = 0
	}
	for _, r := range ranking {
		if _, ok := set[r.Index]; ok {
			set[r.Index] = r.Score
		}
	}
	return set
}

// Contains reports whether index is in the set.
func (s CandidateSet) Contains(index int) bool {
	_, ok := s[index]
	return ok
}
