package search

import "sort"

// FusedResult is a trial present in every clause's candidate set.
type FusedResult struct {
	Index int
	// Score is the sum of the trial's similarity scores across clauses.
	Score float64
}

// Intersect returns the trials present in every set, ordered by summed score descending
// and then by index ascending. No sets yields no results.
func Intersect(sets []CandidateSet) []*FusedResult {
	if len(sets) == 0 {
		return []*FusedResult{}
	}
	smallest := 0
	for i, s := range sets {
		if len(s) < len(sets[smallest]) {
			smallest = i
		}
	}

	results := make([]*FusedResult, 0, len(sets[smallest]))
	for index := range sets[smallest] {
		var score float64
		inAll := true
		for _, s := range sets {
			v, ok := s[index]
			if !ok {
				inAll = false
				break
			}
			score += v
		}
		if inAll {
			results = append(results, &FusedResult{Index: index, Score: score})
		}
	}
	SortFused(results)
	return results
}

// SortFused orders results by score descending, ties by index ascending.
func SortFused(results []*FusedResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})
}
