package keyword

import (
	"context"
	"regexp"
	"strings"

	"github.com/hyperjump/trialsearch/internal/models"
	"github.com/hyperjump/trialsearch/internal/vector"
)

// FuzzyMatcher confirms trials whose lowercased identifier text has a partial ratio with
// the lowercased clause at or above the threshold.
type FuzzyMatcher struct {
	opts options
}

// NewFuzzyMatcher returns a fuzzy matcher. Negation filtering applies only when enabled
// with WithFuzzyNegation.
func NewFuzzyMatcher(opts ...Option) *FuzzyMatcher {
	return &FuzzyMatcher{opts: newOptions(opts)}
}

// Strategy returns StrategyFuzzy.
func (m *FuzzyMatcher) Strategy() Strategy { return StrategyFuzzy }

// Confirm implements Matcher. A blank clause scores 0 against everything and confirms
// nothing.
func (m *FuzzyMatcher) Confirm(ctx context.Context, clause string, ranking []vector.Result, trials []*models.Trial) ([]int, error) {
	query := strings.ToLower(strings.TrimSpace(clause))
	if query == "" {
		return []int{}, nil
	}
	var negative []*regexp.Regexp
	if m.opts.negateFuzzy {
		var err error
		negative, err = negationFilter(m.opts.negations, clause, ExactPattern(clause))
		if err != nil {
			return nil, err
		}
	}
	return scan(ctx, ranking, trials, m.opts.cap, func(t *models.Trial) bool {
		if PartialRatio(query, strings.ToLower(t.IdentifierText)) < m.opts.fuzzyThreshold {
			return false
		}
		return !matchesAny(negative, t.IdentifierText)
	})
}
