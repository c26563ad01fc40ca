package keyword

import (
	"context"
	"regexp"
	"strings"

	"github.com/hyperjump/trialsearch/internal/models"
	"github.com/hyperjump/trialsearch/internal/vector"
)

// ExactMatcher confirms trials whose identifier text contains the clause tokens in order,
// each pair separated by nothing, one space or one hyphen. Confirmed trials that match a
// negated form of the clause are dropped.
type ExactMatcher struct {
	opts options
}

// NewExactMatcher returns an exact-pattern matcher.
func NewExactMatcher(opts ...Option) *ExactMatcher {
	return &ExactMatcher{opts: newOptions(opts)}
}

// Strategy returns StrategyExact.
func (m *ExactMatcher) Strategy() Strategy { return StrategyExact }

// ExactPattern returns the uncompiled pattern for clause, or "" when clause has no tokens.
func ExactPattern(clause string) string {
	tokens := strings.Fields(clause)
	for i, tok := range tokens {
		tokens[i] = regexp.QuoteMeta(tok)
	}
	return strings.Join(tokens, `[ -]?`)
}

// Confirm implements Matcher. A clause without tokens confirms nothing.
func (m *ExactMatcher) Confirm(ctx context.Context, clause string, ranking []vector.Result, trials []*models.Trial) ([]int, error) {
	base := ExactPattern(clause)
	if base == "" {
		return []int{}, nil
	}
	re, err := regexp.Compile("(?i)" + base)
	if err != nil {
		return nil, err
	}
	negative, err := negationFilter(m.opts.negations, clause, base)
	if err != nil {
		return nil, err
	}
	return scan(ctx, ranking, trials, m.opts.cap, func(t *models.Trial) bool {
		return re.MatchString(t.IdentifierText) && !matchesAny(negative, t.IdentifierText)
	})
}
