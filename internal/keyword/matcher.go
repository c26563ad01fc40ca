// Package keyword provides the textual confirmation matchers that decide whether a
// similarity-ranked trial really matches a query clause.
package keyword

import (
	"context"
	"strings"

	"github.com/hyperjump/trialsearch/internal/models"
	"github.com/hyperjump/trialsearch/internal/vector"
)

const (
	// DefaultCap is the number of confirmed trials after which a scan stops.
	DefaultCap = 500
	// DefaultFuzzyThreshold is the minimum partial ratio for a fuzzy confirmation.
	DefaultFuzzyThreshold = 80

	ctxCheckInterval = 256
)

// Strategy names a confirmation strategy.
type Strategy string

const (
	StrategyExact Strategy = "exact"
	StrategyFuzzy Strategy = "fuzzy"
)

// Matcher confirms trials for a normalized query clause. It scans ranking in order and
// returns the indices of confirmed trials in that order, at most the configured cap.
// Implementations never modify ranking or trials.
type Matcher interface {
	Confirm(ctx context.Context, clause string, ranking []vector.Result, trials []*models.Trial) ([]int, error)
	Strategy() Strategy
}

type options struct {
	cap            int
	fuzzyThreshold float64
	negations      *NegationSet
	negateFuzzy    bool
}

// Option configures a matcher.
type Option func(*options)

// WithCap sets the maximum number of confirmed trials per clause. Non-positive values are
// ignored.
func WithCap(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cap = n
		}
	}
}

// WithFuzzyThreshold sets the minimum partial ratio (0-100) for fuzzy confirmation.
func WithFuzzyThreshold(threshold int) Option {
	return func(o *options) {
		if threshold > 0 {
			o.fuzzyThreshold = float64(threshold)
		}
	}
}

// WithNegations replaces the negation prefix set. A nil set disables negation filtering.
func WithNegations(set *NegationSet) Option {
	return func(o *options) { o.negations = set }
}

// WithFuzzyNegation makes the fuzzy matcher apply the negation filter as well.
func WithFuzzyNegation(enabled bool) Option {
	return func(o *options) { o.negateFuzzy = enabled }
}

func newOptions(opts []Option) options {
	o := options{
		cap:            DefaultCap,
		fuzzyThreshold: DefaultFuzzyThreshold,
		negations:      DefaultNegationSet(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewMatcher returns the matcher for strategy: exact when exact is true, fuzzy otherwise.
func NewMatcher(exact bool, opts ...Option) Matcher {
	if exact {
		return NewExactMatcher(opts...)
	}
	return NewFuzzyMatcher(opts...)
}

// scan walks ranking in order, confirming trials with accept until limit confirmations
// are collected or the ranking is exhausted.
func scan(ctx context.Context, ranking []vector.Result, trials []*models.Trial, limit int, accept func(*models.Trial) bool) ([]int, error) {
	confirmed := make([]int, 0)
	for i, r := range ranking {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		trial := trials[r.Index]
		if strings.TrimSpace(trial.IdentifierText) == "" {
			continue
		}
		if accept(trial) {
			confirmed = append(confirmed, r.Index)
			if len(confirmed) == limit {
				break
			}
		}
	}
	return confirmed, nil
}
