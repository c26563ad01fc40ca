package keyword

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// DefaultNegationPrefixes returns a fresh copy of the built-in prefix -> pattern fragment
// registry. Each fragment matches the prefix at a word boundary followed by an optional
// hyphen or whitespace.
func DefaultNegationPrefixes() map[string]string {
	return map[string]string{
		"non":  `\bnon[-\s]?`,
		"un":   `\bun[-\s]?`,
		"anti": `\banti[-\s]?`,
		"de":   `\bde[-\s]?`,
	}
}

// NegationSet is an immutable set of negation prefixes and their pattern fragments.
type NegationSet struct {
	prefixes  []string
	fragments map[string]string
}

// NewNegationSet builds a set from a prefix -> fragment mapping. The mapping is copied.
func NewNegationSet(prefixes map[string]string) *NegationSet {
	s := &NegationSet{fragments: make(map[string]string, len(prefixes))}
	for p, f := range prefixes {
		s.prefixes = append(s.prefixes, p)
		s.fragments[p] = f
	}
	sort.Strings(s.prefixes)
	return s
}

// DefaultNegationSet returns a set built from DefaultNegationPrefixes.
func DefaultNegationSet() *NegationSet {
	return NewNegationSet(DefaultNegationPrefixes())
}

// With returns a copy of s with prefix registered to fragment.
func (s *NegationSet) With(prefix, fragment string) *NegationSet {
	m := make(map[string]string, len(s.fragments)+1)
	for p, f := range s.fragments {
		m[p] = f
	}
	m[prefix] = fragment
	return NewNegationSet(m)
}

// Prefixes returns the registered prefixes in sorted order.
func (s *NegationSet) Prefixes() []string {
	return append([]string(nil), s.prefixes...)
}

// QueryIsNegated reports whether clause already starts with a registered prefix, in which
// case the caller is searching for the negated concept and no filtering applies.
func (s *NegationSet) QueryIsNegated(clause string) bool {
	clause = strings.TrimSpace(clause)
	for _, p := range s.prefixes {
		if strings.HasPrefix(clause, p) {
			return true
		}
	}
	return false
}

// Patterns compiles one case-insensitive negative pattern per prefix by prepending the
// prefix fragment to base.
func (s *NegationSet) Patterns(base string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(s.prefixes))
	for _, p := range s.prefixes {
		re, err := regexp.Compile("(?i)" + s.fragments[p] + base)
		if err != nil {
			return nil, fmt.Errorf("compile negation pattern for prefix %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// negationFilter returns the negative patterns to apply for clause, or nil when the set is
// empty or the clause itself is negated.
func negationFilter(set *NegationSet, clause, base string) ([]*regexp.Regexp, error) {
	if set == nil || len(set.prefixes) == 0 || set.QueryIsNegated(clause) {
		return nil, nil
	}
	return set.Patterns(base)
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
