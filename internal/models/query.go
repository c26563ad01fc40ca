package models

const (
	// DefaultLimit is used when a query asks for zero or fewer results.
	DefaultLimit = 10
	// MaxLimit caps the number of results a single query may request.
	MaxLimit = 1000
)

// SearchQuery represents a search request. Exact selects the exact-pattern confirmation
// strategy; when false the fuzzy strategy is used.
type SearchQuery struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
	Exact bool   `json:"exact"`
}

// Validate normalizes the limit into [1, maxLimit]. An empty query is not an error: it
// degrades to an empty result. A non-positive defaultLimit or maxLimit falls back to the
// package defaults.
func (q *SearchQuery) Validate(defaultLimit, maxLimit int) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
}
