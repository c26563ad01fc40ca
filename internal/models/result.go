package models

// SearchResult is a single matching trial projected to its output fields.
type SearchResult struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	// Score is the summed similarity of the trial across all query clauses.
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

// SearchResponse is the response for a search request. Results is never nil so that an
// empty match still serializes as an empty list.
type SearchResponse struct {
	Results   []*SearchResult `json:"results"`
	Total     int             `json:"total"`
	Clauses   []string        `json:"clauses"`
	Exact     bool            `json:"exact"`
	QueryTime int64           `json:"query_time_ms"`
	Query     string          `json:"query"`
	RequestID string          `json:"request_id,omitempty"`
}
