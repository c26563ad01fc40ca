// Package models defines core data structures for trials, queries, and search results.
package models

// Trial is one clinical-trial record of the corpus. Trials are immutable once the
// corpus is loaded; the derived text fields are computed a single time at load.
type Trial struct {
	ID             int    `json:"id" db:"id"`
	Title          string `json:"title" db:"title"`
	Summary        string `json:"summary" db:"summary"`
	Conditions     string `json:"conditions" db:"conditions"`
	PrimaryOutcome string `json:"primary_outcome" db:"primary_outcome"`
	URL            string `json:"url" db:"url"`

	// NormalizedText is title, summary, conditions and primary outcome, lowercased with
	// every non-alphanumeric character replaced by a space. Used for vectorization.
	NormalizedText string `json:"-" db:"-"`
	// IdentifierText is title + " " + summary as written. Used for confirmation matching.
	IdentifierText string `json:"-" db:"-"`
}

// TrialInput is the raw, not yet normalized form of a trial as read from a tabular source.
type TrialInput struct {
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	Conditions     string `json:"conditions"`
	PrimaryOutcome string `json:"primary_outcome"`
	URL            string `json:"url"`
}
