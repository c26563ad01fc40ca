package indexer

import (
	"strings"
	"unicode"

	"github.com/hyperjump/trialsearch/internal/models"
)

// NormalizeText replaces every character outside [a-zA-Z0-9] and whitespace with a
// space and lowercases the result. Each replaced character becomes exactly one space.
func NormalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// NewTrial builds an immutable trial from raw input, computing its derived text fields.
func NewTrial(id int, in models.TrialInput) *models.Trial {
	t := &models.Trial{
		ID:             id,
		Title:          in.Title,
		Summary:        in.Summary,
		Conditions:     in.Conditions,
		PrimaryOutcome: in.PrimaryOutcome,
		URL:            in.URL,
	}
	t.NormalizedText = NormalizeText(strings.Join([]string{t.Title, t.Summary, t.Conditions, t.PrimaryOutcome}, " "))
	t.IdentifierText = joinNonBlank(t.Title, t.Summary)
	return t
}

// joinNonBlank joins the parts that are not blank with single spaces.
func joinNonBlank(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// NewTrials converts inputs into trials whose IDs are their positions in the slice.
func NewTrials(inputs []models.TrialInput) []*models.Trial {
	trials := make([]*models.Trial, len(inputs))
	for i, in := range inputs {
		trials[i] = NewTrial(i, in)
	}
	return trials
}
