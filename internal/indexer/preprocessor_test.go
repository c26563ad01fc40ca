package indexer

import (
	"testing"

	"github.com/hyperjump/trialsearch/internal/models"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Non-Small-Cell Lung Cancer", "non small cell lung cancer"},
		{"COVID-19 (SARS-CoV-2)", "covid 19  sars cov 2 "},
		{"tab\tand\nnewline", "tab\tand\nnewline"},
		{"café", "caf "},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewTrial(t *testing.T) {
	trial := NewTrial(3, models.TrialInput{
		Title:          "Phase II Trial of Small-Cell Lung Cancer",
		Summary:        "A study.",
		Conditions:     "SCLC",
		PrimaryOutcome: "Overall survival",
		URL:            "https://clinicaltrials.gov/study/NCT0001",
	})
	if trial.ID != 3 {
		t.Errorf("ID = %d, want 3", trial.ID)
	}
	wantNorm := "phase ii trial of small cell lung cancer a study  sclc overall survival"
	if trial.NormalizedText != wantNorm {
		t.Errorf("NormalizedText = %q, want %q", trial.NormalizedText, wantNorm)
	}
	wantIdent := "Phase II Trial of Small-Cell Lung Cancer A study."
	if trial.IdentifierText != wantIdent {
		t.Errorf("IdentifierText = %q, want %q", trial.IdentifierText, wantIdent)
	}
}

func TestNewTrial_missingFieldsStayEmpty(t *testing.T) {
	trial := NewTrial(0, models.TrialInput{Title: "Only a title"})
	if trial.IdentifierText != "Only a title" {
		t.Errorf("IdentifierText = %q", trial.IdentifierText)
	}
	if trial.NormalizedText != "only a title   " {
		t.Errorf("NormalizedText = %q", trial.NormalizedText)
	}
}

func TestNewTrial_blankIdentifierIsEmpty(t *testing.T) {
	tests := []models.TrialInput{
		{Conditions: "Asthma", URL: "u1"},
		{Title: "  ", Summary: "\t", URL: "u2"},
	}
	for i, in := range tests {
		if got := NewTrial(i, in).IdentifierText; got != "" {
			t.Errorf("case %d: IdentifierText = %q, want empty", i, got)
		}
	}
	if got := NewTrial(0, models.TrialInput{Summary: "Only a summary"}).IdentifierText; got != "Only a summary" {
		t.Errorf("IdentifierText = %q", got)
	}
}

func TestNewTrials_assignsPositionalIDs(t *testing.T) {
	trials := NewTrials([]models.TrialInput{{Title: "a"}, {Title: "b"}})
	if len(trials) != 2 || trials[0].ID != 0 || trials[1].ID != 1 {
		t.Fatalf("unexpected trials: %+v", trials)
	}
}
