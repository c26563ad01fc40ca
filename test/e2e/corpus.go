// Package e2e provides end-to-end tests over a synthetic registry export and its queries.
package e2e

import (
	"fmt"
	"strings"

	"github.com/hyperjump/trialsearch/internal/models"
)

// QueryTestCase defines a query and the trial URLs it must return.
// Strict cases require exactly ExpectedURLs; the others require ExpectedURLs to be a subset.
type QueryTestCase struct {
	Query        string
	Exact        bool
	Strict       bool
	ExpectedURLs []string
	Description  string
}

// Corpus holds trials and query test cases for E2E tests.
type Corpus struct {
	Trials       []models.TrialInput
	TestCases    []QueryTestCase
	TotalTrials  int
	TotalQueries int
}

var conditions = []string{
	"Type 2 Diabetes",
	"Rheumatoid Arthritis",
	"Major Depressive Disorder",
	"Chronic Kidney Disease",
	"Atrial Fibrillation",
	"Multiple Sclerosis",
	"Psoriasis",
	"Asthma",
	"Migraine",
	"Glioblastoma",
	"Heart Failure",
	"Osteoporosis",
	"Small Cell Lung Cancer",
	"Non-Small Cell Lung Cancer",
	"Hodgkin Lymphoma",
	"Non-Hodgkin Lymphoma",
	"Resectable Pancreatic Cancer",
	"Unresectable Pancreatic Cancer",
}

var phases = []string{"I", "II", "III"}

// BuildCorpus returns three trials per condition, one per phase, each with its own
// investigational product code, plus the query cases run against them.
func BuildCorpus() *Corpus {
	trials := buildTrials()
	cases := buildQueryTestCases()
	return &Corpus{
		Trials:       trials,
		TestCases:    cases,
		TotalTrials:  len(trials),
		TotalQueries: len(cases),
	}
}

func trialURL(condition, phase int) string {
	return fmt.Sprintf("https://clinicaltrials.gov/study/NCT%08d", 10000+condition*10+phase)
}

func drugCode(condition, phase int) string {
	return fmt.Sprintf("TRX-%d", 101+condition*len(phases)+phase)
}

func buildTrials() []models.TrialInput {
	out := make([]models.TrialInput, 0, len(conditions)*len(phases))
	for c, cond := range conditions {
		for p, phase := range phases {
			drug := drugCode(c, p)
			out = append(out, models.TrialInput{
				Title:          fmt.Sprintf("A Phase %s Study of %s in Patients With %s", phase, drug, cond),
				Summary:        fmt.Sprintf("This randomized study evaluates %s in adults with %s.", drug, strings.ToLower(cond)),
				Conditions:     cond,
				PrimaryOutcome: "Overall response rate at 12 weeks",
				URL:            trialURL(c, p),
			})
		}
	}
	return out
}

func conditionURLs(c int) []string {
	urls := make([]string, len(phases))
	for p := range phases {
		urls[p] = trialURL(c, p)
	}
	return urls
}

func conditionIndex(name string) int {
	for i, c := range conditions {
		if c == name {
			return i
		}
	}
	panic("unknown condition " + name)
}

func buildQueryTestCases() []QueryTestCase {
	var cases []QueryTestCase
	for c, cond := range conditions {
		q := strings.ToLower(cond)
		cases = append(cases, QueryTestCase{
			Query:        q,
			Exact:        true,
			Strict:       true,
			ExpectedURLs: conditionURLs(c),
			Description:  fmt.Sprintf("exact %q returns its three trials", q),
		})
	}

	for c := range conditions {
		drug := drugCode(c, 2)
		q := strings.ToLower(drug) + " AND phase iii"
		cases = append(cases, QueryTestCase{
			Query:        q,
			Exact:        true,
			Strict:       true,
			ExpectedURLs: []string{trialURL(c, 2)},
			Description:  fmt.Sprintf("exact %q intersects product and phase", q),
		})
	}

	sclc := conditionIndex("Small Cell Lung Cancer")
	nsclc := conditionIndex("Non-Small Cell Lung Cancer")
	cases = append(cases,
		QueryTestCase{
			Query:        "lung cancer AND phase iii",
			Exact:        true,
			Strict:       true,
			ExpectedURLs: []string{trialURL(sclc, 2), trialURL(nsclc, 2)},
			Description:  "exact lung cancer phase III spans both cell types",
		},
		QueryTestCase{
			Query:       "asthma AND migraine",
			Exact:       true,
			Strict:      true,
			Description: "disjoint clauses return nothing",
		},
		QueryTestCase{
			Query:        "glioblastma",
			Exact:        false,
			ExpectedURLs: conditionURLs(conditionIndex("Glioblastoma")),
			Description:  "fuzzy misspelling still finds glioblastoma trials",
		},
		QueryTestCase{
			Query:        "rheumatoid arthritis AND phase ii",
			Exact:        false,
			ExpectedURLs: []string{trialURL(conditionIndex("Rheumatoid Arthritis"), 1)},
			Description:  "fuzzy clauses intersect",
		},
	)
	return cases
}
