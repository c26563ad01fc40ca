// Package cli provides output helpers for the trialsearch command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperjump/trialsearch/internal/models"
	"github.com/hyperjump/trialsearch/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
	// OutputTSV prints one tab-separated rank, title and URL per line.
	OutputTSV SearchOutputFormat = "tsv"
)

const titleWidth = 120

// WriteSearchResults writes search results to w in the given format.
// Unknown formats fall back to text.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputTSV:
		for _, r := range response.Results {
			if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", r.Rank, tsvField(r.Title), tsvField(r.URL)); err != nil {
				return err
			}
		}
		return nil
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	strategy := "fuzzy"
	if response.Exact {
		strategy = "exact"
	}
	fmt.Fprintf(w, "\nFound %d trials in %dms (%s, showing %d)\n", response.Total, response.QueryTime, strategy, len(response.Results))
	if len(response.Clauses) > 1 {
		fmt.Fprintf(w, "Clauses: %s\n", strings.Join(response.Clauses, " | "))
	}
	fmt.Fprintln(w)
	for _, result := range response.Results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Score: %.4f | ID: %d\n", result.Rank, result.Score, result.ID)
		fmt.Fprintf(w, "Title: %s\n", utils.Truncate(result.Title, titleWidth))
		if result.URL != "" {
			fmt.Fprintf(w, "URL: %s\n", result.URL)
		}
		fmt.Fprintln(w)
	}
}

func tsvField(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
}

// PrintSearchResults prints search results to stdout in text format.
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}
