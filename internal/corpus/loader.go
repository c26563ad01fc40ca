// Package corpus reads clinical-trial tables (CSV or Excel) into trial inputs.
package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/trialsearch/internal/models"
)

// Column headers of the registry export.
const (
	ColumnTitle          = "Study Title"
	ColumnSummary        = "Brief Summary"
	ColumnConditions     = "Conditions"
	ColumnPrimaryOutcome = "Primary Outcome Measures"
	ColumnURL            = "Study URL"
)

// Supported formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing required column")

var requiredColumns = []string{ColumnTitle, ColumnURL}

// Loader reads corpus files.
type Loader struct{}

// NewLoader returns a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the file at path. An empty format is inferred from the file extension.
func (l *Loader) Load(path, format string) ([]models.TrialInput, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	if format == "" {
		format = FormatFromPath(path)
	}
	return l.LoadBytes(content, format)
}

// LoadBytes parses content in the given format.
func (l *Loader) LoadBytes(content []byte, format string) ([]models.TrialInput, error) {
	var (
		rows [][]string
		err  error
	)
	switch format {
	case FormatXLSX:
		rows, err = readExcel(content)
	case FormatCSV:
		rows, err = readCSV(bytes.NewReader(content))
	default:
		return nil, fmt.Errorf("unsupported corpus format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

// FormatFromPath maps a file extension to a format, defaulting to CSV.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// fromRows maps a header row plus records to trial inputs. Short records and absent
// optional columns yield empty fields.
func fromRows(rows [][]string) ([]models.TrialInput, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrMissingColumn)
	}
	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := header[name]; !ok {
			header[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	field := func(record []string, col string) string {
		i, ok := header[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	inputs := make([]models.TrialInput, 0, len(rows)-1)
	for _, record := range rows[1:] {
		if isBlank(record) {
			continue
		}
		inputs = append(inputs, models.TrialInput{
			Title:          field(record, ColumnTitle),
			Summary:        field(record, ColumnSummary),
			Conditions:     field(record, ColumnConditions),
			PrimaryOutcome: field(record, ColumnPrimaryOutcome),
			URL:            field(record, ColumnURL),
		})
	}
	return inputs, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
