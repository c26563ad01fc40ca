package e2e

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/trialsearch/internal/corpus"
	"github.com/hyperjump/trialsearch/internal/models"
)

// CorpusFileExtensions lists the registry export formats written by WriteCorpusFile.
var CorpusFileExtensions = []string{".csv", ".xlsx"}

var exportHeader = []string{
	"NCT Number",
	corpus.ColumnTitle,
	corpus.ColumnURL,
	corpus.ColumnSummary,
	corpus.ColumnConditions,
	corpus.ColumnPrimaryOutcome,
}

func exportRow(i int, t models.TrialInput) []string {
	return []string{fmt.Sprintf("NCT%08d", i), t.Title, t.URL, t.Summary, t.Conditions, t.PrimaryOutcome}
}

// WriteCorpusFile writes trials as a registry export; the format follows the path extension.
func WriteCorpusFile(path string, trials []models.TrialInput) error {
	var (
		content []byte
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		content, err = exportCSV(trials)
	case ".xlsx":
		content, err = exportXLSX(trials)
	default:
		return fmt.Errorf("unsupported export extension %q", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}

func exportCSV(trials []models.TrialInput) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for i, t := range trials {
		if err := w.Write(exportRow(i, t)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportXLSX(trials []models.TrialInput) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	writeRow := func(row int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
		}
		return f.SetSheetRow(sheet, cell, &cells)
	}
	if err := writeRow(1, exportHeader); err != nil {
		return nil, err
	}
	for i, t := range trials {
		if err := writeRow(i+2, exportRow(i, t)); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
