// Package storage defines the persistence interface for corpus snapshots.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/hyperjump/trialsearch/internal/models"
)

// ErrNotFound is returned when the snapshot holds no import record.
var ErrNotFound = errors.New("not found")

// ImportInfo describes the most recent snapshot import.
type ImportInfo struct {
	Source     string    `json:"source"`
	Trials     int       `json:"trials"`
	ImportedAt time.Time `json:"imported_at"`
}

// Storage persists a corpus snapshot. Row order is the trial index used by the engine.
type Storage interface {
	// ReplaceTrials atomically replaces the snapshot with inputs, recording source.
	ReplaceTrials(ctx context.Context, source string, inputs []models.TrialInput) error
	ListTrials(ctx context.Context) ([]models.TrialInput, error)
	CountTrials(ctx context.Context) (int64, error)
	LastImport(ctx context.Context) (*ImportInfo, error)

	Close() error
}
