package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/trialsearch/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db, path: dbPath}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS trials (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		conditions TEXT NOT NULL DEFAULT '',
		primary_outcome TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS imports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		trials INTEGER NOT NULL,
		imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// ReplaceTrials deletes the current snapshot and inserts inputs in one transaction.
// Input i is stored with id i.
func (s *SQLiteStorage) ReplaceTrials(ctx context.Context, source string, inputs []models.TrialInput) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trials`); err != nil {
		return fmt.Errorf("failed to clear trials: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO trials (id, title, summary, conditions, primary_outcome, url)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, in := range inputs {
		if _, err := stmt.ExecContext(ctx, i, in.Title, in.Summary, in.Conditions, in.PrimaryOutcome, in.URL); err != nil {
			return fmt.Errorf("failed to insert trial %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (source, trials, imported_at) VALUES (?, ?, ?)`,
		source, len(inputs), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	return tx.Commit()
}

// ListTrials returns every trial ordered by id.
func (s *SQLiteStorage) ListTrials(ctx context.Context) ([]models.TrialInput, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, summary, conditions, primary_outcome, url FROM trials ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inputs := make([]models.TrialInput, 0)
	for rows.Next() {
		var in models.TrialInput
		if err := rows.Scan(&in.Title, &in.Summary, &in.Conditions, &in.PrimaryOutcome, &in.URL); err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, rows.Err()
}

// CountTrials returns the number of stored trials.
func (s *SQLiteStorage) CountTrials(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trials`).Scan(&count)
	return count, err
}

// LastImport returns the most recent import record, or ErrNotFound if none exists.
func (s *SQLiteStorage) LastImport(ctx context.Context) (*ImportInfo, error) {
	var info ImportInfo
	err := s.db.QueryRowContext(ctx,
		`SELECT source, trials, imported_at FROM imports ORDER BY id DESC LIMIT 1`,
	).Scan(&info.Source, &info.Trials, &info.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("import: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
