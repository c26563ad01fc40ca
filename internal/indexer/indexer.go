// Package indexer builds the read-only search index (trials, term-weight model and
// document vectors) from a loaded corpus.
package indexer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/hyperjump/trialsearch/internal/config"
	"github.com/hyperjump/trialsearch/internal/models"
	"github.com/hyperjump/trialsearch/internal/tfidf"
	"github.com/hyperjump/trialsearch/internal/vector"
)

const defaultWorkers = 8

// Index is the immutable product of a build. Trials, Model and Table are never written
// after Build returns and may be shared across goroutines.
type Index struct {
	Trials []*models.Trial
	Model  *tfidf.Model
	Table  *vector.Table
}

// Indexer builds indices.
type Indexer struct {
	config *config.ModelConfig
	logger *zap.Logger // optional; when set, logs build progress
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithLogger sets a logger for build progress.
func WithLogger(l *zap.Logger) IndexerOption {
	return func(idx *Indexer) { idx.logger = l }
}

// NewIndexer creates an indexer. A nil cfg uses the model defaults.
func NewIndexer(cfg *config.ModelConfig, opts ...IndexerOption) *Indexer {
	if cfg == nil {
		cfg = &config.ModelConfig{}
	}
	idx := &Indexer{config: cfg}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Build normalizes inputs, fits the term-weight model over the normalized texts and
// vectorizes every trial on a bounded worker pool.
func (idx *Indexer) Build(ctx context.Context, inputs []models.TrialInput) (*Index, error) {
	start := time.Now()
	trials := NewTrials(inputs)

	texts := make([]string, len(trials))
	for i, t := range trials {
		texts[i] = t.NormalizedText
	}
	model := tfidf.Fit(texts, tfidf.Options{MaxFeatures: idx.config.MaxFeatures})

	vectors, err := idx.vectorize(ctx, model, texts)
	if err != nil {
		return nil, err
	}

	if idx.logger != nil {
		idx.logger.Info("index built",
			zap.Int("trials", len(trials)),
			zap.Int("vocabulary", model.VocabularySize()),
			zap.Duration("elapsed", time.Since(start)))
	}
	return &Index{Trials: trials, Model: model, Table: vector.NewTable(vectors)}, nil
}

func (idx *Indexer) vectorize(ctx context.Context, model *tfidf.Model, texts []string) ([]tfidf.SparseVector, error) {
	workers := idx.config.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	vectors := make([]tfidf.SparseVector, len(texts))
	var wg sync.WaitGroup
	for i := range texts {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			vectors[i] = model.Transform(texts[i])
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("failed to submit vectorization task: %w", err)
		}
	}
	wg.Wait()

	if idx.logger != nil {
		idx.logger.Debug("corpus vectorized", zap.Int("documents", len(texts)), zap.Int("workers", workers))
	}
	return vectors, nil
}

// Trial returns the trial at id, or false when id is out of range.
func (x *Index) Trial(id int) (*models.Trial, bool) {
	if id < 0 || id >= len(x.Trials) {
		return nil, false
	}
	return x.Trials[id], true
}

// Size returns the number of indexed trials.
func (x *Index) Size() int {
	return len(x.Trials)
}
