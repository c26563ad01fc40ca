// Package search resolves multi-clause queries against the read-only trial index.
package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/trialsearch/internal/config"
	"github.com/hyperjump/trialsearch/internal/indexer"
	"github.com/hyperjump/trialsearch/internal/keyword"
	"github.com/hyperjump/trialsearch/internal/models"
	"github.com/hyperjump/trialsearch/internal/tfidf"
)

// Engine runs conjunctive clause search over an index. It holds no per-request state and
// is safe for concurrent use.
type Engine struct {
	index  *indexer.Index
	config *config.SearchConfig
	exact  keyword.Matcher
	fuzzy  keyword.Matcher
	cache  *tfidf.VectorCache
	logger *zap.Logger
}

type engineOptions struct {
	logger    *zap.Logger
	negations *keyword.NegationSet
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

// WithLogger sets a logger for per-request debug output.
func WithLogger(l *zap.Logger) EngineOption {
	return func(o *engineOptions) { o.logger = l }
}

// WithNegations replaces the default negation prefix set.
func WithNegations(set *keyword.NegationSet) EngineOption {
	return func(o *engineOptions) { o.negations = set }
}

// NewEngine creates a search engine over index.
func NewEngine(index *indexer.Index, cfg *config.SearchConfig, opts ...EngineOption) *Engine {
	o := engineOptions{negations: keyword.DefaultNegationSet()}
	for _, opt := range opts {
		opt(&o)
	}
	matcherOpts := []keyword.Option{
		keyword.WithCap(cfg.MatchCap),
		keyword.WithFuzzyThreshold(cfg.FuzzyThreshold),
		keyword.WithNegations(o.negations),
		keyword.WithFuzzyNegation(cfg.NegateFuzzy),
	}
	var cache *tfidf.VectorCache
	if cfg.VectorCacheSize > 0 {
		cache = tfidf.NewVectorCache(cfg.VectorCacheSize)
	}
	return &Engine{
		index:  index,
		config: cfg,
		exact:  keyword.NewExactMatcher(matcherOpts...),
		fuzzy:  keyword.NewFuzzyMatcher(matcherOpts...),
		cache:  cache,
		logger: o.logger,
	}
}

// Search splits the query into clauses, confirms trials per clause with the selected
// strategy and returns the trials confirmed by every clause. The only errors returned are
// context errors.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	startTime := time.Now()
	ProcessQuery(query, e.config)

	matcher := e.fuzzy
	if query.Exact {
		matcher = e.exact
	}

	clauses := SplitClauses(query.Query)
	sets := make([]CandidateSet, 0, len(clauses))
	for _, c := range clauses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.resolve(ctx, c, matcher); err != nil {
			return nil, err
		}
		sets = append(sets, c.Confirmed)
	}

	fused := Intersect(sets)
	end := query.Limit
	if end > len(fused) {
		end = len(fused)
	}

	response := &models.SearchResponse{
		Results: make([]*models.SearchResult, 0, end),
		Total:   len(fused),
		Clauses: make([]string, len(clauses)),
		Exact:   query.Exact,
		Query:   query.Query,
	}
	for i, c := range clauses {
		response.Clauses[i] = c.Normalized
	}
	for i, r := range fused[:end] {
		trial := e.index.Trials[r.Index]
		response.Results = append(response.Results, &models.SearchResult{
			ID:    trial.ID,
			Title: trial.Title,
			URL:   trial.URL,
			Score: r.Score,
			Rank:  i + 1,
		})
	}
	response.QueryTime = time.Since(startTime).Milliseconds()

	if e.logger != nil {
		e.logger.Debug("search",
			zap.String("query", query.Query),
			zap.String("strategy", string(matcher.Strategy())),
			zap.Int("clauses", len(clauses)),
			zap.Int("total", response.Total),
			zap.Int64("query_time_ms", response.QueryTime))
	}
	return response, nil
}

// resolve fills in the clause's vector, ranking and confirmed set.
func (e *Engine) resolve(ctx context.Context, c *Clause, matcher keyword.Matcher) error {
	if c.Normalized == "" {
		c.Confirmed = CandidateSet{}
		return nil
	}
	c.Vector = e.index.Model.TransformCached(e.cache, c.Normalized)
	c.Ranking = e.index.Table.Rank(c.Vector)
	confirmed, err := matcher.Confirm(ctx, c.Normalized, c.Ranking, e.index.Trials)
	if err != nil {
		return err
	}
	c.Confirmed = NewCandidateSet(confirmed, c.Ranking)

	if e.logger != nil {
		e.logger.Debug("clause resolved",
			zap.String("clause", c.Normalized),
			zap.Int("terms", c.Vector.Len()),
			zap.Int("confirmed", len(confirmed)))
	}
	return nil
}

// Trial returns the indexed trial at id.
func (e *Engine) Trial(id int) (*models.Trial, bool) {
	return e.index.Trial(id)
}

// Stats describes the loaded index.
type Stats struct {
	Trials     int `json:"trials"`
	Vocabulary int `json:"vocabulary"`
}

// Stats returns index statistics.
func (e *Engine) Stats() Stats {
	return Stats{Trials: e.index.Size(), Vocabulary: e.index.Model.VocabularySize()}
}
