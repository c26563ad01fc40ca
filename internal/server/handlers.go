package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/trialsearch/internal/keyword"
	"github.com/hyperjump/trialsearch/internal/metrics"
	"github.com/hyperjump/trialsearch/internal/models"
	"github.com/hyperjump/trialsearch/internal/storage"
)

// legacyRequest is the body of POST /get_trials. Num is honored as given: zero or less
// returns no records.
type legacyRequest struct {
	Data  string `json:"data"`
	Num   int    `json:"num"`
	Exact bool   `json:"exact"`
}

// legacyRecord is one row of the POST /get_trials response.
type legacyRecord struct {
	Title string `json:"Study Title"`
	URL   string `json:"Study URL"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	response, ok := s.search(w, r, &query)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleGetTrials(w http.ResponseWriter, r *http.Request) {
	var req legacyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Num <= 0 {
		s.respondJSON(w, http.StatusOK, []legacyRecord{})
		return
	}
	response, ok := s.search(w, r, &models.SearchQuery{Query: req.Data, Limit: req.Num, Exact: req.Exact})
	if !ok {
		return
	}
	records := make([]legacyRecord, 0, len(response.Results))
	for _, res := range response.Results {
		records = append(records, legacyRecord{Title: res.Title, URL: res.URL})
	}
	s.respondJSON(w, http.StatusOK, records)
}

// search runs the query and writes an error response on failure.
func (s *Server) search(w http.ResponseWriter, r *http.Request, query *models.SearchQuery) (*models.SearchResponse, bool) {
	strategy := keyword.StrategyFuzzy
	if query.Exact {
		strategy = keyword.StrategyExact
	}
	reqID := middleware.GetReqID(r.Context())
	s.logger.Debug("search request",
		zap.String("request_id", reqID),
		zap.String("query", query.Query),
		zap.Int("limit", query.Limit),
		zap.String("strategy", string(strategy)))

	start := time.Now()
	response, err := s.engine.Search(r.Context(), query)
	if err != nil {
		metrics.ObserveSearch(string(strategy), 0, 0, time.Since(start), err)
		status := http.StatusInternalServerError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		s.logger.Error("search failed", zap.String("request_id", reqID), zap.Error(err))
		s.respondError(w, status, err.Error())
		return nil, false
	}
	metrics.ObserveSearch(string(strategy), len(response.Clauses), response.Total, time.Since(start), nil)
	response.RequestID = reqID
	return response, true
}

func (s *Server) handleGetTrial(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid trial id")
		return
	}
	trial, ok := s.engine.Trial(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "trial not found")
		return
	}
	s.respondJSON(w, http.StatusOK, trial)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.engine.Stats()
	resp := map[string]interface{}{
		"trials":     stats.Trials,
		"vocabulary": stats.Vocabulary,
		"config": map[string]interface{}{
			"corpus_path":     s.config.Corpus.Path,
			"corpus_format":   s.config.Corpus.CorpusFormat(),
			"max_features":    s.config.Model.MaxFeatures,
			"match_cap":       s.config.Search.MatchCap,
			"fuzzy_threshold": s.config.Search.FuzzyThreshold,
			"negate_fuzzy":    s.config.Search.NegateFuzzy,
			"default_limit":   s.config.Search.DefaultLimit,
			"max_limit":       s.config.Search.MaxLimit,
			"vector_cache":    s.config.Search.VectorCacheSize,
		},
	}

	if s.storage != nil {
		ctx := r.Context()
		snapshot := map[string]interface{}{"database_path": s.config.Storage.DatabasePath}
		count, err := s.storage.CountTrials(ctx)
		if err != nil {
			s.logger.Error("status: count trials failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		snapshot["trials"] = count
		info, err := s.storage.LastImport(ctx)
		switch {
		case err == nil:
			snapshot["last_import"] = info
		case !errors.Is(err, storage.ErrNotFound):
			s.logger.Warn("status: last import lookup failed", zap.Error(err))
		}
		if size, err := storage.DatabaseSize(s.config.Storage.DatabasePath); err == nil {
			snapshot["disk_usage_bytes"] = size
		}
		resp["snapshot"] = snapshot
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
