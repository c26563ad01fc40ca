package search

import (
	"github.com/hyperjump/trialsearch/internal/config"
	"github.com/hyperjump/trialsearch/internal/models"
)

// ProcessQuery applies the configured limit defaults to the search query.
func ProcessQuery(query *models.SearchQuery, cfg *config.SearchConfig) {
	query.Validate(cfg.DefaultLimit, cfg.MaxLimit)
}
