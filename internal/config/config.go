// Package config provides configuration loading and structs for the trialsearch server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Storage StorageConfig `yaml:"storage"`
	Model   ModelConfig   `yaml:"model"`
	Search  SearchConfig  `yaml:"search"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// CorpusConfig points at the tabular corpus read once at boot.
type CorpusConfig struct {
	Path string `yaml:"path"`
	// Format is csv, xlsx or sqlite. Empty means infer from the file extension.
	Format string `yaml:"format"`
}

// StorageConfig holds the SQLite snapshot path used by the import command and the
// sqlite corpus format.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ModelConfig holds term-weight model settings.
type ModelConfig struct {
	MaxFeatures int `yaml:"max_features"`
	// Workers bounds the pool that vectorizes the corpus at boot.
	Workers int `yaml:"workers"`
}

// SearchConfig holds query-time settings.
type SearchConfig struct {
	DefaultLimit   int  `yaml:"default_limit"`
	MaxLimit       int  `yaml:"max_limit"`
	MatchCap       int  `yaml:"match_cap"`
	FuzzyThreshold int  `yaml:"fuzzy_threshold"`
	NegateFuzzy    bool `yaml:"negate_fuzzy"`
	// VectorCacheSize bounds the clause vector cache. Negative disables it.
	VectorCacheSize int `yaml:"vector_cache_size"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Corpus.Path = expandPath(cfg.Corpus.Path, configDir)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Corpus formats.
const (
	CorpusFormatCSV    = "csv"
	CorpusFormatXLSX   = "xlsx"
	CorpusFormatSQLite = "sqlite"
)

// CorpusFormat returns the configured corpus format, inferring it from the path
// extension when unset.
func (c *CorpusConfig) CorpusFormat() string {
	if c.Format != "" {
		return strings.ToLower(c.Format)
	}
	switch strings.ToLower(filepath.Ext(c.Path)) {
	case ".xlsx", ".xlsm":
		return CorpusFormatXLSX
	case ".db", ".sqlite", ".sqlite3":
		return CorpusFormatSQLite
	default:
		return CorpusFormatCSV
	}
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
