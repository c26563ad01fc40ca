// Package main is the trialsearch CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/trialsearch/internal/cli"
	"github.com/hyperjump/trialsearch/internal/config"
	"github.com/hyperjump/trialsearch/internal/corpus"
	"github.com/hyperjump/trialsearch/internal/indexer"
	"github.com/hyperjump/trialsearch/internal/metrics"
	"github.com/hyperjump/trialsearch/internal/models"
	"github.com/hyperjump/trialsearch/internal/search"
	"github.com/hyperjump/trialsearch/internal/server"
	"github.com/hyperjump/trialsearch/internal/storage"
	"github.com/hyperjump/trialsearch/pkg/utils"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/trialsearch/config.yaml"
	defaultServerURL  = "http://localhost:5000"
)

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development). A missing default config is not
// an error: built-in defaults are used.
// Returns the config and the path that was actually loaded ("" for built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "import":
		runImport()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("trialsearch version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (per-request search details)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.Debug = cfg.Debug || *debug
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", cfg.Debug),
	)

	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	stats := components.Engine.Stats()
	metrics.SetIndexSize(stats.Trials, stats.Vocabulary)

	srv := server.NewServer(components.Engine, components.Storage, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: trialsearch search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Separate required concepts with AND (upper case).\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Trials are ranked by TF-IDF similarity and then confirmed textually:
  • --exact requires the query words in order (separated by nothing, a space or a hyphen)
    and drops negated mentions such as "non-small cell" for "small cell".
  • Without --exact, fuzzy partial matching tolerates typos.

Examples:
  trialsearch search small cell lung cancer
  trialsearch search --exact "small cell AND chemotherapy"
  trialsearch search --limit 50 --output tsv asthma AND children
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func parseOutputFormat(s string) (cli.SearchOutputFormat, error) {
	switch s {
	case "text":
		return cli.OutputText, nil
	case "json":
		return cli.OutputJSON, nil
	case "tsv":
		return cli.OutputTSV, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text, tsv, or json", s)
	}
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (direct mode)")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = load the corpus and search directly)")
	limit := fs.Int("limit", 0, "number of results (0 = configured default)")
	exact := fs.Bool("exact", false, "use exact pattern confirmation instead of fuzzy matching")
	outputFormat := fs.String("output", "text", "output format: text, tsv, or json")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgsReorder(os.Args[2:]))

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}
	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	searchQuery := &models.SearchQuery{Query: queryStr, Limit: *limit, Exact: *exact}

	var response *models.SearchResponse
	if *serverURL != "" {
		response, err = searchViaHTTP(*serverURL, searchQuery)
	} else {
		response, err = searchDirect(*configPath, searchQuery)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchDirect(configPath string, query *models.SearchQuery) (*models.SearchResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	components, err := initializeComponents(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer components.Close()
	return components.Engine.Search(ctx, query)
}

func searchViaHTTP(serverURL string, query *models.SearchQuery) (*models.SearchResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Trials     int                    `json:"trials"`
	Vocabulary int                    `json:"vocabulary"`
	Config     map[string]interface{} `json:"config,omitempty"`
	Snapshot   map[string]interface{} `json:"snapshot,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (direct mode)")
	serverURL := fs.String("server", defaultServerURL, "server URL (empty = build the index directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var (
		status *statusResponse
		err    error
	)
	if *serverURL != "" {
		status, err = statusViaHTTP(*serverURL)
	} else {
		status, err = statusDirect(*configPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		writeStatusText(os.Stdout, status)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func writeStatusText(w io.Writer, status *statusResponse) {
	fmt.Fprintf(w, "trials:       %d   # trials in the loaded index\n", status.Trials)
	fmt.Fprintf(w, "vocabulary:   %d   # terms in the TF-IDF model\n", status.Vocabulary)
	writeSection(w, "configuration", status.Config)
	writeSection(w, "snapshot", status.Snapshot)
}

func writeSection(w io.Writer, title string, values map[string]interface{}) {
	if len(values) == 0 {
		return
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(w, "\n# %s\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "%-16s %v\n", k+":", values[k])
	}
}

func statusDirect(configPath string) (*statusResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}
	defer components.Close()

	stats := components.Engine.Stats()
	return &statusResponse{
		Trials:     stats.Trials,
		Vocabulary: stats.Vocabulary,
		Config: map[string]interface{}{
			"corpus_path":   cfg.Corpus.Path,
			"corpus_format": cfg.Corpus.CorpusFormat(),
			"max_features":  cfg.Model.MaxFeatures,
			"match_cap":     cfg.Search.MatchCap,
		},
	}, nil
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	format := fs.String("format", "", "input format: csv or xlsx (default: from file extension)")
	dbPath := fs.String("db", "", "SQLite snapshot path (default: storage.database_path)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: trialsearch import [flags] <corpus.csv|corpus.xlsx>")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	target := *dbPath
	if target == "" {
		target = cfg.Storage.DatabasePath
	}
	n, err := importCorpus(context.Background(), fs.Arg(0), *format, target)
	if err != nil {
		fmt.Printf("Import failed: %v\n", err)
		os.Exit(1)
	}
	logger.Info("corpus imported", zap.String("source", fs.Arg(0)), zap.String("database", target), zap.Int("trials", n))
	fmt.Printf("Imported %d trials into %s\n", n, target)
}

// importCorpus loads a CSV or Excel corpus and replaces the SQLite snapshot at dbPath.
func importCorpus(ctx context.Context, path, format, dbPath string) (int, error) {
	inputs, err := corpus.NewLoader().Load(path, format)
	if err != nil {
		return 0, err
	}
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()
	if err := store.ReplaceTrials(ctx, filepath.Base(path), inputs); err != nil {
		return 0, fmt.Errorf("failed to store trials: %w", err)
	}
	return len(inputs), nil
}

// Components holds initialized services.
type Components struct {
	Storage storage.Storage // set when the corpus is read from a SQLite snapshot
	Index   *indexer.Index
	Engine  *search.Engine
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
}

func initializeComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error) {
	components := &Components{}

	var inputs []models.TrialInput
	format := cfg.Corpus.CorpusFormat()
	if format == config.CorpusFormatSQLite {
		store, err := storage.NewSQLiteStorage(cfg.Corpus.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		components.Storage = store
		inputs, err = store.ListTrials(ctx)
		if err != nil {
			components.Close()
			return nil, fmt.Errorf("failed to read corpus snapshot: %w", err)
		}
	} else {
		var err error
		inputs, err = corpus.NewLoader().Load(cfg.Corpus.Path, format)
		if err != nil {
			return nil, fmt.Errorf("failed to load corpus: %w", err)
		}
	}
	logger.Info("corpus loaded",
		zap.String("path", cfg.Corpus.Path),
		zap.String("format", format),
		zap.Int("trials", len(inputs)))

	index, err := indexer.NewIndexer(&cfg.Model, indexer.WithLogger(logger)).Build(ctx, inputs)
	if err != nil {
		components.Close()
		return nil, fmt.Errorf("failed to build index: %w", err)
	}
	components.Index = index

	engineOpts := []search.EngineOption{}
	if cfg.Debug {
		engineOpts = append(engineOpts, search.WithLogger(logger))
	}
	components.Engine = search.NewEngine(index, &cfg.Search, engineOpts...)
	return components, nil
}

func printUsage() {
	fmt.Println(`trialsearch - Clinical trial retrieval service

Usage:
  trialsearch server [flags]           Load the corpus and start the HTTP server
  trialsearch search [flags] <query>   Search trials
  trialsearch import [flags] <file>    Load a CSV/XLSX corpus into the SQLite snapshot
  trialsearch status [flags]           Show index status
  trialsearch version                  Show version
  trialsearch help                     Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/trialsearch/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --config string    Config file path (direct mode)
  --server string    Server URL (default: http://localhost:5000). Use empty (--server "") to search without a server.
  --limit int        Number of results (default: search.default_limit)
  --exact            Exact pattern confirmation with negation filtering (default: fuzzy)
  --output string    Output format: text, tsv or json (default: text)

Import Flags:
  --config string    Config file path
  --format string    csv or xlsx (default: from extension)
  --db string        Target SQLite path (default: storage.database_path)

Status Flags:
  --config string    Config file path (direct mode)
  --server string    Server URL (default: http://localhost:5000). Use empty (--server "") for direct mode.
  --output string    Output format: text or json (default: text)

Examples:
  trialsearch server
  trialsearch search "small cell lung cancer"
  trialsearch search --exact "small cell AND cisplatin"
  trialsearch import ctg-studies.csv
  trialsearch status --output json`)
}
