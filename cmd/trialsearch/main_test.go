package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/trialsearch/internal/cli"
	"github.com/hyperjump/trialsearch/internal/config"
	"github.com/hyperjump/trialsearch/internal/models"
)

const testCSV = "Study Title,Brief Summary,Conditions,Primary Outcome Measures,Study URL\n" +
	"Phase II trial of small cell lung cancer treatment,,Lung Cancer,,https://example.org/NCT01\n" +
	"Phase II trial of non-small cell lung cancer treatment,,Lung Cancer,,https://example.org/NCT02\n"

func TestSearchArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after query are moved first",
			args:     []string{"small cell", "-limit", "5"},
			expected: []string{"-limit", "5", "small cell"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-exact", "small cell"},
			expected: []string{"-exact", "small cell"},
		},
		{
			name:     "query only returns unchanged",
			args:     []string{"small cell"},
			expected: []string{"small cell"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"asthma", "AND", "children", "--exact"},
			expected: []string{"--exact", "asthma", "AND", "children"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := searchArgsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("searchArgsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"asthma"}, "asthma"},
		{"multiple words", []string{"small", "cell"}, "small cell"},
		{"quoted phrase", []string{"small cell AND lung"}, "small cell AND lung"},
		{"empty args", []string{}, ""},
		{"blank args", []string{"  ", "  "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildSearchQuery(tt.args)
			if got != tt.expected {
				t.Errorf("buildSearchQuery(%v) = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	for in, want := range map[string]cli.SearchOutputFormat{"text": cli.OutputText, "json": cli.OutputJSON, "tsv": cli.OutputTSV} {
		got, err := parseOutputFormat(in)
		if err != nil || got != want {
			t.Errorf("parseOutputFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := parseOutputFormat("yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  port: 8080
corpus:
  path: "./ctg-studies.csv"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(origWd) }()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	// On macOS, cwd can be /private/var/... while t.TempDir() is /var/...; compare canonical paths.
	resolvedCanon, _ := filepath.EvalSymlinks(resolved)
	configPathCanon, _ := filepath.EvalSymlinks(configPath)
	if resolvedCanon != configPathCanon {
		t.Errorf("resolved path = %s, want %s", resolvedCanon, configPathCanon)
	}
	if !cfg.Debug {
		t.Error("debug should be true from cwd config.yaml")
	}
}

func TestLoadConfig_usesExplicitPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != configPath {
		t.Errorf("resolved path = %s, want %s", resolved, configPath)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Search.MatchCap != 500 {
		t.Errorf("defaults not applied: %+v", cfg.Search)
	}
}

func TestLoadConfig_missingExplicitPath(t *testing.T) {
	if _, _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func testConfig(corpusPath string) *config.Config {
	cfg := &config.Config{Corpus: config.CorpusConfig{Path: corpusPath}}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestInitializeComponents_csv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctg-studies.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0600); err != nil {
		t.Fatal(err)
	}

	components, err := initializeComponents(context.Background(), testConfig(path), zap.NewNop())
	if err != nil {
		t.Fatalf("initializeComponents: %v", err)
	}
	defer components.Close()

	if components.Storage != nil {
		t.Error("csv corpus should not open storage")
	}
	resp, err := components.Engine.Search(context.Background(), &models.SearchQuery{Query: "small cell", Exact: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 || resp.Results[0].URL != "https://example.org/NCT01" {
		t.Errorf("got %+v", resp.Results)
	}
}

func TestImportThenInitializeFromSnapshot(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "ctg-studies.csv")
	if err := os.WriteFile(csvPath, []byte(testCSV), 0600); err != nil {
		t.Fatal(err)
	}
	dbPath := filepath.Join(dir, "db", "trials.db")

	n, err := importCorpus(context.Background(), csvPath, "", dbPath)
	if err != nil {
		t.Fatalf("importCorpus: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d trials, want 2", n)
	}

	components, err := initializeComponents(context.Background(), testConfig(dbPath), zap.NewNop())
	if err != nil {
		t.Fatalf("initializeComponents: %v", err)
	}
	defer components.Close()

	if components.Storage == nil {
		t.Fatal("sqlite corpus should keep storage open")
	}
	if stats := components.Engine.Stats(); stats.Trials != 2 {
		t.Errorf("trials = %d, want 2", stats.Trials)
	}
	resp, err := components.Engine.Search(context.Background(), &models.SearchQuery{Query: "non small cell", Exact: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 || resp.Results[0].ID != 1 {
		t.Errorf("got %+v", resp.Results)
	}
}

func TestInitializeComponents_missingCorpus(t *testing.T) {
	_, err := initializeComponents(context.Background(), testConfig(filepath.Join(t.TempDir(), "none.csv")), zap.NewNop())
	if err == nil {
		t.Error("expected error for missing corpus")
	}
}

func TestWriteStatusText(t *testing.T) {
	var buf bytes.Buffer
	writeStatusText(&buf, &statusResponse{
		Trials:     2,
		Vocabulary: 9,
		Config:     map[string]interface{}{"match_cap": 500, "corpus_format": "csv"},
	})
	out := buf.String()
	for _, sub := range []string{"trials:       2", "vocabulary:   9", "# configuration", "match_cap:", "corpus_format:"} {
		if !strings.Contains(out, sub) {
			t.Errorf("status output missing %q:\n%s", sub, out)
		}
	}
	if strings.Contains(out, "# snapshot") {
		t.Error("empty snapshot section should be omitted")
	}
}
