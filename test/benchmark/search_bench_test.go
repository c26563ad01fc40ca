package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/hyperjump/trialsearch/internal/config"
	"github.com/hyperjump/trialsearch/internal/indexer"
	"github.com/hyperjump/trialsearch/internal/keyword"
	"github.com/hyperjump/trialsearch/internal/models"
	"github.com/hyperjump/trialsearch/internal/search"
	"github.com/hyperjump/trialsearch/internal/tfidf"
)

var benchConditions = []string{
	"small cell lung cancer", "non-small cell lung cancer", "type 2 diabetes", "heart failure",
	"rheumatoid arthritis", "multiple sclerosis", "asthma", "migraine", "glioblastoma", "psoriasis",
}

func benchTrials(n int) []models.TrialInput {
	out := make([]models.TrialInput, n)
	for i := range out {
		cond := benchConditions[i%len(benchConditions)]
		out[i] = models.TrialInput{
			Title:          fmt.Sprintf("Phase %d study %d of TRX-%d in %s", i%3+1, i, i, cond),
			Summary:        fmt.Sprintf("Randomized evaluation of TRX-%d for adults with %s.", i, cond),
			Conditions:     cond,
			PrimaryOutcome: "Overall survival",
			URL:            fmt.Sprintf("https://clinicaltrials.gov/study/NCT%08d", i),
		}
	}
	return out
}

func benchIndex(b *testing.B, n int) *indexer.Index {
	b.Helper()
	index, err := indexer.NewIndexer(&config.ModelConfig{Workers: 4}).Build(context.Background(), benchTrials(n))
	if err != nil {
		b.Fatal(err)
	}
	return index
}

func benchConfig() *config.SearchConfig {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return &cfg.Search
}

func BenchmarkIntersect(b *testing.B) {
	sets := make([]search.CandidateSet, 3)
	for s := range sets {
		sets[s] = search.CandidateSet{}
		for i := s; i < 1000; i += s + 1 {
			sets[s][i] = float64(i%17) / 17
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = search.Intersect(sets)
	}
}

func BenchmarkIndexBuild(b *testing.B) {
	trials := benchTrials(2000)
	idx := indexer.NewIndexer(&config.ModelConfig{Workers: 4})
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := idx.Build(ctx, trials); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTableRank(b *testing.B) {
	index := benchIndex(b, 5000)
	query := index.Model.Transform("small cell lung cancer")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = index.Table.Rank(query)
	}
}

func BenchmarkTransform(b *testing.B) {
	model := tfidf.Fit([]string{"small cell lung cancer", "type 2 diabetes", "heart failure"}, tfidf.Options{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = model.Transform("small cell lung cancer heart failure")
	}
}

func BenchmarkPartialRatio(b *testing.B) {
	text := "phase ii randomized study of trx-101 in adults with non-small cell lung cancer"
	b.Run("short", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = keyword.PartialRatio("lung cancr", text)
		}
	})
	long := "an open label study of pembrolizumab plus chemotherapy versus chemotherapy alone for patients with previously untreated metastatic squamous disease"
	b.Run("long", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = keyword.PartialRatio(long, text+" "+long)
		}
	})
}

func BenchmarkEngineSearch(b *testing.B) {
	index := benchIndex(b, 5000)
	ctx := context.Background()
	for _, exact := range []bool{true, false} {
		exact := exact
		e := search.NewEngine(index, benchConfig())
		b.Run(fmt.Sprintf("exact=%v", exact), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, err := e.Search(ctx, &models.SearchQuery{Query: "lung cancer AND phase 2", Exact: exact})
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
