package tfidf

import (
	"regexp"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	bleveregexp "github.com/blevesearch/bleve/v2/analysis/tokenizer/regexp"
)

// tokenPattern keeps runs of two or more word characters; single characters are dropped.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Analyzer splits text into lowercase terms. It is stateless and safe for concurrent use.
type Analyzer struct {
	tokenizer analysis.Tokenizer
	filters   []analysis.TokenFilter
}

// NewAnalyzer returns the analyzer used by both Fit and Transform.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		tokenizer: bleveregexp.NewRegexpTokenizer(tokenPattern),
		filters:   []analysis.TokenFilter{lowercase.NewLowerCaseFilter()},
	}
}

// Terms returns the terms of text in order of appearance, duplicates included.
func (a *Analyzer) Terms(text string) []string {
	if text == "" {
		return nil
	}
	stream := a.tokenizer.Tokenize([]byte(text))
	for _, f := range a.filters {
		stream = f.Filter(stream)
	}
	terms := make([]string, len(stream))
	for i, tok := range stream {
		terms[i] = string(tok.Term)
	}
	return terms
}
