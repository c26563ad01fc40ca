package keyword

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"abc", "abc", 100},
		{"abcd", "abce", 75},
		{"abc", "xyz", 0},
		{"", "", 0},
		{"", "abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestPartialRatio(t *testing.T) {
	t.Run("substring", func(t *testing.T) {
		assert.Equal(t, 100.0, PartialRatio("cancer", "phase ii trial of lung cancer treatment"))
	})
	t.Run("symmetric", func(t *testing.T) {
		a, b := "lung cancr", "phase ii trial of lung cancer"
		assert.InDelta(t, PartialRatio(a, b), PartialRatio(b, a), 1e-9)
	})
	t.Run("typo", func(t *testing.T) {
		// best window "cance" shares 4 of 5 runes
		assert.InDelta(t, 80.0, PartialRatio("cancr", "lung cancer"), 1e-9)
	})
	t.Run("unrelated", func(t *testing.T) {
		assert.Less(t, PartialRatio("diabetes", "small cell lung cancer"), 80.0)
	})
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, PartialRatio("", "abc"))
		assert.Equal(t, 0.0, PartialRatio("abc", ""))
	})
	t.Run("clipped window at end", func(t *testing.T) {
		// only the clipped suffix window "abc" overlaps
		assert.InDelta(t, 100*2*3.0/7.0, PartialRatio("abcd", "xxxxabc"), 1e-9)
	})
}

func TestLCSImplementationsAgree(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"small cell", "non-small cell lung"},
		{"", "abc"},
		{"aaaa", "aa"},
		{"ünïcode", "unicode"},
	}
	for _, p := range pairs {
		a, b := []rune(p[0]), []rune(p[1])
		assert.Equal(t, lcsDP(a, b), lcs(a, b), "pair %q", p)
	}
}

func TestLCSLongPattern(t *testing.T) {
	long := strings.Repeat("ab", 40)
	other := strings.Repeat("ba", 40)
	a, b := []rune(long), []rune(other)
	assert.Equal(t, 79, lcs(a, b))
	assert.Equal(t, 79, lcsDP(a, b))
}

func BenchmarkPartialRatio(b *testing.B) {
	text := strings.Repeat("phase ii randomized trial of chemotherapy in small cell lung cancer ", 8)
	for i := 0; i < b.N; i++ {
		PartialRatio("small cel lung", text)
	}
}
