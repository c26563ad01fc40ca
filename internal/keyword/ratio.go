package keyword

import (
	"math/bits"
	"strings"
)

// Ratio returns the normalized indel similarity of a and b in [0, 100]:
// 100 * 2*LCS(a, b) / (len(a) + len(b)), measured in runes.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	return ratio(ra, rb, lcs(ra, rb))
}

// PartialRatio returns the best Ratio between the shorter string and every window of the
// longer string, including windows clipped at either end. Empty inputs score 0.
func PartialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if strings.Contains(string(long), string(short)) {
		return 100
	}

	m, n := len(short), len(long)
	score := lcsScorer(short)
	best := 0.0
	consider := func(window []rune) bool {
		if r := ratio(short, window, score(window)); r > best {
			best = r
		}
		return best >= 100
	}

	for i := 1; i < m; i++ {
		if consider(long[:i]) {
			return best
		}
	}
	for i := 0; i+m <= n; i++ {
		if consider(long[i : i+m]) {
			return best
		}
	}
	for i := n - m + 1; i < n; i++ {
		if consider(long[i:]) {
			return best
		}
	}
	return best
}

func ratio(a, b []rune, common int) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	return 100 * float64(2*common) / float64(total)
}

// lcsScorer precomputes what it can about s and returns a function computing the length of
// the longest common subsequence of s and any other string.
func lcsScorer(s []rune) func([]rune) int {
	if len(s) > 0 && len(s) <= 64 {
		pm := make(map[rune]uint64, len(s))
		for i, r := range s {
			pm[r] |= 1 << uint(i)
		}
		var mask uint64 = 1<<uint(len(s)) - 1
		if len(s) == 64 {
			mask = ^uint64(0)
		}
		return func(t []rune) int {
			return lcsBitParallel(pm, mask, t)
		}
	}
	return func(t []rune) int { return lcsDP(s, t) }
}

func lcs(a, b []rune) int {
	return lcsScorer(a)(b)
}

// lcsBitParallel computes LCS length with a single machine word per step (Hyyrö 2004).
func lcsBitParallel(pm map[rune]uint64, mask uint64, t []rune) int {
	s := ^uint64(0)
	for _, r := range t {
		match := pm[r]
		u := s & match
		s = (s + u) | (s - u)
	}
	return bits.OnesCount64(^s & mask)
}

// lcsDP computes LCS length with two rolling rows.
func lcsDP(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
