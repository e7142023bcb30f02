// Package textutils provides text normalization and comparison utilities.
// The edit-distance function lives here, separate from the matching engine's
// scoring policy, so the distance threshold can be tuned independently.
package textutils

import (
	"strings"
	"unicode/utf8"
)

// NormalizeLabel prepares a counterparty label for comparison: trimmed,
// lower-cased, inner whitespace collapsed.
func NormalizeLabel(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ContainsFold reports whether either string contains the other,
// case-insensitively, after normalization. Empty strings never match.
func ContainsFold(a, b string) bool {
	na, nb := NormalizeLabel(a), NormalizeLabel(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// Levenshtein computes the edit distance between two strings: the minimum
// number of single-rune insertions, deletions and substitutions needed to
// turn one into the other. Classic dynamic programming over two rows.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return utf8.RuneCountInString(b)
	}
	if len(rb) == 0 {
		return utf8.RuneCountInString(a)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
