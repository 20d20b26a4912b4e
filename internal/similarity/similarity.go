// Package similarity provides the string comparison primitives used by the
// matching engine: normalized Levenshtein similarity, shared-word overlap,
// and semantic feature extraction from transaction descriptions.
package similarity

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// StringSimilarity returns a similarity ratio in [0, 1] between two strings,
// computed as 1 - editDistance/maxLen on the lowercased inputs. Two empty
// strings are identical (1.0); one empty string against a non-empty one is
// completely dissimilar (0.0).
func StringSimilarity(s1, s2 string) float64 {
	a := strings.ToLower(strings.TrimSpace(s1))
	b := strings.ToLower(strings.TrimSpace(s2))

	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	ra := []rune(a)
	rb := []rune(b)
	distance := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptionsWithSub)

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// SharedWords returns the words longer than minLen that appear in both
// strings, compared case-insensitively. Duplicate words count once.
func SharedWords(s1, s2 string, minLen int) []string {
	words1 := strings.Fields(strings.ToLower(s1))
	words2 := strings.Fields(strings.ToLower(s2))

	set2 := make(map[string]bool, len(words2))
	for _, w := range words2 {
		set2[w] = true
	}

	seen := make(map[string]bool)
	var shared []string
	for _, w := range words1 {
		if len(w) > minLen && set2[w] && !seen[w] {
			shared = append(shared, w)
			seen[w] = true
		}
	}
	return shared
}

// ContainsFold reports whether substr occurs within s, case-insensitively.
// An empty substr never matches.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
