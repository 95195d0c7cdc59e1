package ui

import (
	"sort"
	"strings"
)

const (
	// maxDistance is the largest edit distance still offered as a
	// suggestion.
	maxDistance = 3
	// maxSuggestions caps how many candidates Suggest returns.
	maxSuggestions = 3
)

// Suggest returns the candidates closest to target by edit distance,
// nearest first. Matching ignores case; candidates more than three
// edits away are not offered, and ties keep their input order.
//
// Example:
//
//	Suggest("Instnce", []string{"Instance", "Network", "Subnet"})
//	// Returns: ["Instance"]
func Suggest(target string, candidates []string) []string {
	type match struct {
		value    string
		distance int
	}

	var matches []match
	for _, candidate := range candidates {
		dist := Levenshtein(strings.ToLower(target), strings.ToLower(candidate))
		if dist <= maxDistance {
			matches = append(matches, match{value: candidate, distance: dist})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.value
	}
	return out
}

// Levenshtein returns the minimum number of single-character edits
// (insertions, deletions, or substitutions) required to turn s1 into
// s2.
//
// Example:
//
//	Levenshtein("kitten", "sitting") // Returns: 3
func Levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
