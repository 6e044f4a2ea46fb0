// File: suggest.go
// Title: Nearest-Match Suggestions
// Description: Edit distance and candidate ranking used to propose a
//              correction for unknown command and parameter names.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-12
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation
// - 2025-11-12 v0.1.0: Distance backed by agnivade/levenshtein, stable sort for ranking

package suggest

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// MaxThreshold caps the accepted edit distance for long inputs
const MaxThreshold = 3

// Distance returns the Levenshtein distance between a and b, counted in
// runes. It is symmetric and zero only for equal strings.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Threshold returns the largest distance accepted for input: one third of
// its length plus one, between 1 and MaxThreshold
func Threshold(input string) int {
	t := utf8.RuneCountInString(input)/3 + 1
	return max(1, min(t, MaxThreshold))
}

// Match is a ranked candidate
type Match struct {
	Candidate string
	Distance  int
}

// Closest returns the best candidate for input, or false when none is close
// enough. Comparison is case-insensitive. A candidate that has the input as
// prefix or suffix (or vice versa) is eligible even beyond the threshold.
// The smallest distance wins; ties go to the earlier candidate.
func Closest(input string, candidates []string) (string, bool) {
	ranked := Rank(input, candidates, 1)
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Candidate, true
}

// Rank returns up to limit eligible candidates ordered by distance, keeping
// declaration order among equals. A limit of zero or less means no limit.
func Rank(input string, candidates []string, limit int) []Match {
	if input == "" || len(candidates) == 0 {
		return nil
	}

	folder := cases.Fold()
	in := folder.String(input)
	threshold := Threshold(input)

	var matches []Match
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true

		fc := folder.String(c)
		d := Distance(in, fc)
		if d <= threshold || affixMatch(in, fc) {
			matches = append(matches, Match{Candidate: c, Distance: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// affixMatch requires at least two runes of overlap so that single letters
// do not match everything
func affixMatch(input, candidate string) bool {
	if utf8.RuneCountInString(input) < 2 || utf8.RuneCountInString(candidate) < 2 {
		return false
	}
	return strings.HasPrefix(candidate, input) || strings.HasSuffix(candidate, input) ||
		strings.HasPrefix(input, candidate) || strings.HasSuffix(input, candidate)
}
