// Package fuzzymatch scores approximate string similarity on a 0-100 scale.
//
// The scorers follow the well-known fuzzywuzzy/rapidfuzz family: Ratio is the
// normalized insert/delete similarity, the partial and token variants build on
// it, and WRatio picks the best of them with length-dependent weights. Callers
// are expected to pass normalized text.
package fuzzymatch

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	unbaseScale        = 0.95
	partialScale       = 0.9
	longPartialScale   = 0.6
	partialLenRatio    = 1.5
	longPartialDivisor = 8.0
)

// Match is the best choice found by ExtractOne.
type Match struct {
	Value string
	Index int
	Score float64
}

// Ratio returns 100 * 2*LCS(a, b) / (len(a)+len(b)), the normalized Indel
// similarity. Two empty strings are identical (100).
func Ratio(a, b string) float64 {
	return ratioRunes([]rune(a), []rune(b))
}

func ratioRunes(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return 100 * float64(2*lcsLength(a, b)) / float64(total)
}

// lcsLength is the length of the longest common subsequence.
func lcsLength(a, b []rune) int {
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

// PartialRatio is the best Ratio between the shorter string and every
// equal-length window of the longer one.
func PartialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}

	best := 0.0
	for start := 0; start+len(short) <= len(long); start++ {
		score := ratioRunes(short, long[start:start+len(short)])
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

// TokenSortRatio compares the strings after sorting their tokens.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortedJoin(strings.Fields(a)), sortedJoin(strings.Fields(b)))
}

// TokenSetRatio compares the shared tokens against each side's remainder.
// When one token set contains the other the score is 100.
func TokenSetRatio(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var common, onlyA, onlyB []string
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			common = append(common, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if _, ok := setA[tok]; !ok {
			onlyB = append(onlyB, tok)
		}
	}

	if len(common) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	sect := sortedJoin(common)
	combinedA := joinNonEmpty(sect, sortedJoin(onlyA))
	combinedB := joinNonEmpty(sect, sortedJoin(onlyB))

	best := Ratio(combinedA, combinedB)
	if sect != "" {
		best = max(best, Ratio(sect, combinedA), Ratio(sect, combinedB))
	}
	return best
}

// PartialTokenRatio is 100 when the strings share any token, otherwise the
// PartialRatio of their sorted token strings.
func PartialTokenRatio(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			return 100
		}
	}
	return PartialRatio(sortedJoin(keys(setA)), sortedJoin(keys(setB)))
}

// WRatio combines the scorers above with weights that depend on how
// different the string lengths are. Empty input scores 0.
func WRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	lenA, lenB := len([]rune(a)), len([]rune(b))
	lenRatio := float64(max(lenA, lenB)) / float64(min(lenA, lenB))

	score := Ratio(a, b)
	if lenRatio < partialLenRatio {
		tokens := max(TokenSortRatio(a, b), TokenSetRatio(a, b))
		return max(score, tokens*unbaseScale)
	}

	scale := partialScale
	if lenRatio > longPartialDivisor {
		scale = longPartialScale
	}
	score = max(score, PartialRatio(a, b)*scale)
	return max(score, PartialTokenRatio(a, b)*unbaseScale*scale)
}

// ExtractOne returns the choice with the highest WRatio against query.
// The first choice wins ties. ok is false when no choice reaches cutoff.
func ExtractOne(query string, choices []string, cutoff float64) (Match, bool) {
	best := Match{Index: -1}
	for i, choice := range choices {
		score := WRatio(query, choice)
		if best.Index < 0 || score > best.Score {
			best = Match{Value: choice, Index: i, Score: score}
			if score == 100 {
				break
			}
		}
	}
	if best.Index < 0 || best.Score < cutoff {
		return Match{Index: -1}, false
	}
	return best, true
}

// Distance is the Levenshtein edit distance between a and b.
func Distance(a, b string) int {
	return fuzzy.LevenshteinDistance(a, b)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func sortedJoin(tokens []string) string {
	sorted := append([]string(nil), tokens...)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
