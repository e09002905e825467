package interpret

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"bizfinder/internal/fuzzymatch"
	"bizfinder/internal/normalize"
	"bizfinder/internal/vocab"
)

// DefaultCityThreshold is the minimum WRatio score for a city match.
const DefaultCityThreshold = 85

// CityExtractor finds at most one known city in a query and cuts it out.
type CityExtractor struct {
	cities    []string
	threshold float64
}

// NewCityExtractor creates an extractor over the cities of idx.
// A threshold <= 0 selects DefaultCityThreshold.
func NewCityExtractor(idx *vocab.Index, threshold float64) *CityExtractor {
	if threshold <= 0 {
		threshold = DefaultCityThreshold
	}
	return &CityExtractor{cities: idx.Cities(), threshold: threshold}
}

// Detect returns the best matching city and the query with the city removed.
// A city occurring as a whole word anywhere in the normalized query always
// matches. When no city clears the threshold it returns "" and the
// normalized query.
func (e *CityExtractor) Detect(query string) (city, residual string) {
	q := strings.Join(normalize.Fields(query), " ")
	if q == "" {
		return "", ""
	}

	best := -1.0
	exact := -1
	for _, c := range e.cities {
		score := fuzzymatch.WRatio(c, q)
		at := indexWord(q, c)
		if at >= 0 {
			score = 100
		}
		// strictly greater keeps the first city on ties, unless only the later one occurs exactly
		if score > best || (at >= 0 && exact < 0 && score == best) {
			best = score
			city = c
			exact = at
		}
	}
	if city == "" || best < e.threshold {
		return "", q
	}

	if exact >= 0 {
		return city, cutAt(q, exact, len(city))
	}
	return city, removeCity(strings.Fields(q), city)
}

// indexWord returns the byte offset of the first occurrence of word in s
// that is not glued to a letter or digit on either side, or -1.
func indexWord(s, word string) int {
	if word == "" {
		return -1
	}
	for off := 0; off < len(s); {
		i := strings.Index(s[off:], word)
		if i < 0 {
			return -1
		}
		i += off
		end := i + len(word)
		before, _ := utf8.DecodeLastRuneInString(s[:i])
		after, _ := utf8.DecodeRuneInString(s[end:])
		if (i == 0 || !isWordRune(before)) && (end == len(s) || !isWordRune(after)) {
			return i
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		off = i + size
	}
	return -1
}

// cutAt removes s[i:i+n] along with punctuation touching the cut and a
// directly preceding "in", then collapses whitespace.
func cutAt(s string, i, n int) string {
	left := strings.TrimRightFunc(s[:i], func(r rune) bool { return !isWordRune(r) })
	right := strings.TrimLeftFunc(s[i+n:], func(r rune) bool { return !isWordRune(r) })
	if left == "in" {
		left = ""
	} else {
		left = strings.TrimSuffix(left, " in")
	}
	return strings.Join(strings.Fields(left+" "+right), " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// removeCity cuts the token window closest to city and a directly preceding
// "in" out of tokens. The window is only removed when it is within a small
// edit distance of city.
func removeCity(tokens []string, city string) string {
	n := len(strings.Fields(city))

	start, ok := closestWindow(tokens, city, n)
	if !ok {
		return strings.Join(tokens, " ")
	}

	end := start + n
	if start > 0 && tokens[start-1] == "in" {
		start--
	}

	rest := make([]string, 0, len(tokens)-(end-start))
	rest = append(rest, tokens[:start]...)
	rest = append(rest, tokens[end:]...)
	return strings.Join(rest, " ")
}

func closestWindow(tokens []string, city string, n int) (int, bool) {
	if n == 0 || n > len(tokens) {
		return 0, false
	}
	maxDist := max(1, len(city)/4)

	bestStart, bestDist := -1, 0
	for i := 0; i+n <= len(tokens); i++ {
		d := fuzzymatch.Distance(strings.Join(tokens[i:i+n], " "), city)
		if bestStart < 0 || d < bestDist {
			bestStart, bestDist = i, d
		}
	}
	if bestStart < 0 || bestDist > maxDist {
		return 0, false
	}
	return bestStart, true
}
