package interpret

import (
	"strings"

	"bizfinder/internal/fuzzymatch"
	"bizfinder/internal/normalize"
	"bizfinder/internal/vocab"
)

// DefaultSpellThreshold is the minimum WRatio score for a correction.
const DefaultSpellThreshold = 85

// minCorrectableLen is the shortest word the speller will try to correct.
const minCorrectableLen = 3

// connectives are never corrected; fuzzy partial matching would otherwise
// turn them into vocabulary words ("in" -> "indian").
var connectives = map[string]struct{}{
	"in": {}, "at": {}, "near": {}, "of": {}, "the": {}, "for": {},
	"a": {}, "an": {}, "and": {}, "to": {}, "on": {},
}

// Speller corrects query tokens against the vocabulary word list.
type Speller struct {
	idx       *vocab.Index
	threshold float64
}

// NewSpeller creates a speller over idx. A threshold <= 0 selects DefaultSpellThreshold.
func NewSpeller(idx *vocab.Index, threshold float64) *Speller {
	if threshold <= 0 {
		threshold = DefaultSpellThreshold
	}
	return &Speller{idx: idx, threshold: threshold}
}

// CorrectWord returns the closest vocabulary word when it scores at least the
// threshold, and word unchanged otherwise. Vocabulary words are never changed.
func (s *Speller) CorrectWord(word string) string {
	if word == "" || s.idx.HasWord(word) {
		return word
	}
	if _, ok := connectives[word]; ok || len([]rune(word)) < minCorrectableLen {
		return word
	}
	match, ok := fuzzymatch.ExtractOne(word, s.idx.Words(), s.threshold)
	if !ok {
		return word
	}
	return match.Value
}

// CorrectQuery normalizes query and corrects each token independently.
func (s *Speller) CorrectQuery(query string) string {
	tokens := normalize.Fields(query)
	for i, t := range tokens {
		tokens[i] = s.CorrectWord(t)
	}
	return strings.Join(tokens, " ")
}
