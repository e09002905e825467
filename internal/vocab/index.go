// Package vocab holds the vocabulary index built once at startup from the
// listings store: normalized category, subcategory and city labels, their
// embeddings, and the flat word list used for spelling correction.
package vocab

import (
	"fmt"
	"sort"
	"strings"
)

// LabelSet identifies one of the embedded label groups.
type LabelSet string

const (
	// Categories is the set of distinct listing categories.
	Categories LabelSet = "category"
	// Subcategories is the set of distinct listing subcategories.
	Subcategories LabelSet = "subcategory"
)

// Index is the immutable vocabulary shared by every query evaluation.
// Slices returned by its accessors must not be modified.
type Index struct {
	categoryLabels        []string
	categoryEmbeddings    [][]float32
	subcategoryLabels     []string
	subcategoryEmbeddings [][]float32
	cities                []string
	words                 []string
	wordSet               map[string]struct{}
}

// New assembles an Index from already normalized labels and embeddings.
// Labels and embeddings must be index-aligned and of equal length.
func New(categories []string, categoryEmbeddings [][]float32, subcategories []string, subcategoryEmbeddings [][]float32, cities []string) (*Index, error) {
	return assemble(categories, categoryEmbeddings, subcategories, subcategoryEmbeddings, cities, buildWords(categories, subcategories, cities))
}

func assemble(categories []string, categoryEmbeddings [][]float32, subcategories []string, subcategoryEmbeddings [][]float32, cities, words []string) (*Index, error) {
	if len(categories) != len(categoryEmbeddings) {
		return nil, fmt.Errorf("category labels (%d) and embeddings (%d) are not aligned", len(categories), len(categoryEmbeddings))
	}
	if len(subcategories) != len(subcategoryEmbeddings) {
		return nil, fmt.Errorf("subcategory labels (%d) and embeddings (%d) are not aligned", len(subcategories), len(subcategoryEmbeddings))
	}

	idx := &Index{
		categoryLabels:        categories,
		categoryEmbeddings:    categoryEmbeddings,
		subcategoryLabels:     subcategories,
		subcategoryEmbeddings: subcategoryEmbeddings,
		cities:                cities,
	}
	idx.words = words
	idx.wordSet = make(map[string]struct{}, len(idx.words))
	for _, w := range idx.words {
		idx.wordSet[w] = struct{}{}
	}
	return idx, nil
}

// Labels returns the labels of the given set.
func (i *Index) Labels(set LabelSet) []string {
	switch set {
	case Categories:
		return i.categoryLabels
	case Subcategories:
		return i.subcategoryLabels
	default:
		return nil
	}
}

// Embeddings returns the embeddings of the given set, aligned with Labels(set).
func (i *Index) Embeddings(set LabelSet) [][]float32 {
	switch set {
	case Categories:
		return i.categoryEmbeddings
	case Subcategories:
		return i.subcategoryEmbeddings
	default:
		return nil
	}
}

// Cities returns the known cities in vocabulary order.
func (i *Index) Cities() []string { return i.cities }

// Words returns the sorted word vocabulary.
func (i *Index) Words() []string { return i.words }

// HasWord reports whether word appears verbatim in the word vocabulary.
func (i *Index) HasWord(word string) bool {
	_, ok := i.wordSet[word]
	return ok
}

// Stats summarizes the index sizes for logging and health output.
type Stats struct {
	Categories    int `json:"categories"`
	Subcategories int `json:"subcategories"`
	Cities        int `json:"cities"`
	Words         int `json:"words"`
}

// Stats returns the sizes of each part of the index.
func (i *Index) Stats() Stats {
	return Stats{
		Categories:    len(i.categoryLabels),
		Subcategories: len(i.subcategoryLabels),
		Cities:        len(i.cities),
		Words:         len(i.words),
	}
}

func buildWords(groups ...[]string) []string {
	seen := make(map[string]struct{})
	for _, labels := range groups {
		for _, label := range labels {
			for _, w := range strings.Fields(label) {
				seen[w] = struct{}{}
			}
		}
	}
	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
