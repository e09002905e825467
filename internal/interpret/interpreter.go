// Package interpret turns a raw query into a structured interpretation:
// spelling correction, city extraction and category classification.
package interpret

import (
	"context"

	"bizfinder/internal/contextutil"
	"bizfinder/internal/vocab"
)

// Result is the interpretation of one query. Category and Subcategory are
// empty when none was found, City is empty when no city was detected.
type Result struct {
	CorrectedQuery    string   `json:"corrected_query"`
	Category          string   `json:"category"`
	Subcategory       string   `json:"subcategory"`
	City              string   `json:"city"`
	CategoryScore     float64  `json:"category_score"`
	SubcategoryScore  float64  `json:"subcategory_score"`
	CombinedScore     float64  `json:"combined_score"`
	SimilarCategories []string `json:"similar_categories"`
}

// Options tunes the interpretation thresholds. Zero values select defaults.
type Options struct {
	SpellThreshold    float64
	CityThreshold     float64
	SimilarCategories int
}

// Interpreter runs city extraction followed by classification.
type Interpreter struct {
	cities     *CityExtractor
	classifier *Classifier
}

// New creates an Interpreter over idx.
func New(idx *vocab.Index, embedder Embedder, scorer LabelScorer, opts Options) *Interpreter {
	speller := NewSpeller(idx, opts.SpellThreshold)
	return &Interpreter{
		cities:     NewCityExtractor(idx, opts.CityThreshold),
		classifier: NewClassifier(idx, speller, embedder, scorer, opts.SimilarCategories),
	}
}

// Interpret detects and strips the city, then classifies the remaining text.
func (i *Interpreter) Interpret(ctx context.Context, query string) Result {
	city, residual := i.cities.Detect(query)
	res := i.classifier.Classify(ctx, residual)
	res.City = city

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "query interpreted",
		"corrected_query", res.CorrectedQuery,
		"category", res.Category,
		"subcategory", res.Subcategory,
		"city", res.City,
		"combined_score", res.CombinedScore,
	)
	return res
}
