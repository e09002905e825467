package interpret

import (
	"context"
	"fmt"
	"sort"

	"bizfinder/internal/contextutil"
	"bizfinder/internal/vocab"
)

// DefaultSimilarCategories is how many runner-up categories a Result carries.
const DefaultSimilarCategories = 5

const (
	categoryWeight    = 0.7
	subcategoryWeight = 0.3
)

// Embedder turns texts into embedding vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// LabelScorer scores a query vector against every label of a set. The
// returned slice is index-aligned with vocab.Index.Labels(set).
type LabelScorer interface {
	Scores(ctx context.Context, set vocab.LabelSet, query []float32) ([]float64, error)
}

// Classifier picks the category and subcategory closest to a query.
type Classifier struct {
	idx      *vocab.Index
	speller  *Speller
	embedder Embedder
	scorer   LabelScorer
	similar  int
}

// NewClassifier creates a classifier. similar <= 0 selects DefaultSimilarCategories.
func NewClassifier(idx *vocab.Index, speller *Speller, embedder Embedder, scorer LabelScorer, similar int) *Classifier {
	if similar <= 0 {
		similar = DefaultSimilarCategories
	}
	return &Classifier{
		idx:      idx,
		speller:  speller,
		embedder: embedder,
		scorer:   scorer,
		similar:  similar,
	}
}

// Classify spell-corrects residual and scores it against the label sets.
// Collaborator failures and an empty category set produce a Result with no
// category and zero scores.
func (c *Classifier) Classify(ctx context.Context, residual string) Result {
	logger := contextutil.LoggerFromContext(ctx)

	corrected := c.speller.CorrectQuery(residual)
	res := Result{CorrectedQuery: corrected, SimilarCategories: []string{}}

	categories := c.idx.Labels(vocab.Categories)
	if corrected == "" || len(categories) == 0 {
		return res
	}

	vec, err := c.embed(ctx, corrected)
	if err != nil {
		logger.WarnContext(ctx, "embedder unavailable, classification skipped", "error", err)
		return res
	}

	catScores, err := c.scorer.Scores(ctx, vocab.Categories, vec)
	if err != nil || len(catScores) != len(categories) {
		logger.WarnContext(ctx, "category scoring failed", "error", err, "scores", len(catScores), "labels", len(categories))
		return res
	}

	best := argmax(catScores)
	res.Category = categories[best]
	res.CategoryScore = clamp(catScores[best])
	res.SimilarCategories = runnersUp(categories, catScores, best, c.similar)

	if subcategories := c.idx.Labels(vocab.Subcategories); len(subcategories) > 0 {
		subScores, err := c.scorer.Scores(ctx, vocab.Subcategories, vec)
		if err != nil || len(subScores) != len(subcategories) {
			logger.WarnContext(ctx, "subcategory scoring failed", "error", err)
		} else {
			bestSub := argmax(subScores)
			res.Subcategory = subcategories[bestSub]
			res.SubcategoryScore = clamp(subScores[bestSub])
		}
	}

	res.CombinedScore = clamp(categoryWeight*res.CategoryScore + subcategoryWeight*res.SubcategoryScore)
	return res
}

func (c *Classifier) embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.embedder.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(vectors))
	}
	return vectors[0], nil
}

// argmax returns the index of the highest score, the lowest index on ties.
func argmax(scores []float64) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}

// runnersUp returns up to k labels by descending score, skipping index skip.
func runnersUp(labels []string, scores []float64, skip, k int) []string {
	order := make([]int, 0, len(labels))
	for i := range labels {
		if i != skip {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	out := make([]string, 0, min(k, len(order)))
	for _, i := range order[:min(k, len(order))] {
		out = append(out, labels[i])
	}
	return out
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
