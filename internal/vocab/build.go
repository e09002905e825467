package vocab

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"bizfinder/internal/contextutil"
	"bizfinder/internal/normalize"
)

// Listing columns the vocabulary is read from.
const (
	ColumnCategory    = "category"
	ColumnSubcategory = "subcategory"
	ColumnCity        = "city"
)

// Source reads the distinct raw values of a listing column.
type Source interface {
	DistinctValues(ctx context.Context, column string) ([]string, error)
}

// Embedder turns a batch of texts into vectors, one per text.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Build loads the distinct category, subcategory and city values from src,
// normalizes them and embeds the category and subcategory labels.
//
// A failing read is returned as an error and must halt startup. A field with
// no rows yields an empty part. An embedding failure leaves the affected label
// set empty so classification degrades to zero confidence.
func Build(ctx context.Context, src Source, embedder Embedder) (*Index, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var categories, subcategories, cities []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = loadLabels(gctx, src, ColumnCategory)
		return err
	})
	g.Go(func() error {
		var err error
		subcategories, err = loadLabels(gctx, src, ColumnSubcategory)
		return err
	})
	g.Go(func() error {
		var err error
		cities, err = loadLabels(gctx, src, ColumnCity)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var categoryEmbeddings, subcategoryEmbeddings [][]float32
	var eg errgroup.Group
	eg.Go(func() error {
		categoryEmbeddings = embedLabels(ctx, embedder, Categories, categories)
		return nil
	})
	eg.Go(func() error {
		subcategoryEmbeddings = embedLabels(ctx, embedder, Subcategories, subcategories)
		return nil
	})
	_ = eg.Wait()

	// words come from every label even when a set could not be embedded
	words := buildWords(categories, subcategories, cities)
	if categoryEmbeddings == nil {
		categories = nil
	}
	if subcategoryEmbeddings == nil {
		subcategories = nil
	}

	idx, err := assemble(categories, categoryEmbeddings, subcategories, subcategoryEmbeddings, cities, words)
	if err != nil {
		return nil, err
	}

	stats := idx.Stats()
	logger.InfoContext(ctx, "vocabulary index built",
		"categories", stats.Categories,
		"subcategories", stats.Subcategories,
		"cities", stats.Cities,
		"words", stats.Words,
	)
	return idx, nil
}

// loadLabels reads one column and returns its normalized, deduplicated,
// sorted non-empty values.
func loadLabels(ctx context.Context, src Source, column string) ([]string, error) {
	raw, err := src.DistinctValues(ctx, column)
	if err != nil {
		return nil, fmt.Errorf("failed to load distinct %s values: %w", column, err)
	}

	seen := make(map[string]struct{}, len(raw))
	labels := make([]string, 0, len(raw))
	for _, v := range raw {
		label := normalize.Text(v)
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels, nil
}

// embedLabels returns nil when the embedder fails or returns a misaligned
// batch, and an empty non-nil slice for an empty label set.
func embedLabels(ctx context.Context, embedder Embedder, set LabelSet, labels []string) [][]float32 {
	if len(labels) == 0 {
		return [][]float32{}
	}

	logger := contextutil.LoggerFromContext(ctx)
	vectors, err := embedder.EmbedTexts(ctx, labels)
	if err != nil {
		logger.WarnContext(ctx, "embedding collaborator unavailable, label set left empty", "set", set, "labels", len(labels), "error", err)
		return nil
	}
	if len(vectors) != len(labels) {
		logger.WarnContext(ctx, "embedding count mismatch, label set left empty", "set", set, "labels", len(labels), "embeddings", len(vectors))
		return nil
	}
	return vectors
}
