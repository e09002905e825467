package interpret

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bizfinder/internal/vectorstore"
	"bizfinder/internal/vocab"
)

// features are the embedding dimensions of keywordEmbedder.
var features = []string{"ayurved", "hospital", "clinic", "restaurant", "pizza", "school"}

// keywordEmbedder embeds a text as a bag of the feature keywords it contains.
type keywordEmbedder struct {
	err   error
	calls int
}

func (e *keywordEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, len(features))
		for j, f := range features {
			if strings.Contains(text, f) {
				vec[j] = 1
			}
		}
		out[i] = vec
	}
	return out, nil
}

var errUnavailable = errors.New("unavailable")

func embedAll(t *testing.T, labels []string) [][]float32 {
	t.Helper()
	if len(labels) == 0 {
		return [][]float32{}
	}
	vecs, err := (&keywordEmbedder{}).EmbedTexts(context.Background(), labels)
	if err != nil {
		t.Fatalf("embed labels: %v", err)
	}
	return vecs
}

func newTestIndex(t *testing.T, categories, subcategories, cities []string) *vocab.Index {
	t.Helper()
	idx, err := vocab.New(categories, embedAll(t, categories), subcategories, embedAll(t, subcategories), cities)
	if err != nil {
		t.Fatalf("vocab.New() error = %v", err)
	}
	return idx
}

func defaultTestIndex(t *testing.T) *vocab.Index {
	return newTestIndex(t,
		[]string{"ayurvedic hospital", "pizza restaurant", "school"},
		[]string{"ayurveda clinic", "pizza"},
		[]string{"chirala", "guntur", "new york"},
	)
}

func newTestInterpreter(t *testing.T, idx *vocab.Index, embedder Embedder) *Interpreter {
	t.Helper()
	return New(idx, embedder, vectorstore.NewMemoryScorer(idx), Options{})
}
