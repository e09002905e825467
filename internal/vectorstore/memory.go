package vectorstore

import (
	"context"
	"fmt"
	"math"

	"bizfinder/internal/vocab"
)

// MemoryScorer computes cosine similarity against the embeddings held by the
// vocabulary index.
type MemoryScorer struct {
	idx *vocab.Index
}

// NewMemoryScorer creates a scorer over idx.
func NewMemoryScorer(idx *vocab.Index) *MemoryScorer {
	return &MemoryScorer{idx: idx}
}

// Scores implements Scorer.
func (s *MemoryScorer) Scores(ctx context.Context, set vocab.LabelSet, query []float32) ([]float64, error) {
	embeddings := s.idx.Embeddings(set)
	scores := make([]float64, len(embeddings))
	for i, emb := range embeddings {
		score, err := Cosine(query, emb)
		if err != nil {
			return nil, fmt.Errorf("score %s label %d: %w", set, i, err)
		}
		scores[i] = score
	}
	return scores, nil
}

// Cosine returns the cosine similarity of a and b, 0 when either is a zero vector.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrVectorLengthMismatch
	}
	var dot, na, nb float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	den := math.Sqrt(na) * math.Sqrt(nb)
	if den == 0 {
		return 0, nil
	}
	return dot / den, nil
}
