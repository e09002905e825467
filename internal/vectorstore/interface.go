// Package vectorstore scores query embeddings against the vocabulary label
// embeddings, either in process or through a Qdrant instance.
package vectorstore

import (
	"context"
	"errors"

	"bizfinder/internal/vocab"
)

// ErrVectorLengthMismatch is returned when two vectors of different
// dimensions are compared.
var ErrVectorLengthMismatch = errors.New("vector length mismatch")

// Scorer returns one similarity score per label of set, index-aligned with
// vocab.Index.Labels(set).
type Scorer interface {
	Scores(ctx context.Context, set vocab.LabelSet, query []float32) ([]float64, error)
}
