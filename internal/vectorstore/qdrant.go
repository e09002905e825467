package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"bizfinder/internal/contextutil"
	"bizfinder/internal/vocab"
)

// DefaultCollectionPrefix is prepended to the label set name to form a
// collection name, e.g. "bizfinder_category".
const DefaultCollectionPrefix = "bizfinder"

// pointNamespace seeds the deterministic point ids for label vectors.
var pointNamespace = uuid.MustParse("6f1c3f2e-8a1d-4d8b-9a53-2b1f4e0c7d11")

// qdrantAPI is the part of *qdrant.Client used by QdrantScorer.
type qdrantAPI interface {
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	DeleteCollection(ctx context.Context, collectionName string) error
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	Close() error
}

// QdrantScorer mirrors the label embeddings into one Qdrant collection per
// label set and scores queries with cosine similarity on the server.
type QdrantScorer struct {
	client qdrantAPI
	prefix string
	sizes  map[vocab.LabelSet]int
}

// NewQdrantScorer creates a Qdrant-backed scorer.
// urlStr should be in the format "http://host:port" (e.g., "http://localhost:6333").
// The gRPC port is derived from the HTTP port.
func NewQdrantScorer(urlStr, prefix string) (*QdrantScorer, error) {
	host, port, err := grpcAddress(urlStr)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return newQdrantScorer(client, prefix), nil
}

func newQdrantScorer(client qdrantAPI, prefix string) *QdrantScorer {
	if prefix == "" {
		prefix = DefaultCollectionPrefix
	}
	return &QdrantScorer{
		client: client,
		prefix: prefix,
		sizes:  make(map[vocab.LabelSet]int),
	}
}

// grpcAddress maps the Qdrant HTTP URL onto its gRPC host and port
// (HTTP port + 1, 6334 by default).
func grpcAddress(urlStr string) (string, int, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := 6334
	if parsedURL.Port() != "" {
		if httpPort, err := strconv.Atoi(parsedURL.Port()); err == nil {
			port = httpPort + 1
		}
	}
	return host, port, nil
}

// Collection returns the collection name used for set.
func (s *QdrantScorer) Collection(set vocab.LabelSet) string {
	return s.prefix + "_" + string(set)
}

// Sync recreates the per-set collections from idx. It must complete before
// Scores is called; the vocabulary does not change afterwards.
func (s *QdrantScorer) Sync(ctx context.Context, idx *vocab.Index) error {
	for _, set := range []vocab.LabelSet{vocab.Categories, vocab.Subcategories} {
		if err := s.syncSet(ctx, set, idx.Labels(set), idx.Embeddings(set)); err != nil {
			return err
		}
	}
	return nil
}

func (s *QdrantScorer) syncSet(ctx context.Context, set vocab.LabelSet, labels []string, embeddings [][]float32) error {
	logger := contextutil.LoggerFromContext(ctx)
	collection := s.Collection(set)

	exists, err := s.client.CollectionExists(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}
	if exists {
		if err := s.client.DeleteCollection(ctx, collection); err != nil {
			return fmt.Errorf("failed to delete collection %s: %w", collection, err)
		}
	}

	s.sizes[set] = len(labels)
	if len(labels) == 0 {
		logger.InfoContext(ctx, "label set empty, collection skipped", "collection", collection)
		return nil
	}

	vectorSize := len(embeddings[0])
	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(vectorSize),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", collection, err)
	}

	points := make([]*qdrant.PointStruct, 0, len(labels))
	for i, label := range labels {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(pointID(set, label)),
			Vectors: qdrant.NewVectors(embeddings[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"label": label,
				"index": i,
			}),
		})
	}

	wait := true
	if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Wait:           &wait,
		Points:         points,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to upsert points", "collection", collection, "count", len(points), "error", err)
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	logger.InfoContext(ctx, "collection synced", "collection", collection, "count", len(points), "vector_size", vectorSize)
	return nil
}

// Scores implements Scorer. Labels the server does not return score 0.
func (s *QdrantScorer) Scores(ctx context.Context, set vocab.LabelSet, query []float32) ([]float64, error) {
	size := s.sizes[set]
	scores := make([]float64, size)
	if size == 0 {
		return scores, nil
	}

	limit := uint64(size)
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.Collection(set),
		Query:          qdrant.NewQuery(query...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search points: %w", err)
	}

	for _, p := range points {
		v, ok := p.GetPayload()["index"]
		if !ok {
			continue
		}
		i := int(v.GetIntegerValue())
		if i < 0 || i >= size {
			continue
		}
		scores[i] = float64(p.GetScore())
	}
	return scores, nil
}

// Close releases the Qdrant connection.
func (s *QdrantScorer) Close() error {
	return s.client.Close()
}

func pointID(set vocab.LabelSet, label string) string {
	return uuid.NewSHA1(pointNamespace, []byte(string(set)+":"+label)).String()
}
