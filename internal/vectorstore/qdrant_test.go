package vectorstore

import (
	"context"
	"errors"
	"testing"

	"github.com/qdrant/go-client/qdrant"

	"bizfinder/internal/vocab"
)

type fakeQdrant struct {
	existing map[string]bool
	deleted  []string
	created  []*qdrant.CreateCollection
	upserts  []*qdrant.UpsertPoints
	queries  []*qdrant.QueryPoints
	results  []*qdrant.ScoredPoint
	queryErr error
}

func newFakeQdrant() *fakeQdrant {
	return &fakeQdrant{existing: make(map[string]bool)}
}

func (f *fakeQdrant) CollectionExists(_ context.Context, name string) (bool, error) {
	return f.existing[name], nil
}

func (f *fakeQdrant) DeleteCollection(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	delete(f.existing, name)
	return nil
}

func (f *fakeQdrant) CreateCollection(_ context.Context, req *qdrant.CreateCollection) error {
	f.created = append(f.created, req)
	f.existing[req.CollectionName] = true
	return nil
}

func (f *fakeQdrant) Upsert(_ context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error) {
	f.upserts = append(f.upserts, req)
	return &qdrant.UpdateResult{}, nil
}

func (f *fakeQdrant) Query(_ context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error) {
	f.queries = append(f.queries, req)
	return f.results, f.queryErr
}

func (f *fakeQdrant) Close() error { return nil }

func scoredPoint(index int, score float32) *qdrant.ScoredPoint {
	return &qdrant.ScoredPoint{
		Payload: qdrant.NewValueMap(map[string]any{"index": index}),
		Score:   score,
	}
}

func testIndex(t *testing.T) *vocab.Index {
	t.Helper()
	idx, err := vocab.New(
		[]string{"hospitals", "restaurants", "schools"}, [][]float32{{1, 0}, {0, 1}, {1, 1}},
		nil, [][]float32{},
		[]string{"chirala"},
	)
	if err != nil {
		t.Fatalf("vocab.New() error = %v", err)
	}
	return idx
}

func TestGRPCAddress(t *testing.T) {
	tests := []struct {
		name     string
		urlStr   string
		wantErr  bool
		wantHost string
		wantPort int
	}{
		{name: "valid URL", urlStr: "http://localhost:6333", wantHost: "localhost", wantPort: 6334},
		{name: "URL with custom port", urlStr: "http://qdrant:9000", wantHost: "qdrant", wantPort: 9001},
		{name: "URL without port", urlStr: "http://localhost", wantHost: "localhost", wantPort: 6334},
		{name: "URL without hostname", urlStr: "http://:6333", wantHost: "localhost", wantPort: 6334},
		{name: "invalid URL", urlStr: "://invalid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port, err := grpcAddress(tt.urlStr)
			if tt.wantErr {
				if err == nil {
					t.Error("grpcAddress() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("grpcAddress() unexpected error: %v", err)
			}
			if host != tt.wantHost {
				t.Errorf("Host = %v, want %v", host, tt.wantHost)
			}
			if port != tt.wantPort {
				t.Errorf("Port = %v, want %v", port, tt.wantPort)
			}
		})
	}
}

func TestNewQdrantScorer_InvalidURL(t *testing.T) {
	if _, err := NewQdrantScorer("://invalid", ""); err == nil {
		t.Error("NewQdrantScorer() with invalid URL should return error")
	}
}

func TestQdrantScorer_Sync(t *testing.T) {
	fake := newFakeQdrant()
	fake.existing["test_category"] = true
	scorer := newQdrantScorer(fake, "test")

	if err := scorer.Sync(context.Background(), testIndex(t)); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	if len(fake.deleted) != 1 || fake.deleted[0] != "test_category" {
		t.Errorf("Sync() deleted = %v, want [test_category]", fake.deleted)
	}
	// The empty subcategory set gets no collection.
	if len(fake.created) != 1 || fake.created[0].CollectionName != "test_category" {
		t.Fatalf("Sync() created %d collections, want only test_category", len(fake.created))
	}
	if got := fake.created[0].GetVectorsConfig().GetParams().GetSize(); got != 2 {
		t.Errorf("collection vector size = %d, want 2", got)
	}
	if len(fake.upserts) != 1 || len(fake.upserts[0].Points) != 3 {
		t.Fatalf("Sync() upserts = %d, want one batch of 3 points", len(fake.upserts))
	}

	first := fake.upserts[0].Points[0]
	if first.GetId().GetUuid() != pointID(vocab.Categories, "hospitals") {
		t.Errorf("point id = %s, want deterministic id for hospitals", first.GetId().GetUuid())
	}
	if first.GetPayload()["label"].GetStringValue() != "hospitals" {
		t.Errorf("point label payload = %v, want hospitals", first.GetPayload()["label"])
	}
}

func TestQdrantScorer_Scores(t *testing.T) {
	fake := newFakeQdrant()
	scorer := newQdrantScorer(fake, "")
	if err := scorer.Sync(context.Background(), testIndex(t)); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	// Results arrive ordered by score; one label is missing.
	fake.results = []*qdrant.ScoredPoint{scoredPoint(2, 0.9), scoredPoint(0, 0.4)}

	scores, err := scorer.Scores(context.Background(), vocab.Categories, []float32{1, 1})
	if err != nil {
		t.Fatalf("Scores() error = %v", err)
	}
	want := []float64{0.4, 0, 0.9}
	for i := range want {
		if diff := scores[i] - want[i]; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("Scores()[%d] = %v, want %v", i, scores[i], want[i])
		}
	}

	q := fake.queries[0]
	if q.CollectionName != "bizfinder_category" {
		t.Errorf("query collection = %s, want bizfinder_category", q.CollectionName)
	}
	if q.GetLimit() != 3 {
		t.Errorf("query limit = %d, want 3", q.GetLimit())
	}

	empty, err := scorer.Scores(context.Background(), vocab.Subcategories, []float32{1, 1})
	if err != nil || len(empty) != 0 {
		t.Errorf("Scores() for empty set = %v, %v; want empty, nil", empty, err)
	}
	if len(fake.queries) != 1 {
		t.Errorf("empty set should not query the server")
	}
}

func TestQdrantScorer_ScoresError(t *testing.T) {
	fake := newFakeQdrant()
	scorer := newQdrantScorer(fake, "")
	if err := scorer.Sync(context.Background(), testIndex(t)); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	fake.queryErr = errors.New("unavailable")

	if _, err := scorer.Scores(context.Background(), vocab.Categories, []float32{1, 0}); err == nil {
		t.Error("Scores() expected error")
	}
}

func TestPointID_Deterministic(t *testing.T) {
	if pointID(vocab.Categories, "hospitals") != pointID(vocab.Categories, "hospitals") {
		t.Error("pointID() not deterministic")
	}
	if pointID(vocab.Categories, "hospitals") == pointID(vocab.Subcategories, "hospitals") {
		t.Error("pointID() should differ across label sets")
	}
}
