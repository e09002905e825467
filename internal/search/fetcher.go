// Package search runs ranked listing lookups and assembles browse pages.
package search

import (
	"context"

	"bizfinder/internal/contextutil"
	"bizfinder/internal/normalize"
	"bizfinder/internal/storage"
)

const (
	// DefaultCandidateLimit is how many rows are read before filtering.
	DefaultCandidateLimit = 50
	// DefaultMinReviews is the quality floor; listings need more reviews than this.
	DefaultMinReviews = 5
	// DefaultResultLimit is how many listings a lookup returns.
	DefaultResultLimit = 5
)

// Field is the listing column a lookup matches on.
type Field string

const (
	FieldCategory    Field = "category"
	FieldSubcategory Field = "subcategory"
)

// Store runs ranked lookups against the listings table.
type Store interface {
	QueryRanked(ctx context.Context, q storage.RankedQuery) ([]storage.Listing, string, error)
}

// Request selects listings with Field equal to Value, optionally in City.
// A Limit <= 0 selects the fetcher's result limit.
type Request struct {
	Field Field
	Value string
	City  string
	Limit int
}

// Result holds the listings found and the query text that was executed.
type Result struct {
	Listings []storage.Listing `json:"results"`
	Query    string            `json:"sql"`
}

// Options configures a Fetcher. A CandidateLimit or ResultLimit <= 0 selects
// its default. MinReviews is used as given: listings need more reviews than
// it, so 0 keeps every listing with at least one review and a negative value
// disables the quality floor.
type Options struct {
	CandidateLimit int
	MinReviews     int
	ResultLimit    int
}

// DefaultOptions returns the default fetcher options.
func DefaultOptions() Options {
	return Options{
		CandidateLimit: DefaultCandidateLimit,
		MinReviews:     DefaultMinReviews,
		ResultLimit:    DefaultResultLimit,
	}
}

// Fetcher performs ranked, quality-filtered, deduplicated lookups.
type Fetcher struct {
	store          Store
	candidateLimit int
	minReviews     int
	resultLimit    int
}

// NewFetcher creates a Fetcher over store.
func NewFetcher(store Store, opts Options) *Fetcher {
	f := &Fetcher{
		store:          store,
		candidateLimit: opts.CandidateLimit,
		minReviews:     opts.MinReviews,
		resultLimit:    opts.ResultLimit,
	}
	if f.candidateLimit <= 0 {
		f.candidateLimit = DefaultCandidateLimit
	}
	if f.resultLimit <= 0 {
		f.resultLimit = DefaultResultLimit
	}
	return f
}

// Fetch returns at most req.Limit listings with more than the minimum number
// of reviews, unique by (name, address), in relevance order. A blank value
// yields an empty result; store failures are logged and yield an empty result.
func (f *Fetcher) Fetch(ctx context.Context, req Request) Result {
	logger := contextutil.LoggerFromContext(ctx)

	empty := Result{Listings: []storage.Listing{}}

	value := normalize.Text(req.Value)
	if value == "" {
		return empty
	}
	limit := req.Limit
	if limit <= 0 {
		limit = f.resultLimit
	}

	rows, query, err := f.store.QueryRanked(ctx, storage.RankedQuery{
		Column: string(req.Field),
		Value:  value,
		City:   normalize.Text(req.City),
		Limit:  max(f.candidateLimit, limit),
	})
	if err != nil {
		logger.ErrorContext(ctx, "listing query failed", "field", req.Field, "value", value, "city", req.City, "error", err)
		return empty
	}

	listings := make([]storage.Listing, 0, limit)
	seen := make(map[listingKey]struct{}, len(rows))
	for _, l := range rows {
		if l.ReviewsCount <= f.minReviews {
			continue
		}
		key := listingKey{name: l.Name, address: l.Address}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		listings = append(listings, l)
		if len(listings) == limit {
			break
		}
	}

	logger.DebugContext(ctx, "listings fetched", "field", req.Field, "value", value, "candidates", len(rows), "results", len(listings))
	return Result{Listings: listings, Query: query}
}

type listingKey struct {
	name    string
	address string
}
