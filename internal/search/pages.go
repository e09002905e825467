package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"bizfinder/internal/interpret"
)

// maxConcurrentProbes bounds the page probes run at once.
const maxConcurrentProbes = 4

// Page is one browse page: the listings matching a category or subcategory.
type Page struct {
	Mode  Field  `json:"mode"`
	Value string `json:"value"`
}

// Request returns the lookup for this page.
func (p Page) Request(city string) Request {
	return Request{Field: p.Mode, Value: p.Value, City: city}
}

// Prober runs one lookup.
type Prober interface {
	Fetch(ctx context.Context, req Request) Result
}

// PageBuilder turns an interpretation into the browse pages that have data.
type PageBuilder struct {
	fetcher Prober
}

// NewPageBuilder creates a PageBuilder probing through fetcher.
func NewPageBuilder(fetcher Prober) *PageBuilder {
	return &PageBuilder{fetcher: fetcher}
}

// Candidates returns the candidate pages in order: the primary category, the
// primary subcategory when present, then each similar category.
func Candidates(res interpret.Result) []Page {
	pages := make([]Page, 0, 2+len(res.SimilarCategories))
	pages = append(pages, Page{Mode: FieldCategory, Value: res.Category})
	if res.Subcategory != "" {
		pages = append(pages, Page{Mode: FieldSubcategory, Value: res.Subcategory})
	}
	for _, c := range res.SimilarCategories {
		pages = append(pages, Page{Mode: FieldCategory, Value: c})
	}
	return pages
}

// Build probes every candidate page for city and keeps those with at least
// one listing, in candidate order.
func (b *PageBuilder) Build(ctx context.Context, res interpret.Result, city string) []Page {
	candidates := Candidates(res)
	found := make([]bool, len(candidates))

	var g errgroup.Group
	g.SetLimit(maxConcurrentProbes)
	for i, p := range candidates {
		g.Go(func() error {
			found[i] = len(b.fetcher.Fetch(ctx, p.Request(city)).Listings) > 0
			return nil
		})
	}
	_ = g.Wait() // probes never fail

	pages := make([]Page, 0, len(candidates))
	for i, p := range candidates {
		if found[i] {
			pages = append(pages, p)
		}
	}
	return pages
}
