package service

import (
	"context"
	"strings"

	"bizfinder/internal/contextutil"
	"bizfinder/internal/interpret"
	"bizfinder/internal/normalize"
	"bizfinder/internal/search"
)

// PageBuilder assembles the non-empty browse pages for an interpretation.
type PageBuilder interface {
	Build(ctx context.Context, res interpret.Result, city string) []search.Page
}

// BrowseResult is the interpretation of a query and its browse pages.
type BrowseResult struct {
	Interpretation interpret.Result `json:"interpretation"`
	Pages          []search.Page    `json:"pages"`
}

// BrowseService backs the paginated browse shell.
type BrowseService interface {
	// Search interprets query and returns the pages that have listings.
	Search(ctx context.Context, query string) (BrowseResult, error)
	// Page returns the listings of one page and the query text that produced them.
	Page(ctx context.Context, page search.Page, city string) (search.Result, error)
}

type browseService struct {
	interpreter Interpreter
	fetcher     Fetcher
	pages       PageBuilder
}

// NewBrowseService creates a new BrowseService.
func NewBrowseService(interpreter Interpreter, fetcher Fetcher, pages PageBuilder) BrowseService {
	return &browseService{
		interpreter: interpreter,
		fetcher:     fetcher,
		pages:       pages,
	}
}

func (s *browseService) Search(ctx context.Context, query string) (BrowseResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if normalize.Text(query) == "" {
		logger.WarnContext(ctx, "empty query in browse request")
		return BrowseResult{}, &ValidationError{Field: "query", Message: "cannot be empty"}
	}

	res := s.interpreter.Interpret(ctx, query)
	pages := s.pages.Build(ctx, res, res.City)

	logger.InfoContext(ctx, "browse pages built", "category", res.Category, "city", res.City, "pages", len(pages))
	return BrowseResult{Interpretation: res, Pages: pages}, nil
}

func (s *browseService) Page(ctx context.Context, page search.Page, city string) (search.Result, error) {
	switch page.Mode {
	case search.FieldCategory, search.FieldSubcategory:
	default:
		return search.Result{}, &ValidationError{Field: "mode", Message: "must be category or subcategory"}
	}
	if strings.TrimSpace(page.Value) == "" {
		return search.Result{}, &ValidationError{Field: "value", Message: "cannot be empty"}
	}
	return s.fetcher.Fetch(ctx, page.Request(city)), nil
}
