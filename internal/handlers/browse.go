package handlers

import (
	"net/http"

	"bizfinder/internal/search"
	"bizfinder/internal/service"
)

// BrowseHandler serves the paginated browse endpoints.
type BrowseHandler struct {
	browseService service.BrowseService
}

// NewBrowseHandler creates a new BrowseHandler.
func NewBrowseHandler(browseService service.BrowseService) *BrowseHandler {
	return &BrowseHandler{browseService: browseService}
}

// BrowseRequest is the payload of POST /api/browse.
type BrowseRequest struct {
	Query string `json:"query"`
}

// PageRequest is the payload of POST /api/browse/page.
type PageRequest struct {
	Mode  string `json:"mode"`
	Value string `json:"value"`
	City  string `json:"city"`
}

// Search interprets a query and lists its non-empty pages.
func (h *BrowseHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BrowseRequest
	if !decodeBody(ctx, w, r, &req) {
		return
	}

	res, err := h.browseService.Search(ctx, req.Query)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to browse")
		return
	}
	if res.Pages == nil {
		res.Pages = []search.Page{}
	}
	writeJSON(w, http.StatusOK, res)
}

// Page returns the listings of one page with the query that produced them.
func (h *BrowseHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PageRequest
	if !decodeBody(ctx, w, r, &req) {
		return
	}

	res, err := h.browseService.Page(ctx, search.Page{Mode: search.Field(req.Mode), Value: req.Value}, req.City)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load page")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
