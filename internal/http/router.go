package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"bizfinder/internal/handlers"
	"bizfinder/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService   service.ChatService
	BrowseService service.BrowseService
	Store         handlers.Pinger
	Generator     handlers.Pinger // nil skips the generator health check
	Vocabulary    handlers.VocabularyStats

	// Limiter is shared by every API route. Nil disables rate limiting.
	Limiter *rate.Limiter
}

// NewLimiter builds the process-wide token bucket. A non-positive rps disables limiting.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.ChatService)
	browseHandler := handlers.NewBrowseHandler(deps.BrowseService)
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Generator, deps.Vocabulary)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Group(func(r chi.Router) {
			r.Use(RateLimit(deps.Limiter))
			r.Method(http.MethodPost, "/chat", chatHandler)
			r.Post("/browse", browseHandler.Search)
			r.Post("/browse/page", browseHandler.Page)
		})
	})

	return r
}
