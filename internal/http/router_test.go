package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"

	"bizfinder/internal/handlers"
	"bizfinder/internal/service"
	"bizfinder/internal/service/mocks"
	"bizfinder/internal/vocab"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type stats struct{}

func (stats) Stats() vocab.Stats { return vocab.Stats{Categories: 2, Cities: 1} }

func newTestDeps(t *testing.T) (*Deps, *mocks.MockChatService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	chat := mocks.NewMockChatService(ctrl)
	return &Deps{
		ChatService:   chat,
		BrowseService: mocks.NewMockBrowseService(ctrl),
		Store:         okPinger{},
		Vocabulary:    stats{},
	}, chat
}

func TestNewRouter(t *testing.T) {
	deps, _ := newTestDeps(t)
	if NewRouter(deps) == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	deps, _ := newTestDeps(t)
	router := NewRouter(deps)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "GET /api/health",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST /api/chat exists",
			method:     http.MethodPost,
			path:       "/api/chat",
			wantStatus: http.StatusBadRequest, // empty body, but the route exists
		},
		{
			name:       "GET /api/chat method not allowed",
			method:     http.MethodGet,
			path:       "/api/chat",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "POST /api/browse exists",
			method:     http.MethodPost,
			path:       "/api/browse",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "POST /api/browse/page exists",
			method:     http.MethodPost,
			path:       "/api/browse/page",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/notes",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_Chat(t *testing.T) {
	deps, chat := newTestDeps(t)
	chat.EXPECT().
		Chat(gomock.Any(), service.ChatRequest{Query: "what is ayurveda"}).
		Return(service.TextResponse{Answer: "Traditional Indian medicine."}, nil)

	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"query":"what is ayurveda"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/chat status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"type":"text"`) {
		t.Errorf("POST /api/chat body = %s, want a text payload", w.Body.String())
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	deps, _ := newTestDeps(t)
	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("Router should apply RequestID middleware")
	}
}

func TestRouter_RateLimitSparesHealth(t *testing.T) {
	deps, _ := newTestDeps(t)
	deps.Limiter = rate.NewLimiter(0, 1)
	router := NewRouter(deps)

	statuses := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/browse", nil))
		statuses = append(statuses, w.Code)
	}
	if statuses[0] != http.StatusBadRequest || statuses[1] != http.StatusTooManyRequests {
		t.Errorf("browse statuses = %v, want [400 429]", statuses)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /api/health status = %d, want 200 while API limit is exhausted", w.Code)
	}
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestRouter_HealthReportsGenerator(t *testing.T) {
	deps, _ := newTestDeps(t)
	deps.Generator = downPinger{}
	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp handlers.HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "degraded" || resp.Checks["generator"] != "error" {
		t.Errorf("health = %+v, want degraded with generator error", resp)
	}
}
