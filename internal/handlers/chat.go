package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"bizfinder/internal/contextutil"
	"bizfinder/internal/service"
	"bizfinder/internal/storage"
)

// ChatHandler handles HTTP requests for chat.
type ChatHandler struct {
	chatService service.ChatService
	markdown    goldmark.Markdown
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		// raw HTML in generated answers stays escaped
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
				extension.Typographer,
			),
		),
	}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Query string `json:"query"`
}

// TextPayload is the JSON form of a text answer.
type TextPayload struct {
	Type       string `json:"type"`
	Answer     string `json:"answer"`
	AnswerHTML string `json:"answer_html"`
}

// ListingsPayload is the JSON form of a listings answer.
type ListingsPayload struct {
	Type     string            `json:"type"`
	Category string            `json:"category"`
	City     string            `json:"city"`
	Results  []storage.Listing `json:"results"`
}

// ServeHTTP handles HTTP requests for chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if !decodeBody(ctx, w, r, &req) {
		return
	}

	resp, err := h.chatService.Chat(ctx, service.ChatRequest{Query: req.Query})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to process chat request")
		return
	}

	switch resp := resp.(type) {
	case service.TextResponse:
		html, err := h.render(resp.Answer)
		if err != nil {
			logger.WarnContext(ctx, "failed to render answer", "error", err)
		}
		writeJSON(w, http.StatusOK, TextPayload{Type: resp.Kind(), Answer: resp.Answer, AnswerHTML: html})
	case service.ListingsResponse:
		writeJSON(w, http.StatusOK, ListingsPayload{Type: resp.Kind(), Category: resp.Category, City: resp.City, Results: resp.Results})
	default:
		logger.ErrorContext(ctx, "unknown chat response", "type", fmt.Sprintf("%T", resp))
		writeError(w, http.StatusInternalServerError, "Failed to process chat request")
	}
}

func (h *ChatHandler) render(answer string) (string, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(answer), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
