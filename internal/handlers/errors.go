package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"bizfinder/internal/contextutil"
	"bizfinder/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleServiceError maps service errors to appropriate HTTP status codes and responses.
func handleServiceError(ctx context.Context, w http.ResponseWriter, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		logger.WarnContext(ctx, "request rejected", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	if errors.Is(err, service.ErrInvalidInput) {
		logger.WarnContext(ctx, "request rejected", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	logger.ErrorContext(ctx, "service error", "error", err)
	if errors.Is(err, service.ErrExternalService) {
		writeError(w, http.StatusBadGateway, "External service error")
		return
	}

	// Default to internal server error
	writeError(w, http.StatusInternalServerError, defaultMsg)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody decodes the JSON request body into v, writing a 400 on failure.
func decodeBody(ctx context.Context, w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
