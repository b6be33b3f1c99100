package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/backend"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Default().Warn("failed to encode response", "err", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleBackendError maps a failed backend call onto our own response.
// Business errors keep the backend's status and message; an open breaker
// reads as the backend being unavailable; everything else is a bad gateway.
func handleBackendError(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		respondError(w, apiErr.Status, "backend_rejected", apiErr.Message)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		respondError(w, http.StatusServiceUnavailable, "backend_unavailable", "store backend is unavailable")
	default:
		respondError(w, http.StatusBadGateway, "backend_error", "could not reach the store backend")
	}
}
