package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/validate"
)

// errorResponse is the uniform error envelope for all endpoints.
type errorResponse struct {
	Message string               `json:"message"`
	Errors  []validate.FieldError `json:"errors,omitempty"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// writeError writes the error envelope with just a message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// writeServiceError maps a service/repository error to the HTTP envelope.
// Validation errors become 400 with per-field details, sentinel errors map
// to their status, and anything else is a 500. The internal detail is only
// echoed back in development mode.
func writeServiceError(w http.ResponseWriter, err error, dev bool) {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "Validation failed",
			Errors:  verrs,
		})
		return
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "A blog post with this title already exists")
	default:
		slog.Error("request failed", "error", err)
		message := "Internal server error"
		if dev {
			message = err.Error()
		}
		writeError(w, http.StatusInternalServerError, message)
	}
}
