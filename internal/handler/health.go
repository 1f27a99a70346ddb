package handler

import (
	"context"
	"net/http"
)

// Pinger reports database liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports API and database health.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a HealthHandler over the given database.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "unhealthy",
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Message: "Portfolio API is running",
	})
}
