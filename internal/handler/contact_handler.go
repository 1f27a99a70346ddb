package handler

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// ContactHandler handles contact form submission and the admin listing.
type ContactHandler struct {
	contactService service.ContactService
	dev            bool
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService, dev bool) *ContactHandler {
	return &ContactHandler{contactService: contactService, dev: dev}
}

// submitResponse is the JSON response for POST /api/contact.
type submitResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in service.SubmitContactInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if _, err := h.contactService.Submit(r.Context(), in, sourceAddr(r)); err != nil {
		writeServiceError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		Message: "Thank you for your message! I will get back to you soon.",
		Success: true,
	})
}

// List handles GET /api/contact (admin).
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageOptions(r)

	result, err := h.contactService.List(r.Context(), model.ContactListOptions{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		writeServiceError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// sourceAddr returns the client address without the port. The RealIP
// middleware has already resolved X-Forwarded-For into RemoteAddr.
func sourceAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
