package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// BlogHandler handles the public blog listing endpoints and the admin-gated
// mutations.
type BlogHandler struct {
	blogService service.BlogService
	dev         bool
}

// NewBlogHandler creates a BlogHandler with the given service.
func NewBlogHandler(blogService service.BlogService, dev bool) *BlogHandler {
	return &BlogHandler{blogService: blogService, dev: dev}
}

// pageOptions reads page/limit query params. Zero values are left for the
// service layer to clamp.
func pageOptions(r *http.Request) (page, limit int) {
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			page = n
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			limit = n
		}
	}
	return page, limit
}

// List handles GET /api/blog.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageOptions(r)

	result, err := h.blogService.ListPublished(r.Context(), model.BlogListOptions{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		writeServiceError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// tagPageResponse is the JSON response for GET /api/blog/tag/{tag}.
type tagPageResponse struct {
	Posts      []model.BlogPost `json:"posts"`
	Tag        string           `json:"tag"`
	Pagination model.Pagination `json:"pagination"`
}

// ListByTag handles GET /api/blog/tag/{tag}.
func (h *BlogHandler) ListByTag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	page, limit := pageOptions(r)

	result, err := h.blogService.ListPublished(r.Context(), model.BlogListOptions{
		Page:  page,
		Limit: limit,
		Tag:   tag,
	})
	if err != nil {
		writeServiceError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusOK, tagPageResponse{
		Posts:      result.Posts,
		Tag:        tag,
		Pagination: result.Pagination,
	})
}

// ListTags handles GET /api/blog/tags/all. The response is a bare sorted
// JSON array.
func (h *BlogHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.blogService.ListTags(r.Context())
	if err != nil {
		writeServiceError(w, err, h.dev)
		return
	}
	if tags == nil {
		tags = []string{}
	}

	writeJSON(w, http.StatusOK, tags)
}

// GetBySlug handles GET /api/blog/{slug}.
func (h *BlogHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.blogService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// Create handles POST /api/blog (admin).
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	post, err := h.blogService.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// Update handles PUT /api/blog/{id} (admin).
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in service.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	post, err := h.blogService.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// deleteResponse is the JSON response for DELETE /api/blog/{id}.
type deleteResponse struct {
	Message string `json:"message"`
	Title   string `json:"title"`
}

// Delete handles DELETE /api/blog/{id} (admin).
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	title, err := h.blogService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{
		Message: fmt.Sprintf("Blog post %q deleted successfully", title),
		Title:   title,
	})
}

// clearResponse is the JSON response for DELETE /api/blog/clear/all.
type clearResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// ClearAll handles DELETE /api/blog/clear/all (admin).
func (h *BlogHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	count, err := h.blogService.ClearAll(r.Context())
	if err != nil {
		writeServiceError(w, err, h.dev)
		return
	}

	writeJSON(w, http.StatusOK, clearResponse{
		Message:      "All blog posts deleted",
		DeletedCount: count,
	})
}
