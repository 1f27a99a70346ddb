package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/portfolio/backend/internal/service"
)

// Options carries the router's cross-cutting settings.
type Options struct {
	// AdminKey gates the mutating blog routes and the contact listing.
	// Empty disables those routes.
	AdminKey string
	// Dev echoes internal error detail back to the caller.
	Dev bool
	// AllowedOrigins is the CORS allowlist for the frontend.
	AllowedOrigins []string
	// RateLimit is the per-IP requests-per-minute budget.
	RateLimit int
	// ContactRateLimit is a stricter per-IP budget applied to the
	// contact routes on top of RateLimit.
	ContactRateLimit int
}

// Routes builds the full API router.
func Routes(blog service.BlogService, contacts service.ContactService, db Pinger, opts Options) http.Handler {
	blogHandler := NewBlogHandler(blog, opts.Dev)
	contactHandler := NewContactHandler(contacts, opts.Dev)
	healthHandler := NewHealthHandler(db)

	admin := RequireAdminKey(opts.AdminKey)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", adminKeyHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if opts.RateLimit > 0 {
		r.Use(NewRateLimiter(opts.RateLimit).Middleware)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		r.Route("/blog", func(r chi.Router) {
			r.Get("/", blogHandler.List)
			r.Get("/tags/all", blogHandler.ListTags)
			r.Get("/tag/{tag}", blogHandler.ListByTag)
			r.Get("/{slug}", blogHandler.GetBySlug)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Post("/", blogHandler.Create)
				r.Put("/{id}", blogHandler.Update)
				r.Delete("/{id}", blogHandler.Delete)
				r.Delete("/clear/all", blogHandler.ClearAll)
			})
		})

		r.Route("/contact", func(r chi.Router) {
			if opts.ContactRateLimit > 0 {
				r.Use(NewRateLimiter(opts.ContactRateLimit).Middleware)
			}
			r.Post("/", contactHandler.Submit)
			r.With(admin).Get("/", contactHandler.List)
		})
	})

	return r
}
