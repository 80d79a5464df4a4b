// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// folio API. Routes are grouped into public reads, anonymous writes
// (comment submission, rate limited), and token-protected owner routes.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"folio/internal/auth"
	"folio/internal/handlers"
	"folio/internal/middleware"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Auth     *handlers.Auth
	Posts    *handlers.Posts
	Projects *handlers.Projects
	Comments *handlers.Comments
	Taxonomy *handlers.Taxonomy
	Media    *handlers.Media
	Stats    *handlers.Stats
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(tokens *auth.TokenService, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Anonymous write endpoints are the abuse target; keep their
	// limiter far stricter than the general one.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	commentLimiter := middleware.NewRateLimiter(5, time.Minute)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Middleware).Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(tokens.Verifier())
				r.Use(tokens.Authenticator)
				r.Get("/profile", h.Auth.Profile)
				r.Put("/profile", h.Auth.UpdateProfile)
				r.Post("/2fa/setup", h.Auth.SetupTOTP)
				r.Post("/2fa/verify", h.Auth.VerifyTOTP)
			})
		})

		r.Route("/blog", func(r chi.Router) {
			r.Route("/posts", func(r chi.Router) {
				r.Get("/", h.Posts.List)
				// Fixed segment registered before the {slug} wildcard so
				// "featured" is never treated as a post slug.
				r.Get("/featured", h.Posts.Featured)
				r.Get("/{slug}", h.Posts.Get)
				r.Get("/{slug}/comments", h.Comments.ListForPost)
				r.With(commentLimiter.Middleware).Post("/{slug}/comments", h.Comments.Submit)

				r.Group(func(r chi.Router) {
					r.Use(tokens.Verifier())
					r.Use(tokens.Authenticator)
					r.Post("/", h.Posts.Create)
					r.Put("/{slug}", h.Posts.Update)
					r.Delete("/{slug}", h.Posts.Delete)
				})
			})

			r.Get("/categories", h.Taxonomy.BlogCategories)
			r.Get("/tags", h.Taxonomy.Tags)

			r.Group(func(r chi.Router) {
				r.Use(tokens.Verifier())
				r.Use(tokens.Authenticator)
				r.Post("/categories", h.Taxonomy.CreateBlogCategory)
				r.Delete("/categories/{id}", h.Taxonomy.DeleteCategory)
				r.Delete("/tags/{id}", h.Taxonomy.DeleteTag)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Projects.List)
				r.Get("/featured", h.Projects.Featured)
				r.Get("/{slug}", h.Projects.Get)

				r.Group(func(r chi.Router) {
					r.Use(tokens.Verifier())
					r.Use(tokens.Authenticator)
					r.Post("/", h.Projects.Create)
					r.Put("/{slug}", h.Projects.Update)
					r.Delete("/{slug}", h.Projects.Delete)
				})
			})

			r.Get("/categories", h.Taxonomy.ProjectCategories)
			r.Get("/technologies", h.Taxonomy.Technologies)

			r.Group(func(r chi.Router) {
				r.Use(tokens.Verifier())
				r.Use(tokens.Authenticator)
				r.Post("/categories", h.Taxonomy.CreateProjectCategory)
				r.Delete("/categories/{id}", h.Taxonomy.DeleteCategory)
				r.Delete("/technologies/{id}", h.Taxonomy.DeleteTechnology)
			})
		})

		// Owner-only surfaces.
		r.Group(func(r chi.Router) {
			r.Use(tokens.Verifier())
			r.Use(tokens.Authenticator)

			r.Post("/media", h.Media.Upload)
			r.Get("/media", h.Media.List)
			r.Delete("/media/{id}", h.Media.Delete)

			r.Get("/stats", h.Stats.Summary)

			r.Route("/admin/comments", func(r chi.Router) {
				r.Get("/", h.Comments.Pending)
				r.Post("/approve", h.Comments.Approve)
				r.Post("/disapprove", h.Comments.Disapprove)
				r.Delete("/{id}", h.Comments.Delete)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
