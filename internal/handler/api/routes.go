// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/oblog-go/internal/middleware"
)

// Routes returns the API router. It is mounted under /api.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusNotFound, "not_found", "Resource not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		if h.login != nil {
			r.With(h.login.Middleware()).Post("/login", h.Login)
		} else {
			r.Post("/login", h.Login)
		}
	})

	// Public projection
	r.Route("/public", func(r chi.Router) {
		r.Get("/posts", h.ListPublished)
		r.Get("/posts/{slug}", h.GetPublished)
		r.Get("/feed.xml", h.Feed)
		r.Get("/sitemap.xml", h.Sitemap)
	})
	r.Get("/posts/{id}/comments", h.ListComments)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.authoring))
		if h.cfg.UserRPS > 0 {
			r.Use(middleware.UserRateLimit(h.cfg.UserRPS, max(h.cfg.UserBurst, 1)))
		}

		r.Get("/posts", h.ListPosts)
		r.Post("/posts", h.CreatePost)
		r.Put("/posts/{id}", h.UpdatePost)
		r.Delete("/posts/{id}", h.DeletePost)

		r.Post("/posts/{id}/comments", h.CreateComment)
		r.Put("/comments/{id}", h.UpdateComment)
		r.Delete("/comments/{id}", h.DeleteComment)

		r.Post("/ai/generate", h.Generate)
		r.Post("/upload", h.Upload)
	})

	return r
}
