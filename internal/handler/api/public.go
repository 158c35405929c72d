// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/oblog-go/internal/seo"
)

// SitemapPath is where the sitemap is served.
const SitemapPath = "/api/public/sitemap.xml"

// ListPublished handles GET /public/posts.
func (h *Handler) ListPublished(w http.ResponseWriter, r *http.Request) {
	posts, err := h.authoring.ListPublished(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteList(w, posts)
}

// GetPublished handles GET /public/posts/{slug}.
func (h *Handler) GetPublished(w http.ResponseWriter, r *http.Request) {
	post, err := h.authoring.GetPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, post)
}

// Feed handles GET /public/feed.xml: RSS 2.0 of the newest published posts.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.authoring.ListPublished(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	builder := seo.NewFeedBuilder(h.siteURL(r), h.cfg.SiteName, "Latest posts from "+h.cfg.SiteName)
	for _, p := range posts {
		if err := builder.AddPost(p); err != nil {
			h.writeServiceError(w, r, err)
			return
		}
	}

	out, err := builder.Build()
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeXML(w, "application/rss+xml; charset=utf-8", out)
}

// Sitemap handles GET /public/sitemap.xml.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	posts, err := h.authoring.ListPublished(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	builder := seo.NewSitemapBuilder(h.siteURL(r))
	builder.AddHomepage()
	for _, p := range posts {
		builder.AddPost(p.Slug, p.CreatedAt)
	}

	out, err := builder.Build()
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeXML(w, "application/xml; charset=utf-8", out)
}

// Robots handles GET /robots.txt.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(seo.GenerateRobots(h.siteURL(r), SitemapPath, false)))
}

// siteURL returns the configured public URL or derives it from the request.
func (h *Handler) siteURL(r *http.Request) string {
	if h.cfg.SiteURL != "" {
		return strings.TrimSuffix(h.cfg.SiteURL, "/")
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func writeXML(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
