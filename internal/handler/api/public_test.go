// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/oblog-go/internal/model"
)

func TestPublicProjection_PublishUnpublish(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("ada")
	post := env.createPost(token, CreatePostRequest{Title: "Launch Day", Content: "We are live", Outline: ptr("secret plan")})

	listPublic := func() []map[string]any {
		w := env.do(http.MethodGet, "/api/public/posts", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list listBody[map[string]any]
		decode(t, w, &list)
		return list.Data
	}

	assert.Empty(t, listPublic(), "drafts are not public")
	w := env.do(http.MethodGet, "/api/public/posts/launch-day", "", nil)
	assertError(t, w, http.StatusNotFound, "not_found")

	w = env.do(http.MethodPut, postPath(post.ID), token, `{"published":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	list := listPublic()
	require.Len(t, list, 1)
	assert.Equal(t, "launch-day", list[0]["slug"])
	for _, hidden := range []string{"user_id", "outline", "published", "updated_at"} {
		assert.NotContains(t, list[0], hidden)
	}

	w = env.do(http.MethodGet, "/api/public/posts/launch-day", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var one struct {
		Data model.PublicPost `json:"data"`
	}
	decode(t, w, &one)
	assert.Equal(t, "Launch Day", one.Data.Title)

	w = env.do(http.MethodPut, postPath(post.ID), token, `{"published":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Empty(t, listPublic(), "unpublished posts disappear")
	w = env.do(http.MethodGet, "/api/public/posts/launch-day", "", nil)
	assertError(t, w, http.StatusNotFound, "not_found")
}

func TestFeed(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("ada")
	env.createPost(token, CreatePostRequest{Title: "Draft", Content: "hidden"})
	env.createPost(token, CreatePostRequest{
		Title:     "Markdown Post",
		Content:   "Hello **world**",
		Tags:      []string{"go"},
		Published: true,
	})

	w := env.do(http.MethodGet, "/api/public/feed.xml", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))

	feed, err := gofeed.NewParser().ParseString(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, "oBlog", feed.Title)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "Markdown Post", feed.Items[0].Title)
	assert.Equal(t, "https://blog.example/posts/markdown-post", feed.Items[0].Link)
	assert.Contains(t, feed.Items[0].Description, "<strong>world</strong>")
}

func TestSitemapAndRobots(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("ada")
	env.createPost(token, CreatePostRequest{Title: "Public", Content: "x", Published: true})
	env.createPost(token, CreatePostRequest{Title: "Private", Content: "x"})

	w := env.do(http.MethodGet, "/api/public/sitemap.xml", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<loc>https://blog.example/posts/public</loc>")
	assert.NotContains(t, body, "private")

	w = env.do(http.MethodGet, "/robots.txt", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sitemap: https://blog.example/api/public/sitemap.xml")
}

func TestSiteURL_FromRequest(t *testing.T) {
	h := NewHandler(Deps{})

	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	req.Host = "blog.local:5000"
	assert.Equal(t, "http://blog.local:5000", h.siteURL(req))

	req.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://blog.local:5000", h.siteURL(req))

	h = NewHandler(Deps{Config: Config{SiteURL: "https://configured.example/"}})
	assert.Equal(t, "https://configured.example", h.siteURL(req))
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/nope", "", nil)
	assertError(t, w, http.StatusNotFound, "not_found")

	w = env.do(http.MethodPatch, "/api/public/posts", "", nil)
	resp := assertError(t, w, http.StatusMethodNotAllowed, "method_not_allowed")
	assert.True(t, strings.HasPrefix(resp.Error.Message, "Method"))
}
