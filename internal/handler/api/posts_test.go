// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_HelloWorld(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("ada")

	post := env.createPost(token, CreatePostRequest{Title: "Hello World!", Content: "First post."})
	assert.Equal(t, "hello-world", post.Slug)
	assert.False(t, post.Published)
	assert.Empty(t, post.Tags)
	assert.Nil(t, post.Outline)

	w := env.do(http.MethodGet, "/api/posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list listBody[postBody]
	decode(t, w, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, 1, list.Meta.Total)
	assert.Equal(t, post.ID, list.Data[0].ID)
}

func TestListPosts_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("ada")

	w := env.do(http.MethodGet, "/api/posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"meta":{"total":0}}`, w.Body.String())
}

func TestCreatePost_Errors(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register("ada")
	bob := env.register("bob")
	env.createPost(ada, CreatePostRequest{Title: "Go Tips", Content: "x"})

	t.Run("validation", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/posts", ada, CreatePostRequest{Title: " ", Content: ""})
		resp := assertError(t, w, http.StatusBadRequest, "validation_error")
		assert.Equal(t, "is required", resp.Error.Details["title"])
		assert.Equal(t, "is required", resp.Error.Details["content"])
	})

	t.Run("punctuation-only title", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/posts", ada, CreatePostRequest{Title: "!!!", Content: "x"})
		resp := assertError(t, w, http.StatusBadRequest, "validation_error")
		assert.Contains(t, resp.Error.Details, "title")
	})

	t.Run("slug conflict across owners", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/posts", bob, CreatePostRequest{Title: "go tips?", Content: "y"})
		assertError(t, w, http.StatusBadRequest, "slug_conflict")
	})
}

func TestUpdatePost(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("ada")
	post := env.createPost(token, CreatePostRequest{
		Title:    "Original",
		Content:  "body",
		Outline:  ptr("1. intro"),
		ImageURL: ptr("/uploads/a.png"),
		Tags:     []string{"go"},
	})

	w := env.do(http.MethodPut, postPath(post.ID), token, `{"title":"Renamed","outline":null,"published":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data postBody `json:"data"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "Renamed", resp.Data.Title)
	assert.Equal(t, "original", resp.Data.Slug, "slug never changes")
	assert.Nil(t, resp.Data.Outline, "explicit null clears the outline")
	require.NotNil(t, resp.Data.ImageURL, "absent image_url is kept")
	assert.Equal(t, "/uploads/a.png", *resp.Data.ImageURL)
	assert.Equal(t, []string{"go"}, resp.Data.Tags)
	assert.True(t, resp.Data.Published)
}

func TestUpdateDeletePost_NotOwner(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register("ada")
	bob := env.register("bob")
	post := env.createPost(ada, CreatePostRequest{Title: "Mine", Content: "x"})

	w := env.do(http.MethodPut, postPath(post.ID), bob, map[string]string{"title": "Stolen"})
	assertError(t, w, http.StatusNotFound, "not_found")

	w = env.do(http.MethodDelete, postPath(post.ID), bob, nil)
	assertError(t, w, http.StatusNotFound, "not_found")

	w = env.do(http.MethodPut, "/api/posts/abc", ada, map[string]string{"title": "x"})
	assertError(t, w, http.StatusNotFound, "not_found")
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv(t)
	token := env.register("ada")
	post := env.createPost(token, CreatePostRequest{Title: "Bye", Content: "x"})

	w := env.do(http.MethodDelete, postPath(post.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"data":{"success":true}}`, w.Body.String())

	w = env.do(http.MethodDelete, postPath(post.ID), token, nil)
	assertError(t, w, http.StatusNotFound, "not_found")

	// The slug is free again
	env.createPost(token, CreatePostRequest{Title: "Bye", Content: "again"})
}

func TestUpdatePostRequest_Patch(t *testing.T) {
	tests := []struct {
		name         string
		req          UpdatePostRequest
		clearOutline bool
		clearImage   bool
		empty        bool
	}{
		{"nothing set", UpdatePostRequest{}, false, false, true},
		{"null outline", UpdatePostRequest{Outline: optionalString{Set: true}}, true, false, false},
		{"null image", UpdatePostRequest{ImageURL: optionalString{Set: true}}, false, true, false},
		{"outline value", UpdatePostRequest{Outline: optionalString{Set: true, Value: ptr("x")}}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.req.patch()
			assert.Equal(t, tt.clearOutline, p.ClearOutline)
			assert.Equal(t, tt.clearImage, p.ClearImage)
			assert.Equal(t, tt.empty, p.IsEmpty())
		})
	}
}
