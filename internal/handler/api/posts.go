// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"

	"github.com/olegiv/oblog-go/internal/handler"
	"github.com/olegiv/oblog-go/internal/model"
)

// CreatePostRequest represents the request body for creating a post.
type CreatePostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Outline   *string  `json:"outline,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	ImageURL  *string  `json:"image_url,omitempty"`
	Published bool     `json:"published"`
}

// UpdatePostRequest represents the request body for updating a post. Absent
// fields are left unchanged; outline and image_url may be set to null to
// clear them.
type UpdatePostRequest struct {
	Title     *string        `json:"title,omitempty"`
	Content   *string        `json:"content,omitempty"`
	Outline   optionalString `json:"outline"`
	Tags      *[]string      `json:"tags,omitempty"`
	ImageURL  optionalString `json:"image_url"`
	Published *bool          `json:"published,omitempty"`
}

// optionalString distinguishes an absent field from an explicit null.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (req UpdatePostRequest) patch() model.PostPatch {
	p := model.PostPatch{
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		Published: req.Published,
	}
	if req.Outline.Set {
		if req.Outline.Value == nil {
			p.ClearOutline = true
		} else {
			p.Outline = req.Outline.Value
		}
	}
	if req.ImageURL.Set {
		if req.ImageURL.Value == nil {
			p.ClearImage = true
		} else {
			p.ImageURL = req.ImageURL.Value
		}
	}
	return p
}

// ListPosts handles GET /posts: the caller's own posts, drafts included.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	posts, err := h.authoring.ListOwnPosts(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteList(w, posts)
}

// CreatePost handles POST /posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.authoring.CreatePost(r.Context(), userID, model.NewPost{
		Title:     req.Title,
		Content:   req.Content,
		Outline:   req.Outline,
		Tags:      req.Tags,
		ImageURL:  req.ImageURL,
		Published: req.Published,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteCreated(w, post)
}

// UpdatePost handles PUT /posts/{id}.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := handler.ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, "not_found", "Post not found", nil)
		return
	}

	var req UpdatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.authoring.UpdatePost(r.Context(), userID, id, req.patch())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, post)
}

// DeletePost handles DELETE /posts/{id}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := handler.ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, "not_found", "Post not found", nil)
		return
	}

	if err := h.authoring.DeletePost(r.Context(), userID, id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]bool{"success": true})
}
