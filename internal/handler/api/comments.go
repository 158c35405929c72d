// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/oblog-go/internal/handler"
)

// CommentRequest is the body for creating or editing a comment.
type CommentRequest struct {
	Content string `json:"content"`
}

// ListComments handles GET /posts/{id}/comments. It is public.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := handler.ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, "not_found", "Post not found", nil)
		return
	}

	comments, err := h.authoring.ListComments(r.Context(), postID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteList(w, comments)
}

// CreateComment handles POST /posts/{id}/comments.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	postID, err := handler.ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, "not_found", "Post not found", nil)
		return
	}

	var req CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.authoring.AddComment(r.Context(), userID, postID, req.Content)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteCreated(w, comment)
}

// UpdateComment handles PUT /comments/{id}.
func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := handler.ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusForbidden, "forbidden", "You are not allowed to modify this resource", nil)
		return
	}

	var req CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.authoring.UpdateComment(r.Context(), userID, id, req.Content)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, comment)
}

// DeleteComment handles DELETE /comments/{id}.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id, err := handler.ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusForbidden, "forbidden", "You are not allowed to modify this resource", nil)
		return
	}

	if err := h.authoring.DeleteComment(r.Context(), userID, id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]bool{"success": true})
}
