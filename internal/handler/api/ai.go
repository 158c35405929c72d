// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import "net/http"

// GenerateRequest is the body of POST /ai/generate.
type GenerateRequest struct {
	Content string `json:"content"`
}

// Generate handles POST /ai/generate. The suggestion is returned to the
// client only.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req GenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	suggestion, err := h.authoring.Suggest(r.Context(), req.Content)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, suggestion)
}
