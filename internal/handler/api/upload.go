// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"

	"github.com/olegiv/oblog-go/internal/media"
)

const (
	// uploadField is the multipart field carrying the image.
	uploadField = "image"
	// multipartOverhead allows for boundaries and headers around the file.
	multipartOverhead = 1 << 20
	// multipartMemory is kept in memory before spilling to temp files.
	multipartMemory = 1 << 20
)

// Upload handles POST /upload: stores an image and returns its URL.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	if h.media == nil {
		WriteError(w, http.StatusNotFound, "not_found", "Uploads are disabled", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.media.MaxBytes()+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			h.writeServiceError(w, r, media.ErrTooLarge)
			return
		}
		WriteValidationError(w, map[string]string{uploadField: "is required"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		WriteValidationError(w, map[string]string{uploadField: "is required"})
		return
	}
	defer func() { _ = file.Close() }()

	upload, err := h.media.Save(r.Context(), file, header.Filename)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.logger.Info("image uploaded", "url", upload.URL, "size", upload.Size)
	WriteCreated(w, upload)
}
