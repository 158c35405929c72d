// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON REST API of oBlog.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/oblog-go/internal/media"
	"github.com/olegiv/oblog-go/internal/middleware"
	"github.com/olegiv/oblog-go/internal/service"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// Config holds presentation settings of the API.
type Config struct {
	// SiteURL is the public base URL used in the feed and sitemap. When
	// empty it is derived from the request.
	SiteURL string
	// SiteName is the feed title.
	SiteName string
	// UserRPS and UserBurst rate limit authenticated requests per user.
	UserRPS   float64
	UserBurst int
}

// Deps are the collaborators of the API handlers. Media and Login are optional.
type Deps struct {
	Authoring *service.Authoring
	Media     *media.Store
	Login     *middleware.LoginProtection
	Config    Config
	Logger    *slog.Logger
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	authoring *service.Authoring
	media     *media.Store
	login     *middleware.LoginProtection
	cfg       Config
	logger    *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(deps Deps) *Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Config.SiteName == "" {
		deps.Config.SiteName = "oBlog"
	}
	return &Handler{
		authoring: deps.Authoring,
		media:     deps.Media,
		login:     deps.Login,
		cfg:       deps.Config,
		logger:    deps.Logger,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries list metadata.
type Meta struct {
	Total int `json:"total"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse = middleware.APIError

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Response{Data: data})
}

// WriteList writes a list with its total count.
func WriteList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	WriteJSON(w, http.StatusOK, Response{Data: items, Meta: &Meta{Total: len(items)}})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	middleware.WriteAPIError(w, statusCode, code, message, details)
}

// WriteValidationError writes a 400 response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusBadRequest, "validation_error", "Validation failed", fieldErrors)
}

// writeServiceError maps a service or media failure to its HTTP status and
// error code. Unexpected errors are logged and reported as internal errors.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteValidationError(w, verr.Fields)
	case errors.Is(err, service.ErrValidation):
		WriteError(w, http.StatusBadRequest, "validation_error", "Validation failed", nil)
	case errors.Is(err, service.ErrDuplicateEmail):
		WriteError(w, http.StatusBadRequest, "duplicate_email", "Email is already registered",
			map[string]string{"email": "is already registered"})
	case errors.Is(err, service.ErrSlugConflict):
		WriteError(w, http.StatusBadRequest, "slug_conflict", "A post with this title already exists",
			map[string]string{"title": "produces a slug that is already in use"})
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", nil)
	case errors.Is(err, service.ErrUnauthenticated):
		WriteError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required", nil)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, http.StatusForbidden, "forbidden", "You are not allowed to modify this resource", nil)
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "Resource not found", nil)
	case errors.Is(err, service.ErrAIUnavailable):
		h.logger.Warn("ai suggestion failed", "category", "system", "error", err,
			"request_id", chimw.GetReqID(r.Context()))
		WriteError(w, http.StatusInternalServerError, "ai_unavailable", "AI suggestions are currently unavailable", nil)
	case errors.Is(err, media.ErrTooLarge):
		WriteValidationError(w, map[string]string{"image": fmt.Sprintf("must be at most %d bytes", h.maxUploadBytes())})
	case errors.Is(err, media.ErrUnsupportedType):
		WriteValidationError(w, map[string]string{"image": "must be a JPEG, PNG, GIF or WebP image"})
	case errors.Is(err, media.ErrEmpty):
		WriteValidationError(w, map[string]string{"image": "is empty"})
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the response
	default:
		h.logger.Error("request failed", "category", "system", "error", err,
			"method", r.Method, "path", r.URL.Path, "request_id", chimw.GetReqID(r.Context()))
		WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
	}
}

func (h *Handler) maxUploadBytes() int64 {
	if h.media == nil {
		return media.DefaultMaxBytes
	}
	return h.media.MaxBytes()
}

// decodeJSON decodes the request body into dst. On failure it writes a 400
// response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			WriteValidationError(w, map[string]string{"body": "is too large"})
			return false
		}
		WriteValidationError(w, map[string]string{"body": "must be valid JSON"})
		return false
	}
	return true
}

// requireUserID returns the authenticated caller. Routes using it sit behind
// RequireAuth, so a missing id means the router is misconfigured.
func requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required", nil)
		return 0, false
	}
	return userID, true
}
