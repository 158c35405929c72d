// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/olegiv/oblog-go/internal/service"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authoring.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteCreated(w, RegisterResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

// Login handles POST /auth/login. Repeated failures for one account lock it
// for a growing period.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account := service.NormalizeEmail(req.Email)
	if h.login != nil && account != "" {
		if locked, remaining := h.login.IsAccountLocked(account); locked {
			WriteError(w, http.StatusTooManyRequests, "rate_limited",
				fmt.Sprintf("Too many failed attempts. Try again in %s.", remaining.Round(time.Second)), nil)
			return
		}
	}

	session, err := h.authoring.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if h.login != nil && account != "" && errors.Is(err, service.ErrInvalidCredentials) {
			h.login.RecordFailedAttempt(account)
		}
		h.writeServiceError(w, r, err)
		return
	}

	if h.login != nil {
		h.login.RecordSuccessfulLogin(account)
	}
	WriteSuccess(w, LoginResponse{Token: session.Token, ExpiresAt: session.ExpiresAt})
}
