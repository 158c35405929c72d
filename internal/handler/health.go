// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler holds the HTTP handlers shared outside the JSON API:
// health checks and URL parameter parsing.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// CachePinger is satisfied by a cache backed by a remote server.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// readinessTimeout bounds the dependency pings of the readiness check.
const readinessTimeout = 2 * time.Second

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        Pinger
	cache     CachePinger
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// WithCache adds a cache to the readiness check.
func (h *HealthHandler) WithCache(c CachePinger) *HealthHandler {
	h.cache = c
	return h
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeStatus(w, http.StatusOK, map[string]string{
		"status": "alive",
	})
}

// Readiness handles GET /health/ready - checks if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	start := time.Now()
	if err := h.db.PingContext(ctx); err != nil {
		h.notReady(w, "database", err)
		return
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			h.notReady(w, "cache", err)
			return
		}
	}

	writeStatus(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
		"latency": time.Since(start).String(),
	})
}

func (h *HealthHandler) notReady(w http.ResponseWriter, dependency string, err error) {
	slog.Error("readiness check failed", "category", "system", "dependency", dependency, "error", err)
	writeStatus(w, http.StatusServiceUnavailable, map[string]string{
		"status": "not_ready",
	})
}

func writeStatus(w http.ResponseWriter, statusCode int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
