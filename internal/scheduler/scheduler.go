// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs oBlog's housekeeping jobs. Posts are never touched
// here: publication only changes through an explicit update.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/oblog-go/internal/model"
)

// PruneSchedule is the cron spec of the event pruning job (daily, 03:00).
const PruneSchedule = "0 3 * * *"

// pruneTimeout bounds a single pruning run.
const pruneTimeout = time.Minute

// EventPruner is the part of the event log the scheduler needs.
type EventPruner interface {
	DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error)
	LogSystemEvent(ctx context.Context, level, message string, metadata map[string]any) error
}

// Scheduler handles periodic housekeeping tasks.
type Scheduler struct {
	cron      *cron.Cron
	events    EventPruner
	retention time.Duration
	logger    *slog.Logger
}

// New creates a new scheduler instance. Events older than retention are
// pruned once a day; a non-positive retention disables pruning.
func New(events EventPruner, retention time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:      cron.New(),
		events:    events,
		retention: retention,
		logger:    logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.events != nil && s.retention > 0 {
		_, err := s.cron.AddFunc(PruneSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
			defer cancel()
			if _, err := s.PruneEvents(ctx); err != nil {
				s.logger.Error("failed to prune events", "category", model.EventCategorySystem, "error", err)
			}
		})
		if err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PruneEvents deletes events past the retention period and records how many
// were removed.
func (s *Scheduler) PruneEvents(ctx context.Context) (int64, error) {
	n, err := s.events.DeleteOldEvents(ctx, s.retention)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}

	s.logger.Info("pruned old events", "count", n, "retention", s.retention)
	if err := s.events.LogSystemEvent(ctx, model.EventLevelInfo, "Old events pruned by scheduler", map[string]any{
		"deleted":        n,
		"retention_days": int(s.retention.Hours() / 24),
	}); err != nil {
		s.logger.Warn("failed to log prune event", "error", err)
	}
	return n, nil
}
