// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package events

import (
	"context"
	"log/slog"
)

// LogSink writes events to a logger at debug level. It is used when no
// broker is configured.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Write implements Sink.
func (s *LogSink) Write(ctx context.Context, key string, payload []byte) error {
	s.logger.DebugContext(ctx, "lifecycle event", "key", key, "payload", string(payload))
	return nil
}

// Close implements Sink.
func (s *LogSink) Close() error { return nil }

var _ Sink = (*LogSink)(nil)
