// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Sink delivers an encoded event to its destination.
type Sink interface {
	Write(ctx context.Context, key string, payload []byte) error
	Close() error
}

// Dispatcher queues events and hands them to a Sink from a pool of workers.
type Dispatcher struct {
	sink    Sink
	logger  *slog.Logger
	queue   chan *Event
	workers int
	timeout time.Duration
	wg      sync.WaitGroup
	mu      sync.RWMutex
	running bool
}

// Config holds dispatcher configuration.
type Config struct {
	Workers      int           // Number of concurrent delivery workers
	QueueSize    int           // Buffered events before new ones are dropped
	WriteTimeout time.Duration // Per-event sink deadline
}

// DefaultConfig returns default dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		Workers:      2,
		QueueSize:    256,
		WriteTimeout: 10 * time.Second,
	}
}

// NewDispatcher creates a dispatcher writing to sink.
func NewDispatcher(sink Sink, logger *slog.Logger, cfg Config) *Dispatcher {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		sink:    sink,
		logger:  logger,
		queue:   make(chan *Event, cfg.QueueSize),
		workers: cfg.Workers,
		timeout: cfg.WriteTimeout,
	}
}

// Start starts the dispatcher workers.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true

	d.logger.Info("starting event dispatcher", "workers", d.workers)
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

// Stop drains queued events, waits for the workers and closes the sink.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	if err := d.sink.Close(); err != nil {
		d.logger.Warn("closing event sink", "error", err)
	}
	d.logger.Info("event dispatcher stopped")
}

// Publish enqueues an event. It never blocks: when the dispatcher is stopped
// or the queue is full the event is dropped with a warning.
func (d *Dispatcher) Publish(_ context.Context, event *Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.running {
		d.logger.Warn("event dispatcher not running, dropping event", "event_type", event.Type)
		return
	}

	select {
	case d.queue <- event:
	default:
		d.logger.Warn("event queue full, dropping event", "event_type", event.Type)
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	d.logger.Debug("event worker started", "worker_id", id)

	for event := range d.queue {
		d.deliver(event)
	}

	d.logger.Debug("event worker stopping", "worker_id", id)
}

func (d *Dispatcher) deliver(event *Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.Warn("failed to marshal event", "error", err, "event_type", event.Type)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.sink.Write(ctx, event.Key, payload); err != nil {
		d.logger.Warn("failed to deliver event", "error", err, "event_type", event.Type)
		return
	}
	d.logger.Debug("event delivered", "event_type", event.Type, "key", event.Key)
}

var _ Publisher = (*Dispatcher)(nil)
