// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/oblog-go/internal/auth"
	"github.com/olegiv/oblog-go/internal/cache"
	"github.com/olegiv/oblog-go/internal/events"
	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/testutil"
)

const testSecret = "test-Secret-key-32-bytes-long!!!"

// recorder is an events.Publisher that keeps everything it is given.
type recorder struct {
	mu     sync.Mutex
	events []*events.Event
}

func (r *recorder) Publish(_ context.Context, e *events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) last() *events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

// steppingClock returns a clock that advances one second per call, so rows
// written in sequence never share a timestamp.
func steppingClock() func() time.Time {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func newTestAuthoring(t *testing.T) (*Authoring, *recorder) {
	t.Helper()

	db := testutil.TestMemoryDB(t)
	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mem.Close() })

	rec := &recorder{}
	a := NewAuthoring(Deps{
		DB:       db,
		Tokens:   auth.NewTokenService(testSecret, "oblog-test", time.Hour),
		Cache:    mem,
		CacheTTL: time.Minute,
		Events:   rec,
		Logger:   testutil.TestLoggerSilent(),
	})
	a.now = steppingClock()
	return a, rec
}

func mustRegister(t *testing.T, a *Authoring, name, email string) model.User {
	t.Helper()
	u, err := a.Register(context.Background(), name, email, "password-"+name)
	require.NoError(t, err)
	return u
}

func mustCreatePost(t *testing.T, a *Authoring, owner int64, title string) model.Post {
	t.Helper()
	p, err := a.CreatePost(context.Background(), owner, model.NewPost{Title: title, Content: "Body of " + title})
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }
