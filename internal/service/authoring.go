// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds oBlog's authoring service: registration and login,
// the post lifecycle with its ownership rules, comments, and the cached
// published-only projection read by anonymous visitors.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/olegiv/oblog-go/internal/ai"
	"github.com/olegiv/oblog-go/internal/auth"
	"github.com/olegiv/oblog-go/internal/cache"
	"github.com/olegiv/oblog-go/internal/events"
	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/store"
)

// publicCachePrefix is shared by every public projection key, so one
// DeleteByPrefix drops them all.
const publicCachePrefix = "posts:"

// Deps are the collaborators of an Authoring service. Cache, Events and
// Suggester are optional.
type Deps struct {
	DB        *sql.DB
	Tokens    *auth.TokenService
	Cache     cache.Cacher
	CacheTTL  time.Duration
	Events    events.Publisher
	Suggester ai.Suggester
	Logger    *slog.Logger
}

// Authoring applies oBlog's authorization policy on top of the repositories.
// Every mutation is scoped by the caller's user id inside the SQL statement
// itself, so ownership checks cannot race with concurrent writers.
type Authoring struct {
	db          *sql.DB
	queries     *store.Queries
	credentials *CredentialStore
	tokens      *auth.TokenService
	events      events.Publisher
	suggester   ai.Suggester
	logger      *slog.Logger
	now         func() time.Time

	cache      cache.Cacher
	publicList *cache.TypedCache[[]model.PublicPost]
	publicPost *cache.TypedCache[model.PublicPost]
	// publicGen is part of every public cache key. Bumping it before the
	// prefix delete orphans any load that started before the mutation.
	publicGen atomic.Uint64
}

// NewAuthoring creates the authoring service.
func NewAuthoring(deps Deps) *Authoring {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Events == nil {
		deps.Events = events.Nop{}
	}
	if deps.Suggester == nil {
		deps.Suggester = ai.Disabled{}
	}

	a := &Authoring{
		db:          deps.DB,
		queries:     store.New(deps.DB),
		credentials: NewCredentialStore(deps.DB, deps.Logger),
		tokens:      deps.Tokens,
		events:      deps.Events,
		suggester:   deps.Suggester,
		logger:      deps.Logger,
		now:         time.Now,
		cache:       deps.Cache,
	}
	if deps.Cache != nil {
		a.publicList = cache.NewTypedCache[[]model.PublicPost](deps.Cache, deps.CacheTTL)
		a.publicPost = cache.NewTypedCache[model.PublicPost](deps.Cache, deps.CacheTTL)
	}
	return a
}

// Register creates an account.
func (a *Authoring) Register(ctx context.Context, name, email, password string) (model.User, error) {
	user, err := a.credentials.Register(ctx, name, email, password)
	if err != nil {
		return model.User{}, err
	}

	a.logger.Info("user registered", "user_id", user.ID)
	a.publish(ctx, events.TypeUserRegistered, userKey(user.ID), events.UserEventData{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (a *Authoring) Login(ctx context.Context, email, password string) (model.Session, error) {
	if NormalizeEmail(email) == "" || password == "" {
		return model.Session{}, ErrInvalidCredentials
	}

	user, err := a.credentials.VerifyPassword(ctx, email, password)
	if err != nil {
		return model.Session{}, err
	}

	token, expiresAt, err := a.tokens.Issue(user.ID)
	if err != nil {
		return model.Session{}, fmt.Errorf("issuing token: %w", err)
	}

	return model.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate resolves a bearer token to a user id.
func (a *Authoring) Authenticate(token string) (int64, error) {
	uid, err := a.tokens.Verify(token)
	if err != nil {
		return 0, ErrUnauthenticated
	}
	return uid, nil
}

func (a *Authoring) publish(ctx context.Context, eventType, key string, data any) {
	a.events.Publish(ctx, events.NewEvent(eventType, key, data))
}

// invalidatePublic drops every cached public projection entry.
func (a *Authoring) invalidatePublic(ctx context.Context) {
	if a.cache == nil {
		return
	}
	a.publicGen.Add(1)
	if err := a.cache.DeleteByPrefix(ctx, publicCachePrefix); err != nil {
		a.logger.Warn("cache invalidation failed", "category", model.EventCategoryCache, "error", err)
	}
}

// publishedListKey and publishedSlugKey embed the generation observed before
// the database read, so a stale result can only land under a dead key.
func (a *Authoring) publishedListKey() string {
	return publicCachePrefix + strconv.FormatUint(a.publicGen.Load(), 10) + ":published"
}

func (a *Authoring) publishedSlugKey(slug string) string {
	return publicCachePrefix + strconv.FormatUint(a.publicGen.Load(), 10) + ":slug:" + slug
}

func (a *Authoring) timestamp() time.Time {
	return a.now().UTC()
}

func userKey(id int64) string { return "user:" + strconv.FormatInt(id, 10) }
func postKey(id int64) string { return "post:" + strconv.FormatInt(id, 10) }
