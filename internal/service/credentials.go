// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/olegiv/oblog-go/internal/auth"
	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/store"
)

// CredentialStore persists users and verifies their passwords.
type CredentialStore struct {
	queries *store.Queries
	logger  *slog.Logger
	now     func() time.Time
}

// NewCredentialStore creates a CredentialStore over db.
func NewCredentialStore(db store.DBTX, logger *slog.Logger) *CredentialStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialStore{
		queries: store.New(db),
		logger:  logger,
		now:     time.Now,
	}
}

// NormalizeEmail trims, NFC-normalizes and lowercases an address so lookups
// are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(email)))
}

// MinPasswordLength is the minimum password length in characters.
const MinPasswordLength = 6

// Register creates a user. The email must be unused.
func (s *CredentialStore) Register(ctx context.Context, name, email, password string) (model.User, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	email = NormalizeEmail(email)

	verr := &ValidationError{}
	if name == "" {
		verr.add("name", "is required")
	}
	if email == "" {
		verr.add("email", "is required")
	} else if !strings.Contains(email, "@") {
		verr.add("email", "must be an email address")
	}
	if password == "" {
		verr.add("password", "is required")
	} else if utf8.RuneCountInString(password) < MinPasswordLength {
		verr.add("password", "must be at least 6 characters")
	}
	if err := verr.orNil(); err != nil {
		return model.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.queries.CreateUser(ctx, store.CreateUserParams{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if store.UniqueViolationColumn(err) == store.ColumnUserEmail {
			return model.User{}, ErrDuplicateEmail
		}
		return model.User{}, storeErr("creating user", err)
	}

	return userFromStore(user), nil
}

// FindByEmail returns the stored user for email or ErrNotFound.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (store.User, error) {
	user, err := s.queries.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.User{}, ErrNotFound
		}
		return store.User{}, storeErr("finding user", err)
	}
	return user, nil
}

// VerifyPassword checks a login attempt. An unknown email and a wrong
// password both yield ErrInvalidCredentials after the same amount of hashing
// work. A correct password stored with outdated parameters is rehashed.
func (s *CredentialStore) VerifyPassword(ctx context.Context, email, password string) (model.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		auth.BurnPasswordCheck(password)
		return model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		s.logger.Warn("stored password hash unreadable", "user_id", user.ID, "error", err)
		return model.User{}, ErrInvalidCredentials
	}
	if !ok {
		return model.User{}, ErrInvalidCredentials
	}

	if auth.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user.ID, password)
	}

	return userFromStore(user), nil
}

func (s *CredentialStore) rehash(ctx context.Context, userID int64, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Warn("password rehash failed", "user_id", userID, "error", err)
		return
	}
	if err := s.queries.UpdateUserPasswordHash(ctx, store.UpdateUserPasswordHashParams{
		PasswordHash: hash,
		ID:           userID,
	}); err != nil {
		s.logger.Warn("password rehash not saved", "user_id", userID, "error", err)
	}
}

func userFromStore(u store.User) model.User {
	return model.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
