// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/oblog-go/internal/auth"
)

// Demo author credentials
const (
	DemoAuthorEmail    = "author@example.com"
	DemoAuthorPassword = "changeme"
	DemoAuthorName     = "Demo Author"
	DemoPostSlug       = "welcome-to-oblog"
)

// Seed creates a demo author with one published post. It is a no-op when the
// demo author already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, DemoAuthorEmail)
	if err == nil {
		slog.Info("demo author already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for demo author: %w", err)
	}

	passwordHash, err := auth.HashPassword(DemoAuthorPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := queries.WithTx(tx)

	now := time.Now().UTC()
	user, err := qtx.CreateUser(ctx, CreateUserParams{
		Name:         DemoAuthorName,
		Email:        DemoAuthorEmail,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating demo author: %w", err)
	}

	tags, err := EncodeTags([]string{"welcome", "oblog"})
	if err != nil {
		return err
	}
	if _, err := qtx.CreatePost(ctx, CreatePostParams{
		UserID:    user.ID,
		Title:     "Welcome to oBlog",
		Slug:      DemoPostSlug,
		Content:   "This is your first post. Edit or delete it, then start writing.",
		Tags:      tags,
		Published: true,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("creating demo post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("created demo author",
		"id", user.ID,
		"email", user.Email,
		"password", DemoAuthorPassword,
	)

	return nil
}
