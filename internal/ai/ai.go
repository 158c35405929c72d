// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ai turns draft text into editorial suggestions (title, intro,
// outline and SEO tags) using an OpenAI-compatible chat completion API.
// Suggestions are advisory and never written to a post.
package ai

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no suggestion could be produced: the
// provider is not configured, the call failed, or the reply was unusable.
var ErrUnavailable = errors.New("ai: suggestion unavailable")

// Suggestion is the editor's proposal for a piece of draft text.
type Suggestion struct {
	Title   string   `json:"title"`
	Intro   string   `json:"intro"`
	Outline string   `json:"outline"`
	Tags    []string `json:"tags"`
}

// Suggester produces a Suggestion for draft text.
type Suggester interface {
	Suggest(ctx context.Context, text string) (Suggestion, error)
}

// Disabled is the Suggester used when no provider is configured.
type Disabled struct{}

// Suggest always fails with ErrUnavailable.
func (Disabled) Suggest(context.Context, string) (Suggestion, error) {
	return Suggestion{}, ErrUnavailable
}
