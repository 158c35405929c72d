// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/olegiv/oblog-go/internal/ai"
)

// Suggest asks the AI adapter for a title, intro, outline and tags for
// draft text. The result goes back to the caller only.
func (a *Authoring) Suggest(ctx context.Context, text string) (ai.Suggestion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ai.Suggestion{}, NewValidationError("content", "is required")
	}

	s, err := a.suggester.Suggest(ctx, text)
	if err != nil {
		return ai.Suggestion{}, fmt.Errorf("%w: %w", ErrAIUnavailable, err)
	}
	return s, nil
}
