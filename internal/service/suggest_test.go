// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/oblog-go/internal/ai"
)

type stubSuggester struct {
	calls int
	out   ai.Suggestion
	err   error
}

func (s *stubSuggester) Suggest(context.Context, string) (ai.Suggestion, error) {
	s.calls++
	return s.out, s.err
}

func TestSuggest(t *testing.T) {
	a, _ := newTestAuthoring(t)
	ctx := context.Background()

	stub := &stubSuggester{out: ai.Suggestion{Title: "Catchy", Tags: []string{"a"}}}
	a.suggester = stub

	_, err := a.Suggest(ctx, "   ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, stub.calls, "adapter must not be called for empty text")

	got, err := a.Suggest(ctx, "draft")
	require.NoError(t, err)
	assert.Equal(t, "Catchy", got.Title)

	stub.err = errors.New("quota exceeded")
	_, err = a.Suggest(ctx, "draft")
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestSuggest_DisabledByDefault(t *testing.T) {
	a, _ := newTestAuthoring(t)

	_, err := a.Suggest(context.Background(), "draft")
	assert.ErrorIs(t, err, ErrAIUnavailable)
	assert.ErrorIs(t, err, ai.ErrUnavailable)
}
