// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/oblog-go/internal/ai"
	"github.com/olegiv/oblog-go/internal/auth"
	"github.com/olegiv/oblog-go/internal/cache"
	"github.com/olegiv/oblog-go/internal/media"
	"github.com/olegiv/oblog-go/internal/middleware"
	"github.com/olegiv/oblog-go/internal/service"
	"github.com/olegiv/oblog-go/internal/testutil"
)

const testSecret = "test-Secret-key-32-bytes-long!!!"

// stubSuggester returns a fixed suggestion or error.
type stubSuggester struct {
	suggestion ai.Suggestion
	err        error
}

func (s stubSuggester) Suggest(context.Context, string) (ai.Suggestion, error) {
	return s.suggestion, s.err
}

type testEnv struct {
	t      *testing.T
	router http.Handler
	media  *media.Store
}

type envOption func(*service.Deps, *Config)

func withSuggester(s ai.Suggester) envOption {
	return func(d *service.Deps, _ *Config) { d.Suggester = s }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mem.Close() })

	deps := service.Deps{
		DB:       db,
		Tokens:   auth.NewTokenService(testSecret, "oblog-test", time.Hour),
		Cache:    mem,
		CacheTTL: time.Minute,
		Logger:   testutil.TestLoggerSilent(),
	}
	cfg := Config{SiteURL: "https://blog.example", SiteName: "oBlog"}
	for _, opt := range opts {
		opt(&deps, &cfg)
	}

	store, err := media.NewStore(media.Config{Dir: t.TempDir(), MaxBytes: 64 << 10}, testutil.TestLoggerSilent())
	require.NoError(t, err)

	h := NewHandler(Deps{
		Authoring: service.NewAuthoring(deps),
		Media:     store,
		Login: middleware.NewLoginProtection(middleware.LoginProtectionConfig{
			IPRateLimit:       1000,
			IPBurst:           1000,
			MaxFailedAttempts: 3,
			LockoutDuration:   time.Minute,
		}),
		Config: cfg,
		Logger: testutil.TestLoggerSilent(),
	})

	r := chi.NewRouter()
	r.Mount("/api", h.Routes())
	r.Get("/robots.txt", h.Robots)

	return &testEnv{t: t, router: r, media: store}
}

// do sends a request with an optional JSON body and bearer token.
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(e.t, err)
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns a bearer token for it.
func (e *testEnv) register(name string) string {
	e.t.Helper()

	email := name + "@example.com"
	password := "password-" + name

	w := e.do(http.MethodPost, "/api/auth/register", "", RegisterRequest{Name: name, Email: email, Password: password})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(http.MethodPost, "/api/auth/login", "", LoginRequest{Email: email, Password: password})
	require.Equal(e.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data LoginResponse `json:"data"`
	}
	decode(e.t, w, &resp)
	require.NotEmpty(e.t, resp.Data.Token)
	return resp.Data.Token
}

// createPost creates a post and returns its decoded body.
func (e *testEnv) createPost(token string, req CreatePostRequest) postBody {
	e.t.Helper()

	w := e.do(http.MethodPost, "/api/posts", token, req)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data postBody `json:"data"`
	}
	decode(e.t, w, &resp)
	return resp.Data
}

// postBody mirrors the JSON of a post as clients see it.
type postBody struct {
	ID        int64    `json:"id"`
	UserID    int64    `json:"user_id"`
	Title     string   `json:"title"`
	Slug      string   `json:"slug"`
	Outline   *string  `json:"outline"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	ImageURL  *string  `json:"image_url"`
	Published bool     `json:"published"`
}

type listBody[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

// assertError checks status and error code of an error response.
func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()

	require.Equal(t, status, w.Code, w.Body.String())
	var resp ErrorResponse
	decode(t, w, &resp)
	require.Equal(t, code, resp.Error.Code)
	return resp
}

func postPath(id int64) string {
	return fmt.Sprintf("/api/posts/%d", id)
}

func ptr[T any](v T) *T { return &v }
