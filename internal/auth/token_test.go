// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-Secret-key-32-bytes-long!!!"

func TestTokenService_IssueVerify(t *testing.T) {
	svc := NewTokenService(testSecret, "oblog", time.Hour)

	token, expiresAt, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}
	if d := time.Until(expiresAt); d < 59*time.Minute || d > time.Hour+time.Second {
		t.Errorf("expiresAt in %v, want about 1h", d)
	}

	uid, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if uid != 42 {
		t.Errorf("Verify() = %d, want 42", uid)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService(testSecret, "oblog", 0)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, expiresAt, err := svc.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if got := expiresAt.Sub(now); got != DefaultTokenTTL {
		t.Errorf("token lifetime = %v, want %v", got, DefaultTokenTTL)
	}
}

func TestTokenService_IssueInvalidUser(t *testing.T) {
	svc := NewTokenService(testSecret, "oblog", time.Hour)
	if _, _, err := svc.Issue(0); err == nil {
		t.Error("Issue(0) should fail")
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService(testSecret, "oblog", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }

	token, _, err := svc.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(expired) error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService(testSecret, "oblog", time.Hour)
	good, _, err := svc.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	otherSecret, _, _ := NewTokenService("another-Secret-key-32-bytes-long!", "oblog", time.Hour).Issue(7)
	otherIssuer, _, _ := NewTokenService(testSecret, "someone-else", time.Hour).Issue(7)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    "oblog",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing none token: %v", err)
	}

	mismatched, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "8",
			Issuer:    "oblog",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing mismatched token: %v", err)
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           7,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "7", Issuer: "oblog"},
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"truncated", good[:len(good)-4]},
		{"wrong secret", otherSecret},
		{"wrong issuer", otherIssuer},
		{"alg none", noneToken},
		{"subject mismatch", mismatched},
		{"no expiry", noExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uid, err := svc.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
			if uid != 0 {
				t.Errorf("Verify() uid = %d, want 0", uid)
			}
		})
	}
}

func TestTokenService_LogsRejectionReason(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	svc := NewTokenService(testSecret, "oblog", time.Hour).WithLogger(logger)
	expired := NewTokenService(testSecret, "oblog", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := expired.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Verify() error = %v, want ErrInvalidToken", err)
	}

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "token rejected") {
		t.Errorf("log output = %q, want a debug rejection record", out)
	}
	if !strings.Contains(out, "expired") {
		t.Errorf("log output = %q, want the expiry reason", out)
	}
}
