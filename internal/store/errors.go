// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "strings"

// Columns guarded by UNIQUE constraints, as SQLite names them in errors.
const (
	ColumnUserEmail = "users.email"
	ColumnPostSlug  = "posts.slug"
)

// Both SQLite drivers report constraint failures with the engine's own text,
// e.g. "constraint failed: UNIQUE constraint failed: posts.slug (2067)".
const uniqueFailedText = "UNIQUE constraint failed: "

// UniqueViolationColumn returns the "table.column" named by a UNIQUE
// constraint failure, or "" if err is not one.
func UniqueViolationColumn(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	idx := strings.Index(msg, uniqueFailedText)
	if idx < 0 {
		return ""
	}
	rest := msg[idx+len(uniqueFailedText):]
	if end := strings.IndexAny(rest, " ,("); end >= 0 {
		rest = rest[:end]
	}
	return rest
}
