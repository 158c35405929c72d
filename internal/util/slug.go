// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides small helpers shared across oBlog packages,
// such as post slug derivation.
package util

import (
	"regexp"
	"strings"
)

// nonAlnumRun matches every run of characters outside [a-z0-9].
var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a post slug from a title: lowercase, each run of
// non-alphanumeric characters collapsed to a single hyphen, leading and
// trailing hyphens stripped. Letters outside ASCII are treated as separators,
// so a title made only of them yields "".
func Slugify(s string) string {
	result := strings.ToLower(s)
	result = nonAlnumRun.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}
