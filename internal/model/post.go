// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Post is the owner's full view of a post.
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Outline   *string   `json:"outline"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	ImageURL  *string   `json:"image_url"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicPost is the read-only projection of a published post. It omits the
// owner, outline, publish flag and update time.
type PublicPost struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPost holds the caller-supplied fields for creating a post.
type NewPost struct {
	Title     string
	Content   string
	Outline   *string
	Tags      []string
	ImageURL  *string
	Published bool
}

// PostPatch lists the fields an update replaces. A nil field is left as is.
// ClearOutline and ClearImage null out the optional fields.
type PostPatch struct {
	Title        *string
	Outline      *string
	ClearOutline bool
	Content      *string
	Tags         *[]string
	ImageURL     *string
	ClearImage   bool
	Published    *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Outline == nil && !p.ClearOutline &&
		p.Content == nil && p.Tags == nil && p.ImageURL == nil &&
		!p.ClearImage && p.Published == nil
}
