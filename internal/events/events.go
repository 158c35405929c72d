// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package events carries post and comment lifecycle notifications out of the
// authoring service. Publishing is best effort: a slow or failing sink never
// fails the request that produced the event.
package events

import (
	"context"
	"time"
)

// Lifecycle event types.
const (
	TypeUserRegistered  = "user.registered"
	TypePostCreated     = "post.created"
	TypePostUpdated     = "post.updated"
	TypePostPublished   = "post.published"
	TypePostUnpublished = "post.unpublished"
	TypePostDeleted     = "post.deleted"
	TypeCommentCreated  = "comment.created"
	TypeCommentUpdated  = "comment.updated"
	TypeCommentDeleted  = "comment.deleted"
)

// Event is a single lifecycle notification.
type Event struct {
	Type      string    `json:"type"`
	Key       string    `json:"-"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEvent creates an event stamped with the current UTC time. key groups
// events about the same entity so sinks can keep them in order.
func NewEvent(eventType, key string, data any) *Event {
	return &Event{
		Type:      eventType,
		Key:       key,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// PostEventData describes a post in post.* events.
type PostEventData struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Title     string `json:"title,omitempty"`
	Slug      string `json:"slug"`
	Published bool   `json:"published"`
}

// CommentEventData describes a comment in comment.* events.
type CommentEventData struct {
	ID     int64 `json:"id"`
	PostID int64 `json:"post_id"`
	UserID int64 `json:"user_id"`
}

// UserEventData describes a newly registered user.
type UserEventData struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Publisher accepts lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, event *Event)
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, *Event) {}
