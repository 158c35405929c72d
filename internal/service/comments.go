// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/olegiv/oblog-go/internal/events"
	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/store"
)

// AddComment attaches a comment by authorID to any existing post, draft or
// published. The existence check and the insert are one statement.
func (a *Authoring) AddComment(ctx context.Context, authorID, postID int64, content string) (model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Comment{}, NewValidationError("content", "is required")
	}

	var row store.GetCommentWithAuthorRow
	err := a.withTx(ctx, func(q *store.Queries) error {
		id, err := q.CreateComment(ctx, store.CreateCommentParams{
			UserID:    authorID,
			Content:   content,
			CreatedAt: a.timestamp(),
			PostID:    postID,
		})
		if err != nil {
			return err
		}
		row, err = q.GetCommentWithAuthor(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Comment{}, ErrNotFound
		}
		return model.Comment{}, storeErr("creating comment", err)
	}

	comment := commentFromRow(row)
	a.publish(ctx, events.TypeCommentCreated, postKey(postID), commentEvent(comment))
	return comment, nil
}

// ListComments returns a post's comments newest first. A missing post is
// ErrNotFound.
func (a *Authoring) ListComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	exists, err := a.queries.PostExists(ctx, postID)
	if err != nil {
		return nil, storeErr("checking post", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	rows, err := a.queries.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, storeErr("listing comments", err)
	}

	comments := make([]model.Comment, 0, len(rows))
	for _, r := range rows {
		comments = append(comments, commentFromRow(store.GetCommentWithAuthorRow(r)))
	}
	return comments, nil
}

// UpdateComment replaces the content of a comment written by authorID. Any
// other comment id, including one that does not exist, is ErrForbidden.
func (a *Authoring) UpdateComment(ctx context.Context, authorID, commentID int64, content string) (model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Comment{}, NewValidationError("content", "is required")
	}

	var row store.GetCommentWithAuthorRow
	err := a.withTx(ctx, func(q *store.Queries) error {
		if _, err := q.UpdateComment(ctx, store.UpdateCommentParams{
			Content: content,
			ID:      commentID,
			UserID:  authorID,
		}); err != nil {
			return err
		}
		var err error
		row, err = q.GetCommentWithAuthor(ctx, commentID)
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Comment{}, ErrForbidden
		}
		return model.Comment{}, storeErr("updating comment", err)
	}

	comment := commentFromRow(row)
	a.publish(ctx, events.TypeCommentUpdated, postKey(comment.PostID), commentEvent(comment))
	return comment, nil
}

// DeleteComment removes a comment written by authorID; anything else is
// ErrForbidden.
func (a *Authoring) DeleteComment(ctx context.Context, authorID, commentID int64) error {
	postID, err := a.queries.DeleteComment(ctx, store.DeleteCommentParams{ID: commentID, UserID: authorID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrForbidden
		}
		return storeErr("deleting comment", err)
	}

	a.publish(ctx, events.TypeCommentDeleted, postKey(postID), events.CommentEventData{
		ID:     commentID,
		PostID: postID,
		UserID: authorID,
	})
	return nil
}

func commentEvent(c model.Comment) events.CommentEventData {
	return events.CommentEventData{
		ID:     c.ID,
		PostID: c.PostID,
		UserID: c.UserID,
	}
}
