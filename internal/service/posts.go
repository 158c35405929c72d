// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/olegiv/oblog-go/internal/events"
	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/store"
	"github.com/olegiv/oblog-go/internal/util"
)

// CreatePost stores a new post owned by ownerID. The slug is derived from the
// title once; a clash with any existing post is ErrSlugConflict.
func (a *Authoring) CreatePost(ctx context.Context, ownerID int64, in model.NewPost) (model.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)

	verr := &ValidationError{}
	if title == "" {
		verr.add("title", "is required")
	}
	if content == "" {
		verr.add("content", "is required")
	}
	slug := util.Slugify(title)
	if title != "" && slug == "" {
		verr.add("title", "must contain at least one letter or digit")
	}
	if err := verr.orNil(); err != nil {
		return model.Post{}, err
	}

	tags, err := store.EncodeTags(cleanTags(in.Tags))
	if err != nil {
		return model.Post{}, err
	}

	now := a.timestamp()
	row, err := a.queries.CreatePost(ctx, store.CreatePostParams{
		UserID:    ownerID,
		Title:     title,
		Slug:      slug,
		Outline:   util.NullStringFromPtr(in.Outline),
		Content:   content,
		Tags:      tags,
		ImageUrl:  util.NullStringFromPtr(in.ImageURL),
		Published: in.Published,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if store.UniqueViolationColumn(err) == store.ColumnPostSlug {
			return model.Post{}, ErrSlugConflict
		}
		return model.Post{}, storeErr("creating post", err)
	}

	post, err := postFromStore(row)
	if err != nil {
		return model.Post{}, err
	}

	a.logger.Info("post created", "post_id", post.ID, "user_id", ownerID, "slug", post.Slug)
	a.publish(ctx, events.TypePostCreated, postKey(post.ID), postEvent(post))
	if post.Published {
		a.invalidatePublic(ctx)
	}
	return post, nil
}

// ListOwnPosts returns every post owned by ownerID, most recently updated
// first.
func (a *Authoring) ListOwnPosts(ctx context.Context, ownerID int64) ([]model.Post, error) {
	rows, err := a.queries.ListPostsByUser(ctx, ownerID)
	if err != nil {
		return nil, storeErr("listing posts", err)
	}

	posts := make([]model.Post, 0, len(rows))
	for _, row := range rows {
		p, err := postFromStore(row)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// UpdatePost replaces the fields present in patch. A post that does not
// exist and a post owned by someone else are both ErrNotFound. The slug never
// changes.
func (a *Authoring) UpdatePost(ctx context.Context, ownerID, postID int64, patch model.PostPatch) (model.Post, error) {
	if patch.IsEmpty() {
		return a.ownPost(ctx, ownerID, postID)
	}

	params, err := updateParams(patch)
	if err != nil {
		return model.Post{}, err
	}
	params.ID = postID
	params.UserID = ownerID
	params.UpdatedAt = a.timestamp()

	var before, after store.Post
	err = a.withTx(ctx, func(q *store.Queries) error {
		var err error
		before, err = q.GetPostForOwner(ctx, store.GetPostForOwnerParams{ID: postID, UserID: ownerID})
		if err != nil {
			return err
		}
		after, err = q.UpdatePost(ctx, params)
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Post{}, ErrNotFound
		}
		return model.Post{}, storeErr("updating post", err)
	}

	post, err := postFromStore(after)
	if err != nil {
		return model.Post{}, err
	}

	eventType := events.TypePostUpdated
	switch {
	case !before.Published && after.Published:
		eventType = events.TypePostPublished
	case before.Published && !after.Published:
		eventType = events.TypePostUnpublished
	}

	a.logger.Info("post updated", "post_id", post.ID, "user_id", ownerID, "event", eventType)
	a.publish(ctx, eventType, postKey(post.ID), postEvent(post))
	if before.Published || after.Published {
		a.invalidatePublic(ctx)
	}
	return post, nil
}

// ownPost returns the owner's post untouched: no write, no event.
func (a *Authoring) ownPost(ctx context.Context, ownerID, postID int64) (model.Post, error) {
	row, err := a.queries.GetPostForOwner(ctx, store.GetPostForOwnerParams{ID: postID, UserID: ownerID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Post{}, ErrNotFound
		}
		return model.Post{}, storeErr("loading post", err)
	}
	return postFromStore(row)
}

// DeletePost removes a post and, by cascade, its comments. Absent and
// foreign posts are ErrNotFound.
func (a *Authoring) DeletePost(ctx context.Context, ownerID, postID int64) error {
	slug, err := a.queries.DeletePost(ctx, store.DeletePostParams{ID: postID, UserID: ownerID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return storeErr("deleting post", err)
	}

	a.logger.Info("post deleted", "post_id", postID, "user_id", ownerID)
	a.publish(ctx, events.TypePostDeleted, postKey(postID), events.PostEventData{
		ID:     postID,
		UserID: ownerID,
		Slug:   slug,
	})
	a.invalidatePublic(ctx)
	return nil
}

// updateParams validates a patch and turns it into flag-guarded update
// parameters.
func updateParams(patch model.PostPatch) (store.UpdatePostParams, error) {
	var p store.UpdatePostParams
	verr := &ValidationError{}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			verr.add("title", "must not be empty")
		}
		p.SetTitle, p.Title = true, title
	}
	if patch.Content != nil {
		content := strings.TrimSpace(*patch.Content)
		if content == "" {
			verr.add("content", "must not be empty")
		}
		p.SetContent, p.Content = true, content
	}
	switch {
	case patch.ClearOutline:
		p.SetOutline = true
	case patch.Outline != nil:
		p.SetOutline, p.Outline = true, sql.NullString{String: *patch.Outline, Valid: true}
	}
	switch {
	case patch.ClearImage:
		p.SetImageUrl = true
	case patch.ImageURL != nil:
		p.SetImageUrl, p.ImageUrl = true, sql.NullString{String: *patch.ImageURL, Valid: true}
	}
	if patch.Tags != nil {
		tags, err := store.EncodeTags(cleanTags(*patch.Tags))
		if err != nil {
			return p, err
		}
		p.SetTags, p.Tags = true, tags
	}
	if patch.Published != nil {
		p.SetPublished, p.Published = true, *patch.Published
	}

	return p, verr.orNil()
}

// cleanTags trims tags and drops empty ones, keeping order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (a *Authoring) withTx(ctx context.Context, fn func(q *store.Queries) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(a.queries.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func postEvent(p model.Post) events.PostEventData {
	return events.PostEventData{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Slug:      p.Slug,
		Published: p.Published,
	}
}
