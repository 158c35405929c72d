// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/util"
)

// ListPublished returns the public projection of every published post,
// newest first. Results are cached until the next post mutation.
func (a *Authoring) ListPublished(ctx context.Context) ([]model.PublicPost, error) {
	if a.publicList == nil {
		return a.loadPublished(ctx)
	}

	posts, err := a.publicList.GetOrSet(ctx, a.publishedListKey(), func() (*[]model.PublicPost, error) {
		posts, err := a.loadPublished(ctx)
		if err != nil {
			return nil, err
		}
		return &posts, nil
	})
	if err != nil {
		return nil, err
	}
	return *posts, nil
}

// GetPublishedBySlug returns one published post. Drafts are ErrNotFound.
func (a *Authoring) GetPublishedBySlug(ctx context.Context, slug string) (model.PublicPost, error) {
	// Nothing Slugify produces can fail this, so skip the lookup.
	if !util.IsValidSlug(slug) {
		return model.PublicPost{}, ErrNotFound
	}
	if a.publicPost == nil {
		return a.loadPublishedBySlug(ctx, slug)
	}

	post, err := a.publicPost.GetOrSet(ctx, a.publishedSlugKey(slug), func() (*model.PublicPost, error) {
		post, err := a.loadPublishedBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		return &post, nil
	})
	if err != nil {
		return model.PublicPost{}, err
	}
	return *post, nil
}

func (a *Authoring) loadPublished(ctx context.Context) ([]model.PublicPost, error) {
	rows, err := a.queries.ListPublishedPosts(ctx)
	if err != nil {
		return nil, storeErr("listing published posts", err)
	}

	posts := make([]model.PublicPost, 0, len(rows))
	for _, row := range rows {
		p, err := publicFromListRow(row)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func (a *Authoring) loadPublishedBySlug(ctx context.Context, slug string) (model.PublicPost, error) {
	row, err := a.queries.GetPublishedPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PublicPost{}, ErrNotFound
		}
		return model.PublicPost{}, storeErr("loading published post", err)
	}
	return publicFromSlugRow(row)
}
