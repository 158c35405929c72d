// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"database/sql"

	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/store"
)

func postFromStore(p store.Post) (model.Post, error) {
	tags, err := store.DecodeTags(p.Tags)
	if err != nil {
		return model.Post{}, storeErr("reading post tags", err)
	}
	return model.Post{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Slug:      p.Slug,
		Outline:   nullStringPtr(p.Outline),
		Content:   p.Content,
		Tags:      tags,
		ImageURL:  nullStringPtr(p.ImageUrl),
		Published: p.Published,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

func publicFromListRow(r store.ListPublishedPostsRow) (model.PublicPost, error) {
	tags, err := store.DecodeTags(r.Tags)
	if err != nil {
		return model.PublicPost{}, storeErr("reading post tags", err)
	}
	return model.PublicPost{
		ID:        r.ID,
		Title:     r.Title,
		Slug:      r.Slug,
		Content:   r.Content,
		Tags:      tags,
		ImageURL:  nullStringPtr(r.ImageUrl),
		CreatedAt: r.CreatedAt,
	}, nil
}

func publicFromSlugRow(r store.GetPublishedPostBySlugRow) (model.PublicPost, error) {
	return publicFromListRow(store.ListPublishedPostsRow(r))
}

func commentFromRow(r store.GetCommentWithAuthorRow) model.Comment {
	return model.Comment{
		ID:        r.ID,
		PostID:    r.PostID,
		UserID:    r.UserID,
		Name:      r.Name,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
	}
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
