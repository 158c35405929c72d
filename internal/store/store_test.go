// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "oblog-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
		_ = os.Remove(dbPath + "-wal")
		_ = os.Remove(dbPath + "-shm")
	}

	return db, cleanup
}

func createTestUser(t *testing.T, q *Queries, email string) User {
	t.Helper()
	user, err := q.CreateUser(context.Background(), CreateUserParams{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashed-password",
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func createTestPost(t *testing.T, q *Queries, userID int64, slug string, published bool, at time.Time) Post {
	t.Helper()
	post, err := q.CreatePost(context.Background(), CreatePostParams{
		UserID:    userID,
		Title:     "Title " + slug,
		Slug:      slug,
		Content:   "Content for " + slug,
		Tags:      `["go"]`,
		Published: published,
		CreatedAt: at,
		UpdatedAt: at,
	})
	if err != nil {
		t.Fatalf("CreatePost(%s): %v", slug, err)
	}
	return post
}

func TestDSN(t *testing.T) {
	dsn := DSN("/tmp/x.db")
	if !strings.HasPrefix(dsn, "file:/tmp/x.db?") {
		t.Errorf("DSN = %q, want file: prefix", dsn)
	}
	for _, want := range []string{"foreign_keys%281%29", "journal_mode%28WAL%29", "_txlock=immediate"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("DSN = %q, missing %q", dsn, want)
		}
	}
}

func TestCreateUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	user := createTestUser(t, q, "test@example.com")

	if user.ID == 0 {
		t.Error("expected non-zero user ID")
	}
	if user.Email != "test@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "test@example.com")
	}
	if user.Name != "Test User" {
		t.Errorf("Name = %q, want %q", user.Name, "Test User")
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	createTestUser(t, q, "dup@example.com")

	_, err := q.CreateUser(context.Background(), CreateUserParams{
		Name:         "Other",
		Email:        "dup@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	})
	if col := UniqueViolationColumn(err); col != ColumnUserEmail {
		t.Errorf("UniqueViolationColumn(%v) = %q, want %q", err, col, ColumnUserEmail)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	_, err := New(db).GetUserByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestGetUserByID(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	created := createTestUser(t, q, "byid@example.com")

	got, err := q.GetUserByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Email != created.Email {
		t.Errorf("Email = %q, want %q", got.Email, created.Email)
	}
}

func TestUpdateUserPasswordHash(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	user := createTestUser(t, q, "rehash@example.com")

	if err := q.UpdateUserPasswordHash(ctx, UpdateUserPasswordHashParams{
		PasswordHash: "new-hash",
		ID:           user.ID,
	}); err != nil {
		t.Fatalf("UpdateUserPasswordHash: %v", err)
	}

	got, err := q.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.PasswordHash != "new-hash" {
		t.Errorf("PasswordHash = %q, want %q", got.PasswordHash, "new-hash")
	}
}

func TestCreatePost_DuplicateSlug(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	user := createTestUser(t, q, "a@example.com")
	now := time.Now().UTC()
	createTestPost(t, q, user.ID, "same", false, now)

	_, err := q.CreatePost(context.Background(), CreatePostParams{
		UserID:    user.ID,
		Title:     "Same",
		Slug:      "same",
		Content:   "x",
		Tags:      "[]",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if col := UniqueViolationColumn(err); col != ColumnPostSlug {
		t.Errorf("UniqueViolationColumn(%v) = %q, want %q", err, col, ColumnPostSlug)
	}
}

func TestListPostsByUser_Order(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	user := createTestUser(t, q, "a@example.com")
	other := createTestUser(t, q, "b@example.com")

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	p1 := createTestPost(t, q, user.ID, "first", false, base)
	p2 := createTestPost(t, q, user.ID, "second", true, base.Add(time.Minute))
	createTestPost(t, q, other.ID, "foreign", true, base)

	// Touch p1 so it becomes the most recently updated.
	if _, err := q.UpdatePost(ctx, UpdatePostParams{
		SetTitle:  true,
		Title:     "First (edited)",
		UpdatedAt: base.Add(time.Hour),
		ID:        p1.ID,
		UserID:    user.ID,
	}); err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}

	posts, err := q.ListPostsByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListPostsByUser: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("len(posts) = %d, want 2", len(posts))
	}
	if posts[0].ID != p1.ID || posts[1].ID != p2.ID {
		t.Errorf("order = [%d %d], want [%d %d]", posts[0].ID, posts[1].ID, p1.ID, p2.ID)
	}
}

func TestUpdatePost_PartialAndScoped(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	owner := createTestUser(t, q, "owner@example.com")
	stranger := createTestUser(t, q, "stranger@example.com")
	now := time.Now().UTC()
	post := createTestPost(t, q, owner.ID, "partial", false, now)

	updated, err := q.UpdatePost(ctx, UpdatePostParams{
		SetPublished: true,
		Published:    true,
		SetImageUrl:  true,
		ImageUrl:     sql.NullString{String: "/uploads/a.png", Valid: true},
		UpdatedAt:    now.Add(time.Second),
		ID:           post.ID,
		UserID:       owner.ID,
	})
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if !updated.Published {
		t.Error("Published = false, want true")
	}
	if updated.Title != post.Title || updated.Content != post.Content || updated.Tags != post.Tags {
		t.Error("unset fields should keep their values")
	}
	if updated.ImageUrl.String != "/uploads/a.png" {
		t.Errorf("ImageUrl = %q, want %q", updated.ImageUrl.String, "/uploads/a.png")
	}
	if updated.Slug != post.Slug {
		t.Errorf("Slug = %q, want %q", updated.Slug, post.Slug)
	}

	// Clearing an optional field.
	cleared, err := q.UpdatePost(ctx, UpdatePostParams{
		SetImageUrl: true,
		UpdatedAt:   now.Add(2 * time.Second),
		ID:          post.ID,
		UserID:      owner.ID,
	})
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if cleared.ImageUrl.Valid {
		t.Errorf("ImageUrl = %v, want NULL", cleared.ImageUrl)
	}

	_, err = q.UpdatePost(ctx, UpdatePostParams{
		SetTitle:  true,
		Title:     "hijack",
		UpdatedAt: now,
		ID:        post.ID,
		UserID:    stranger.ID,
	})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("non-owner update err = %v, want sql.ErrNoRows", err)
	}
}

func TestDeletePost_CascadesComments(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	owner := createTestUser(t, q, "owner@example.com")
	stranger := createTestUser(t, q, "stranger@example.com")
	post := createTestPost(t, q, owner.ID, "doomed", true, time.Now().UTC())

	if _, err := q.CreateComment(ctx, CreateCommentParams{
		UserID:    stranger.ID,
		Content:   "nice",
		CreatedAt: time.Now().UTC(),
		PostID:    post.ID,
	}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if _, err := q.DeletePost(ctx, DeletePostParams{ID: post.ID, UserID: stranger.ID}); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("non-owner delete err = %v, want sql.ErrNoRows", err)
	}

	slug, err := q.DeletePost(ctx, DeletePostParams{ID: post.ID, UserID: owner.ID})
	if err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if slug != "doomed" {
		t.Errorf("slug = %q, want %q", slug, "doomed")
	}

	comments, err := q.ListCommentsByPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListCommentsByPost: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("len(comments) = %d, want 0 after cascade", len(comments))
	}
}

func TestListPublishedPosts(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	user := createTestUser(t, q, "a@example.com")
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	older := createTestPost(t, q, user.ID, "older", true, base)
	createTestPost(t, q, user.ID, "draft", false, base.Add(time.Hour))
	newer := createTestPost(t, q, user.ID, "newer", true, base.Add(2*time.Hour))
	tie := createTestPost(t, q, user.ID, "tie", true, base.Add(2*time.Hour))

	posts, err := q.ListPublishedPosts(ctx)
	if err != nil {
		t.Fatalf("ListPublishedPosts: %v", err)
	}
	want := []int64{tie.ID, newer.ID, older.ID}
	if len(posts) != len(want) {
		t.Fatalf("len(posts) = %d, want %d", len(posts), len(want))
	}
	for i, id := range want {
		if posts[i].ID != id {
			t.Errorf("posts[%d].ID = %d, want %d", i, posts[i].ID, id)
		}
	}

	if _, err := q.GetPublishedPostBySlug(ctx, "draft"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("draft by slug err = %v, want sql.ErrNoRows", err)
	}
	got, err := q.GetPublishedPostBySlug(ctx, "newer")
	if err != nil {
		t.Fatalf("GetPublishedPostBySlug: %v", err)
	}
	if got.ID != newer.ID {
		t.Errorf("ID = %d, want %d", got.ID, newer.ID)
	}
}

func TestCreateComment_MissingPost(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	user := createTestUser(t, q, "a@example.com")

	_, err := q.CreateComment(context.Background(), CreateCommentParams{
		UserID:    user.ID,
		Content:   "hello",
		CreatedAt: time.Now().UTC(),
		PostID:    9999,
	})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestComments_ScopedByAuthor(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	author := createTestUser(t, q, "author@example.com")
	other := createTestUser(t, q, "other@example.com")
	post := createTestPost(t, q, author.ID, "p", false, time.Now().UTC())

	base := time.Date(2025, 5, 5, 5, 0, 0, 0, time.UTC)
	first, err := q.CreateComment(ctx, CreateCommentParams{UserID: author.ID, Content: "first", CreatedAt: base, PostID: post.ID})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	second, err := q.CreateComment(ctx, CreateCommentParams{UserID: other.ID, Content: "second", CreatedAt: base.Add(time.Minute), PostID: post.ID})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	list, err := q.ListCommentsByPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListCommentsByPost: %v", err)
	}
	if len(list) != 2 || list[0].ID != second || list[1].ID != first {
		t.Fatalf("unexpected comment order: %+v", list)
	}
	if list[0].Name != "Test User" {
		t.Errorf("Name = %q, want author name", list[0].Name)
	}

	if _, err := q.UpdateComment(ctx, UpdateCommentParams{Content: "x", ID: first, UserID: other.ID}); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("foreign update err = %v, want sql.ErrNoRows", err)
	}
	if _, err := q.UpdateComment(ctx, UpdateCommentParams{Content: "edited", ID: first, UserID: author.ID}); err != nil {
		t.Fatalf("UpdateComment: %v", err)
	}
	got, err := q.GetCommentWithAuthor(ctx, first)
	if err != nil {
		t.Fatalf("GetCommentWithAuthor: %v", err)
	}
	if got.Content != "edited" {
		t.Errorf("Content = %q, want %q", got.Content, "edited")
	}

	if _, err := q.DeleteComment(ctx, DeleteCommentParams{ID: second, UserID: author.ID}); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("foreign delete err = %v, want sql.ErrNoRows", err)
	}
	postID, err := q.DeleteComment(ctx, DeleteCommentParams{ID: second, UserID: other.ID})
	if err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if postID != post.ID {
		t.Errorf("postID = %d, want %d", postID, post.ID)
	}
}

func TestEvents_CreateListPrune(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	for i, at := range []time.Time{now.Add(-48 * time.Hour), now.Add(-time.Hour), now} {
		if _, err := q.CreateEvent(ctx, CreateEventParams{
			Level:     "warning",
			Category:  "system",
			Message:   "event",
			Metadata:  "{}",
			CreatedAt: at,
		}); err != nil {
			t.Fatalf("CreateEvent %d: %v", i, err)
		}
	}

	events, err := q.ListEvents(ctx, ListEventsParams{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}

	n, err := q.DeleteEventsBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteEventsBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}

	count, err := q.CountEvents(ctx)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 2 {
		t.Errorf("CountEvents = %d, want 2", count)
	}
}

func TestTags(t *testing.T) {
	raw, err := EncodeTags(nil)
	if err != nil {
		t.Fatalf("EncodeTags: %v", err)
	}
	if raw != "[]" {
		t.Errorf("EncodeTags(nil) = %q, want %q", raw, "[]")
	}

	raw, err = EncodeTags([]string{"go", "sql"})
	if err != nil {
		t.Fatalf("EncodeTags: %v", err)
	}
	tags, err := DecodeTags(raw)
	if err != nil {
		t.Fatalf("DecodeTags: %v", err)
	}
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "sql" {
		t.Errorf("DecodeTags = %v, want [go sql]", tags)
	}

	if tags, _ := DecodeTags(""); tags == nil || len(tags) != 0 {
		t.Errorf("DecodeTags(\"\") = %v, want empty slice", tags)
	}
	if _, err := DecodeTags("{not json"); err == nil {
		t.Error("DecodeTags should fail on malformed input")
	}
}

func TestUniqueViolationColumn(t *testing.T) {
	tests := []struct {
		err    error
		column string
	}{
		{nil, ""},
		{errors.New("boom"), ""},
		{errors.New("constraint failed: UNIQUE constraint failed: posts.slug (2067)"), ColumnPostSlug},
		{errors.New("UNIQUE constraint failed: users.email"), ColumnUserEmail},
		{errors.New("NOT NULL constraint failed: posts.title"), ""},
	}

	for _, tt := range tests {
		if got := UniqueViolationColumn(tt.err); got != tt.column {
			t.Errorf("UniqueViolationColumn(%v) = %q, want %q", tt.err, got, tt.column)
		}
	}
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// Idempotent.
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	q := New(db)
	if _, err := q.GetUserByEmail(ctx, DemoAuthorEmail); err != nil {
		t.Errorf("demo author missing: %v", err)
	}
	if _, err := q.GetPublishedPostBySlug(ctx, DemoPostSlug); err != nil {
		t.Errorf("demo post missing: %v", err)
	}
}
