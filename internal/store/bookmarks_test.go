package store

import (
	"context"
	"testing"

	"github.com/campusfind/campusfind/internal/db"
	"github.com/campusfind/campusfind/internal/model"
)

func TestToggleBookmark(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner := testUser(t, database, "Owner", "owner@university.edu")
	reader := testUser(t, database, "Reader", "reader@university.edu")
	post := testPost(t, database, owner.ID, model.PostTypeFound, "Water bottle")

	bookmarked, err := ToggleBookmark(ctx, database, reader.ID, post.ID, post.Type)
	if err != nil {
		t.Fatalf("ToggleBookmark: %v", err)
	}
	if !bookmarked {
		t.Error("first toggle should bookmark")
	}
	got, _ := GetPost(ctx, database, post.ID)
	if got.BookmarkCount != 1 {
		t.Errorf("expected bookmark count 1, got %d", got.BookmarkCount)
	}

	bookmarked, err = ToggleBookmark(ctx, database, reader.ID, post.ID, post.Type)
	if err != nil {
		t.Fatalf("ToggleBookmark: %v", err)
	}
	if bookmarked {
		t.Error("second toggle should remove the bookmark")
	}
	got, _ = GetPost(ctx, database, post.ID)
	if got.BookmarkCount != 0 {
		t.Errorf("expected bookmark count 0, got %d", got.BookmarkCount)
	}
}

func TestListBookmarkedPosts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner := testUser(t, database, "Owner", "owner@university.edu")
	reader := testUser(t, database, "Reader", "reader@university.edu")
	lost := testPost(t, database, owner.ID, model.PostTypeLost, "Lost jacket")
	found := testPost(t, database, owner.ID, model.PostTypeFound, "Found jacket")

	ToggleBookmark(ctx, database, reader.ID, lost.ID, lost.Type)
	ToggleBookmark(ctx, database, reader.ID, found.ID, found.Type)

	lostMarks, err := ListBookmarkedPosts(ctx, database, reader.ID, model.PostTypeLost)
	if err != nil {
		t.Fatalf("ListBookmarkedPosts: %v", err)
	}
	if len(lostMarks) != 1 || lostMarks[0].ID != lost.ID {
		t.Errorf("expected only the lost post, got %d", len(lostMarks))
	}
}
