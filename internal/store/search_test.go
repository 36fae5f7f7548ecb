package store

import (
	"context"
	"testing"

	"github.com/campusfind/campusfind/internal/db"
	"github.com/campusfind/campusfind/internal/model"
)

func TestSearchPostsByQuery(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Poster", "poster@university.edu")
	testPost(t, database, user.ID, model.PostTypeLost, "Black leather wallet")
	testPost(t, database, user.ID, model.PostTypeFound, "Blue water bottle")

	results, err := SearchPosts(ctx, database, SearchFilter{Query: "wallet"})
	if err != nil {
		t.Fatalf("SearchPosts: %v", err)
	}
	if len(results) != 1 || results[0].Item != "Black leather wallet" {
		t.Errorf("expected the wallet post, got %d results", len(results))
	}
}

func TestSearchPostsMatchesDescription(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Poster", "poster@university.edu")
	post, _ := CreatePost(ctx, database, model.Post{
		Type:        model.PostTypeFound,
		Item:        "Backpack",
		Description: "contains a scientific calculator",
		Location:    "Lab 2",
		Date:        "2026-08-20",
		Contact:     "poster@university.edu",
		UserID:      user.ID,
	})

	results, _ := SearchPosts(ctx, database, SearchFilter{Query: "calculator"})
	if len(results) != 1 || results[0].ID != post.ID {
		t.Errorf("expected description match, got %d results", len(results))
	}
}

func TestSearchPostsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Poster", "poster@university.edu")
	testPost(t, database, user.ID, model.PostTypeLost, "Phone")  // Electronics, Student Center
	found := testPost(t, database, user.ID, model.PostTypeFound, "Charger")

	byType, _ := SearchPosts(ctx, database, SearchFilter{Type: model.PostTypeFound})
	if len(byType) != 1 || byType[0].ID != found.ID {
		t.Errorf("type filter: expected 1 found post, got %d", len(byType))
	}

	byCategory, _ := SearchPosts(ctx, database, SearchFilter{Category: "Electronics"})
	if len(byCategory) != 2 {
		t.Errorf("category filter: expected 2 posts, got %d", len(byCategory))
	}

	// "All" disables the category filter.
	all, _ := SearchPosts(ctx, database, SearchFilter{Category: "All"})
	if len(all) != 2 {
		t.Errorf("category All: expected 2 posts, got %d", len(all))
	}

	byLocation, _ := SearchPosts(ctx, database, SearchFilter{Location: "student"})
	if len(byLocation) != 2 {
		t.Errorf("location filter: expected 2 posts, got %d", len(byLocation))
	}

	none, _ := SearchPosts(ctx, database, SearchFilter{Location: "Dormitory"})
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestSearchPostsLimit(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Poster", "poster@university.edu")
	for i := 0; i < 4; i++ {
		testPost(t, database, user.ID, model.PostTypeLost, "Pen")
	}

	results, _ := SearchPosts(ctx, database, SearchFilter{Query: "Pen", Limit: 2})
	if len(results) != 2 {
		t.Errorf("expected 2 results with limit, got %d", len(results))
	}
}
