package store

import (
	"context"
	"testing"

	"github.com/campusfind/campusfind/internal/db"
	"github.com/campusfind/campusfind/internal/model"
)

func TestGetStats(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Poster", "poster@university.edu")
	testPost(t, database, user.ID, model.PostTypeLost, "Phone")
	testPost(t, database, user.ID, model.PostTypeLost, "Keys")
	found := testPost(t, database, user.ID, model.PostTypeFound, "Wallet")
	testPost(t, database, user.ID, model.PostTypeFound, "Notebook")
	SetPostStatus(ctx, database, found.ID, model.PostStatusResolved)

	stats, err := GetStats(ctx, database)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}

	if stats.TotalLost != 2 || stats.TotalFound != 2 {
		t.Errorf("expected 2 lost and 2 found, got %d and %d", stats.TotalLost, stats.TotalFound)
	}
	if stats.TotalResolved != 1 {
		t.Errorf("expected 1 resolved, got %d", stats.TotalResolved)
	}

	// 1 resolved of 4 posts = 25%.
	if stats.SuccessRate != 25.0 {
		t.Errorf("expected success rate 25.0, got %v", stats.SuccessRate)
	}
	if stats.TotalUsers != 1 {
		t.Errorf("expected 1 user, got %d", stats.TotalUsers)
	}
	if stats.RecentLost != 2 || stats.RecentFound != 2 {
		t.Errorf("all posts are recent: got %d lost, %d found", stats.RecentLost, stats.RecentFound)
	}
	if len(stats.LostByCategory) == 0 {
		t.Error("expected lost-by-category breakdown")
	}
}

func TestGetStatsEmpty(t *testing.T) {
	database := db.NewTestDB(t)

	stats, err := GetStats(context.Background(), database)
	if err != nil {
		t.Fatalf("GetStats on empty database: %v", err)
	}
	if stats.SuccessRate != 0 {
		t.Errorf("expected success rate 0 with no posts, got %v", stats.SuccessRate)
	}
}
