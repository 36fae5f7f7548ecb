package expiry

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/campusfind/campusfind/internal/db"
	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
)

func seedPost(t *testing.T, database *sql.DB, userID, item string, expiresAt time.Time) *model.Post {
	t.Helper()
	ctx := context.Background()
	post, err := store.CreatePost(ctx, database, model.Post{
		Type:        model.PostTypeLost,
		Item:        item,
		Description: "desc",
		Location:    "Campus",
		Date:        "2026-08-01",
		Contact:     "owner@example.com",
		UserID:      userID,
	})
	if err != nil {
		t.Fatalf("creating post: %v", err)
	}
	if _, err := database.ExecContext(ctx, `UPDATE posts SET expires_at = ? WHERE id = ?`, expiresAt.UTC(), post.ID); err != nil {
		t.Fatalf("setting expiry: %v", err)
	}
	return post
}

func TestSweepOnce(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	owner, err := store.CreateUser(ctx, database, "Owner", "owner@example.com", "hash", "", "", model.RoleUser)
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	overdue := seedPost(t, database, owner.ID, "Old post", now.Add(-time.Hour))
	expiring := seedPost(t, database, owner.ID, "Expiring post", now.Add(3*24*time.Hour))
	fresh := seedPost(t, database, owner.ID, "Fresh post", now.Add(20*24*time.Hour))

	sweeper := &Sweeper{DB: database, Notifier: workflowNotifier(database)}
	if err := sweeper.SweepOnce(ctx, now); err != nil {
		t.Fatalf("SweepOnce: %v", err)
	}

	// Overdue post flipped to expired, the others untouched.
	got, _ := store.GetPost(ctx, database, overdue.ID)
	if got.Status != model.PostStatusExpired {
		t.Errorf("expected overdue post expired, got %s", got.Status)
	}
	for _, p := range []*model.Post{expiring, fresh} {
		got, _ := store.GetPost(ctx, database, p.ID)
		if got.Status != model.PostStatusActive {
			t.Errorf("post %q should stay active, got %s", p.Item, got.Status)
		}
	}

	// Only the post inside the warning window triggers a warning.
	warned, err := store.HasNotification(ctx, database, owner.ID, model.NotifyExpiryWarning, expiring.ID)
	if err != nil {
		t.Fatalf("HasNotification: %v", err)
	}
	if !warned {
		t.Error("expected a warning for the expiring post")
	}
	warned, _ = store.HasNotification(ctx, database, owner.ID, model.NotifyExpiryWarning, fresh.ID)
	if warned {
		t.Error("fresh post should not be warned")
	}
}

func TestSweepOnceWarnsOnlyOnce(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	owner, err := store.CreateUser(ctx, database, "Owner", "owner@example.com", "hash", "", "", model.RoleUser)
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	seedPost(t, database, owner.ID, "Expiring post", now.Add(2*24*time.Hour))

	sweeper := &Sweeper{DB: database, Notifier: workflowNotifier(database)}
	for i := 0; i < 3; i++ {
		if err := sweeper.SweepOnce(ctx, now); err != nil {
			t.Fatalf("SweepOnce %d: %v", i, err)
		}
	}

	notifs, err := store.ListNotifications(ctx, database, owner.ID, 50)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	warnings := 0
	for _, n := range notifs {
		if n.Type == model.NotifyExpiryWarning {
			warnings++
		}
	}
	if warnings != 1 {
		t.Errorf("expected exactly 1 warning after repeated sweeps, got %d", warnings)
	}
}

// workflowNotifier persists notifications directly, standing in for the
// shared store-backed notifier used by the server.
func workflowNotifier(database *sql.DB) Notifier {
	return notifierFunc(func(ctx context.Context, n model.Notification) error {
		_, err := store.CreateNotification(ctx, database, n)
		return err
	})
}

type notifierFunc func(ctx context.Context, n model.Notification) error

func (f notifierFunc) Notify(ctx context.Context, n model.Notification) error {
	return f(ctx, n)
}
