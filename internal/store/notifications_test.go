package store

import (
	"context"
	"testing"

	"github.com/campusfind/campusfind/internal/db"
	"github.com/campusfind/campusfind/internal/model"
)

func TestNotificationLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Reader", "reader@university.edu")

	for i := 0; i < 3; i++ {
		_, err := CreateNotification(ctx, database, model.Notification{
			UserID:  user.ID,
			Type:    model.NotifyMatch,
			Title:   "Potential Match Found",
			Message: "A found item looks like yours",
		})
		if err != nil {
			t.Fatalf("CreateNotification: %v", err)
		}
	}

	unread, _ := CountUnreadNotifications(ctx, database, user.ID)
	if unread != 3 {
		t.Errorf("expected 3 unread, got %d", unread)
	}

	list, err := ListNotifications(ctx, database, user.ID, 10)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("expected 3 notifications, got %d", len(list))
	}

	if err := MarkNotificationsRead(ctx, database, user.ID); err != nil {
		t.Fatalf("MarkNotificationsRead: %v", err)
	}
	unread, _ = CountUnreadNotifications(ctx, database, user.ID)
	if unread != 0 {
		t.Errorf("expected 0 unread after mark, got %d", unread)
	}
}

func TestListNotificationsLimit(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "Reader", "reader@university.edu")
	for i := 0; i < 5; i++ {
		CreateNotification(ctx, database, model.Notification{
			UserID: user.ID, Type: model.NotifyMessage, Title: "New Message", Message: "hi",
		})
	}

	list, _ := ListNotifications(ctx, database, user.ID, 2)
	if len(list) != 2 {
		t.Errorf("expected limit of 2, got %d", len(list))
	}
}

func TestHasNotification(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner := testUser(t, database, "Owner", "owner@university.edu")
	post := testPost(t, database, owner.ID, model.PostTypeLost, "Glasses")

	has, _ := HasNotification(ctx, database, owner.ID, model.NotifyExpiryWarning, post.ID)
	if has {
		t.Error("expected no warning yet")
	}

	CreateNotification(ctx, database, model.Notification{
		UserID:      owner.ID,
		Type:        model.NotifyExpiryWarning,
		Title:       "Post Expiring Soon",
		Message:     "soon",
		RelatedPost: &post.ID,
	})

	has, err := HasNotification(ctx, database, owner.ID, model.NotifyExpiryWarning, post.ID)
	if err != nil {
		t.Fatalf("HasNotification: %v", err)
	}
	if !has {
		t.Error("expected warning to be recorded")
	}
}
