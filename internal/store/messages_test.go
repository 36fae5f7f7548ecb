package store

import (
	"context"
	"testing"

	"github.com/campusfind/campusfind/internal/db"
	"github.com/campusfind/campusfind/internal/model"
)

func TestGetOrCreateConversationIsOrderIndependent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	alice := testUser(t, database, "Alice", "alice@university.edu")
	bob := testUser(t, database, "Bob", "bob@university.edu")

	first, err := GetOrCreateConversation(ctx, database, alice.ID, bob.ID, nil, "")
	if err != nil {
		t.Fatalf("GetOrCreateConversation: %v", err)
	}

	// Same pair in reverse order resolves to the same conversation.
	second, err := GetOrCreateConversation(ctx, database, bob.ID, alice.ID, nil, "")
	if err != nil {
		t.Fatalf("GetOrCreateConversation reversed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected one conversation, got %s and %s", first.ID, second.ID)
	}
}

func TestConversationsPerPostAreSeparate(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	alice := testUser(t, database, "Alice", "alice@university.edu")
	bob := testUser(t, database, "Bob", "bob@university.edu")
	post := testPost(t, database, bob.ID, model.PostTypeFound, "Laptop sleeve")

	general, _ := GetOrCreateConversation(ctx, database, alice.ID, bob.ID, nil, "")
	about, err := GetOrCreateConversation(ctx, database, alice.ID, bob.ID, &post.ID, post.Type)
	if err != nil {
		t.Fatalf("GetOrCreateConversation with post: %v", err)
	}
	if general.ID == about.ID {
		t.Error("expected a distinct conversation per related post")
	}
}

func TestSendAndListMessages(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	alice := testUser(t, database, "Alice", "alice@university.edu")
	bob := testUser(t, database, "Bob", "bob@university.edu")
	conv, _ := GetOrCreateConversation(ctx, database, alice.ID, bob.ID, nil, "")

	if _, err := CreateMessage(ctx, database, conv.ID, alice.ID, bob.ID, "Is this your umbrella?"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if _, err := CreateMessage(ctx, database, conv.ID, bob.ID, alice.ID, "Yes! Where did you find it?"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	unread, _ := CountUnreadMessages(ctx, database, bob.ID)
	if unread != 1 {
		t.Errorf("expected 1 unread for bob, got %d", unread)
	}

	messages, err := ListMessages(ctx, database, conv.ID, bob.ID)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Content != "Is this your umbrella?" {
		t.Errorf("expected oldest first, got %q", messages[0].Content)
	}

	// Listing as the receiver marks their incoming messages read.
	unread, _ = CountUnreadMessages(ctx, database, bob.ID)
	if unread != 0 {
		t.Errorf("expected 0 unread after reading, got %d", unread)
	}

	conversations, _ := ListConversations(ctx, database, bob.ID)
	if len(conversations) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(conversations))
	}
}
