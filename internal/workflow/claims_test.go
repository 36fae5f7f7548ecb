package workflow

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/campusfind/campusfind/internal/db"
	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
)

// recordingNotifier captures notifications instead of persisting them.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []model.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) byType(notifType string) []model.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Notification
	for _, n := range r.sent {
		if n.Type == notifType {
			out = append(out, n)
		}
	}
	return out
}

func createTestUser(t *testing.T, database *sql.DB, name, email string) *model.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), database, name, email, "hash", "", "", model.RoleUser)
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user
}

func createTestPost(t *testing.T, database *sql.DB, userID, postType, item string) *model.Post {
	t.Helper()
	post, err := store.CreatePost(context.Background(), database, model.Post{
		Type:        postType,
		Item:        item,
		Description: "test description",
		Category:    "Electronics",
		Location:    "Library",
		Date:        "2026-08-20",
		Contact:     "test@example.com",
		UserID:      userID,
	})
	if err != nil {
		t.Fatalf("creating test post: %v", err)
	}
	return post
}

func TestSubmitClaim(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	notifier := &recordingNotifier{}

	owner := createTestUser(t, database, "Owner", "owner@example.com")
	claimant := createTestUser(t, database, "Claimant", "claimant@example.com")
	post := createTestPost(t, database, owner.ID, model.PostTypeFound, "Blue backpack")

	claim, err := SubmitClaim(ctx, database, notifier, claimant.ID, post.ID, "It has my initials inside")
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}
	if claim.Status != model.ClaimStatusPending {
		t.Errorf("expected pending, got %s", claim.Status)
	}
	if claim.PostID != post.ID || claim.ClaimantID != claimant.ID {
		t.Error("claim not linked to post and claimant")
	}

	// The post stays active until a claim is approved.
	updated, _ := store.GetPost(ctx, database, post.ID)
	if updated.Status != model.PostStatusActive {
		t.Errorf("post should stay active while claim is pending, got %s", updated.Status)
	}

	// Exactly one claim notification, addressed to the post owner.
	claimNotifs := notifier.byType(model.NotifyClaim)
	if len(claimNotifs) != 1 {
		t.Fatalf("expected 1 claim notification, got %d", len(claimNotifs))
	}
	if claimNotifs[0].UserID != owner.ID {
		t.Errorf("claim notification should go to the post owner, got %s", claimNotifs[0].UserID)
	}
}

func TestSubmitClaimOwnPost(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, database, "Owner", "owner@example.com")
	post := createTestPost(t, database, owner.ID, model.PostTypeFound, "Keys")

	_, err := SubmitClaim(ctx, database, &recordingNotifier{}, owner.ID, post.ID, "these are mine")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for claiming own post, got %v", err)
	}
}

func TestSubmitClaimMissingPost(t *testing.T) {
	database := db.NewTestDB(t)
	claimant := createTestUser(t, database, "Claimant", "claimant@example.com")

	_, err := SubmitClaim(context.Background(), database, &recordingNotifier{}, claimant.ID, "no-such-post", "proof")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReviewClaimLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	notifier := &recordingNotifier{}

	owner := createTestUser(t, database, "Owner", "owner@example.com")
	claimant := createTestUser(t, database, "Claimant", "claimant@example.com")
	post := createTestPost(t, database, owner.ID, model.PostTypeFound, "Calculator")

	claim, err := SubmitClaim(ctx, database, notifier, claimant.ID, post.ID, "serial number matches")
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}

	// Approve: claim approved, post moves to claimed.
	claim, err = ReviewClaim(ctx, database, notifier, owner.ID, claim.ID, model.ClaimStatusApproved, "proof checks out")
	if err != nil {
		t.Fatalf("approving claim: %v", err)
	}
	if claim.Status != model.ClaimStatusApproved {
		t.Errorf("expected approved, got %s", claim.Status)
	}
	if claim.ReviewedBy == nil || *claim.ReviewedBy != owner.ID {
		t.Error("expected reviewed_by to record the owner")
	}
	updated, _ := store.GetPost(ctx, database, post.ID)
	if updated.Status != model.PostStatusClaimed {
		t.Errorf("expected post claimed after approval, got %s", updated.Status)
	}

	// Complete: claim completed, post resolved, owner credited as helper.
	claim, err = ReviewClaim(ctx, database, notifier, owner.ID, claim.ID, model.ClaimStatusCompleted, "handed over")
	if err != nil {
		t.Fatalf("completing claim: %v", err)
	}
	if claim.Status != model.ClaimStatusCompleted {
		t.Errorf("expected completed, got %s", claim.Status)
	}
	updated, _ = store.GetPost(ctx, database, post.ID)
	if updated.Status != model.PostStatusResolved {
		t.Errorf("expected post resolved after completion, got %s", updated.Status)
	}
	reviewer, _ := store.GetUser(ctx, database, owner.ID)
	if reviewer.ItemsReturned != 1 {
		t.Errorf("expected items_returned 1, got %d", reviewer.ItemsReturned)
	}

	// Submission, approval and completion each notify once.
	if got := len(notifier.byType(model.NotifyClaim)); got != 3 {
		t.Errorf("expected 3 claim notifications, got %d", got)
	}
}

func TestReviewClaimRejectIsTerminal(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	notifier := &recordingNotifier{}

	owner := createTestUser(t, database, "Owner", "owner@example.com")
	claimant := createTestUser(t, database, "Claimant", "claimant@example.com")
	post := createTestPost(t, database, owner.ID, model.PostTypeFound, "Umbrella")

	claim, err := SubmitClaim(ctx, database, notifier, claimant.ID, post.ID, "black with a broken rib")
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}

	claim, err = ReviewClaim(ctx, database, notifier, owner.ID, claim.ID, model.ClaimStatusRejected, "wrong color")
	if err != nil {
		t.Fatalf("rejecting claim: %v", err)
	}
	if claim.Status != model.ClaimStatusRejected {
		t.Errorf("expected rejected, got %s", claim.Status)
	}

	// Rejection leaves the post active and accepts no further transitions.
	updated, _ := store.GetPost(ctx, database, post.ID)
	if updated.Status != model.PostStatusActive {
		t.Errorf("post should stay active after rejection, got %s", updated.Status)
	}
	for _, next := range []string{model.ClaimStatusApproved, model.ClaimStatusCompleted, model.ClaimStatusPending} {
		if _, err := ReviewClaim(ctx, database, notifier, owner.ID, claim.ID, next, ""); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("rejected -> %s: expected ErrInvalidTransition, got %v", next, err)
		}
	}
}

func TestReviewClaimSkipsApproval(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, database, "Owner", "owner@example.com")
	claimant := createTestUser(t, database, "Claimant", "claimant@example.com")
	post := createTestPost(t, database, owner.ID, model.PostTypeFound, "Charger")

	claim, err := SubmitClaim(ctx, database, &recordingNotifier{}, claimant.ID, post.ID, "65W, white")
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}

	// pending -> completed is not a legal transition.
	_, err = ReviewClaim(ctx, database, &recordingNotifier{}, owner.ID, claim.ID, model.ClaimStatusCompleted, "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestReviewClaimNotifiesBookmarkers(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	notifier := &recordingNotifier{}

	owner := createTestUser(t, database, "Owner", "owner@example.com")
	claimant := createTestUser(t, database, "Claimant", "claimant@example.com")
	watcher := createTestUser(t, database, "Watcher", "watcher@example.com")
	post := createTestPost(t, database, owner.ID, model.PostTypeFound, "Gloves")

	if _, err := store.ToggleBookmark(ctx, database, watcher.ID, post.ID, post.Type); err != nil {
		t.Fatalf("ToggleBookmark: %v", err)
	}
	// The claimant's own bookmark must not produce a self-notification.
	if _, err := store.ToggleBookmark(ctx, database, claimant.ID, post.ID, post.Type); err != nil {
		t.Fatalf("ToggleBookmark: %v", err)
	}

	claim, err := SubmitClaim(ctx, database, notifier, claimant.ID, post.ID, "one thumb is torn")
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}
	if _, err := ReviewClaim(ctx, database, notifier, owner.ID, claim.ID, model.ClaimStatusApproved, ""); err != nil {
		t.Fatalf("ReviewClaim: %v", err)
	}

	updates := notifier.byType(model.NotifyBookmarkUpdate)
	if len(updates) != 1 {
		t.Fatalf("expected 1 bookmark update, got %d", len(updates))
	}
	if updates[0].UserID != watcher.ID {
		t.Errorf("bookmark update should go to the watcher, got %s", updates[0].UserID)
	}
}

func TestReviewClaimNotOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, database, "Owner", "owner@example.com")
	claimant := createTestUser(t, database, "Claimant", "claimant@example.com")
	stranger := createTestUser(t, database, "Stranger", "stranger@example.com")
	post := createTestPost(t, database, owner.ID, model.PostTypeFound, "Scarf")

	claim, err := SubmitClaim(ctx, database, &recordingNotifier{}, claimant.ID, post.ID, "red wool")
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}

	for _, reviewer := range []string{claimant.ID, stranger.ID} {
		if _, err := ReviewClaim(ctx, database, &recordingNotifier{}, reviewer, claim.ID, model.ClaimStatusApproved, ""); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("reviewer %s: expected ErrUnauthorized, got %v", reviewer, err)
		}
	}
}
