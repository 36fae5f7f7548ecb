package workflow

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
)

// SubmitClaim creates a pending claim against a post and notifies the post
// owner. Claiming your own post is rejected.
func SubmitClaim(ctx context.Context, db *sql.DB, notifier Notifier, claimantID, postID, proofDescription string) (*model.Claim, error) {
	claimant, err := store.GetUser(ctx, db, claimantID)
	if err != nil {
		return nil, err
	}
	if claimant == nil {
		return nil, fmt.Errorf("claimant: %w", ErrNotFound)
	}

	post, err := store.GetPost(ctx, db, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("post: %w", ErrNotFound)
	}
	if post.UserID == claimantID {
		return nil, fmt.Errorf("cannot claim your own post: %w", ErrConflict)
	}

	claim, err := store.CreateClaim(ctx, db, model.Claim{
		ClaimantID:       claimantID,
		PostID:           post.ID,
		PostType:         post.Type,
		ProofDescription: proofDescription,
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, notifier, model.Notification{
		UserID:      post.UserID,
		Type:        model.NotifyClaim,
		Title:       "New Claim on Your Post",
		Message:     fmt.Sprintf("%s has submitted a claim for your %s item", claimant.Name, post.Type),
		RelatedPost: &post.ID,
		RelatedUser: &claimant.ID,
	})

	return claim, nil
}

// ReviewClaim transitions a claim to a new status. Only the owner of the
// claimed post may review. Approval moves the post from active to claimed;
// completion moves it to resolved and credits the reviewer as the helper.
// State changes are committed before the claimant is notified.
func ReviewClaim(ctx context.Context, db *sql.DB, notifier Notifier, reviewerID, claimID, newStatus, reviewNote string) (*model.Claim, error) {
	claim, err := store.GetClaim(ctx, db, claimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, fmt.Errorf("claim: %w", ErrNotFound)
	}

	post, err := store.GetPost(ctx, db, claim.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("post: %w", ErrNotFound)
	}
	if post.UserID != reviewerID {
		return nil, fmt.Errorf("only the post owner may review claims: %w", ErrUnauthorized)
	}

	if !model.ClaimTransitionAllowed(claim.Status, newStatus) {
		return nil, fmt.Errorf("claim is %s, cannot become %s: %w", claim.Status, newStatus, ErrInvalidTransition)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE claims SET status = ?, reviewed_by = ?, review_note = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		newStatus, reviewerID, reviewNote, claim.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating claim: %w", err)
	}

	switch newStatus {
	case model.ClaimStatusApproved:
		// Idempotent on the post side: an already-claimed post stays claimed.
		_, err = tx.ExecContext(ctx,
			`UPDATE posts SET status = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ? AND status = ?`,
			model.PostStatusClaimed, post.ID, model.PostStatusActive,
		)
		if err != nil {
			return nil, fmt.Errorf("claiming post: %w", err)
		}
	case model.ClaimStatusCompleted:
		_, err = tx.ExecContext(ctx,
			`UPDATE posts SET status = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ? AND status = ?`,
			model.PostStatusResolved, post.ID, model.PostStatusClaimed,
		)
		if err != nil {
			return nil, fmt.Errorf("resolving post: %w", err)
		}
		// The reviewing post owner is the helper who returned the item.
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET items_returned = items_returned + 1 WHERE id = ?`,
			reviewerID,
		)
		if err != nil {
			return nil, fmt.Errorf("crediting reviewer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing review: %w", err)
	}

	notify(ctx, notifier, model.Notification{
		UserID:      claim.ClaimantID,
		Type:        model.NotifyClaim,
		Title:       "Claim " + capitalize(newStatus),
		Message:     fmt.Sprintf("Your claim has been %s", newStatus),
		RelatedPost: &claim.PostID,
	})

	// Watchers learn when a bookmarked post changes state.
	if newStatus == model.ClaimStatusApproved || newStatus == model.ClaimStatusCompleted {
		notifyBookmarkers(ctx, db, notifier, post, newStatus, claim.ClaimantID)
	}

	return store.GetClaim(ctx, db, claim.ID)
}

func notifyBookmarkers(ctx context.Context, db *sql.DB, notifier Notifier, post *model.Post, claimStatus, claimantID string) {
	watchers, err := store.ListBookmarkerIDs(ctx, db, post.ID)
	if err != nil {
		slog.Error("listing bookmarkers", "post", post.ID, "error", err)
		return
	}

	postStatus := model.PostStatusClaimed
	if claimStatus == model.ClaimStatusCompleted {
		postStatus = model.PostStatusResolved
	}

	for _, watcher := range watchers {
		if watcher == post.UserID || watcher == claimantID {
			continue
		}
		postID := post.ID
		notify(ctx, notifier, model.Notification{
			UserID:      watcher,
			Type:        model.NotifyBookmarkUpdate,
			Title:       "Bookmarked Post Updated",
			Message:     fmt.Sprintf("A post you bookmarked (%q) is now %s", post.Item, postStatus),
			RelatedPost: &postID,
		})
	}
}

// notify emits a notification and logs failures instead of propagating them.
func notify(ctx context.Context, notifier Notifier, n model.Notification) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, n); err != nil {
		slog.Error("failed to emit notification", "user", n.UserID, "type", n.Type, "error", err)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
