package workflow

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
)

// RecordRating stores a new rating and recomputes the recipient's
// aggregates. Duplicate ratings for the same (from, to, post) triple fail
// with ErrConflict; the unique index is the authority, not a pre-check, so
// concurrent submissions cannot both land. The average is recomputed from
// the complete rating set each time rather than kept as a running value.
func RecordRating(ctx context.Context, db *sql.DB, notifier Notifier, fromUserID, toUserID string, rating int, comment string, relatedPost *string, postType string) (*model.Rating, error) {
	if rating < model.RatingMin || rating > model.RatingMax {
		return nil, fmt.Errorf("rating must be between %d and %d", model.RatingMin, model.RatingMax)
	}

	fromUser, err := store.GetUser(ctx, db, fromUserID)
	if err != nil {
		return nil, err
	}
	if fromUser == nil {
		return nil, fmt.Errorf("rating user: %w", ErrNotFound)
	}

	toUser, err := store.GetUser(ctx, db, toUserID)
	if err != nil {
		return nil, err
	}
	if toUser == nil {
		return nil, fmt.Errorf("rated user: %w", ErrNotFound)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO ratings (id, from_user_id, to_user_id, rating, comment, related_post, post_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, fromUserID, toUserID, rating, comment, relatedPost, postType,
	)
	if store.IsUniqueViolation(err) {
		return nil, fmt.Errorf("already rated this user for this post: %w", ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("creating rating: %w", err)
	}

	var avg float64
	var total int
	err = tx.QueryRowContext(ctx,
		`SELECT AVG(rating), COUNT(*) FROM ratings WHERE to_user_id = ?`, toUserID,
	).Scan(&avg, &total)
	if err != nil {
		return nil, fmt.Errorf("recomputing rating average: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET average_rating = ?, total_ratings = ? WHERE id = ?`,
		math.Round(avg*10)/10, total, toUserID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating user aggregates: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing rating: %w", err)
	}

	notify(ctx, notifier, model.Notification{
		UserID:      toUserID,
		Type:        model.NotifyRating,
		Title:       "New Rating",
		Message:     fmt.Sprintf("%s gave you a %d-star rating!", fromUser.Name, rating),
		RelatedUser: &fromUser.ID,
	})

	return store.GetRating(ctx, db, id)
}

// SendThanks increments the recipient's thanks counter. Deliberately not
// idempotent: a user may be thanked any number of times.
func SendThanks(ctx context.Context, db *sql.DB, notifier Notifier, fromUserID, toUserID string) error {
	fromUser, err := store.GetUser(ctx, db, fromUserID)
	if err != nil {
		return err
	}
	if fromUser == nil {
		return fmt.Errorf("thanking user: %w", ErrNotFound)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE users SET thanks_received = thanks_received + 1 WHERE id = ? AND deleted_at IS NULL`,
		toUserID,
	)
	if err != nil {
		return fmt.Errorf("incrementing thanks: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("thanked user: %w", ErrNotFound)
	}

	notify(ctx, notifier, model.Notification{
		UserID:      toUserID,
		Type:        model.NotifyRating,
		Title:       "Someone thanked you! 🎉",
		Message:     fmt.Sprintf("%s thanked you for your help!", fromUser.Name),
		RelatedUser: &fromUser.ID,
	})

	return nil
}
