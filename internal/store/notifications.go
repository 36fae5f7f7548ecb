package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusfind/campusfind/internal/model"
)

// CreateNotification records a notification for a user.
func CreateNotification(ctx context.Context, db *sql.DB, n model.Notification) (*model.Notification, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, type, title, message, related_post, related_user)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, n.UserID, n.Type, n.Title, n.Message, n.RelatedPost, n.RelatedUser,
	)
	if err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}
	return GetNotification(ctx, db, id)
}

// GetNotification returns a notification by ID.
func GetNotification(ctx context.Context, db *sql.DB, id string) (*model.Notification, error) {
	n := &model.Notification{}
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, type, title, message, related_post, related_user, read, created_at
		 FROM notifications WHERE id = ?`, id,
	).Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.RelatedPost, &n.RelatedUser,
		&n.Read, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting notification: %w", err)
	}
	return n, nil
}

// ListNotifications returns a user's notifications, newest first.
func ListNotifications(ctx context.Context, db *sql.DB, userID string, limit int) ([]model.Notification, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, type, title, message, related_post, related_user, read, created_at
		 FROM notifications WHERE user_id = ?
		 ORDER BY created_at DESC LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.RelatedPost,
			&n.RelatedUser, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationsRead marks all of a user's notifications as read.
func MarkNotificationsRead(ctx context.Context, db *sql.DB, userID string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE notifications SET read = 1 WHERE user_id = ? AND read = 0`, userID,
	)
	if err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}
	return nil
}

// CountUnreadNotifications returns the number of unread notifications for a user.
func CountUnreadNotifications(ctx context.Context, db *sql.DB, userID string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read = 0`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}

// HasNotification reports whether a notification of the given type already
// exists for the user and post. Used to deduplicate expiry warnings.
func HasNotification(ctx context.Context, db *sql.DB, userID, notifType, relatedPost string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND type = ? AND related_post = ?`,
		userID, notifType, relatedPost,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking notification: %w", err)
	}
	return count > 0, nil
}
