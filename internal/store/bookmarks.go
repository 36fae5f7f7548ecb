package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusfind/campusfind/internal/model"
)

// ToggleBookmark adds or removes a bookmark and keeps the post's bookmark
// counter in sync, all in one transaction. Returns whether the post is
// bookmarked after the call.
func ToggleBookmark(ctx context.Context, db *sql.DB, userID, postID, postType string) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM bookmarks WHERE user_id = ? AND post_id = ?`, userID, postID,
	).Scan(&existingID)

	var bookmarked bool
	switch {
	case err == sql.ErrNoRows:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO bookmarks (id, user_id, post_id, post_type) VALUES (?, ?, ?, ?)`,
			uuid.NewString(), userID, postID, postType,
		)
		if err != nil {
			return false, fmt.Errorf("adding bookmark: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE posts SET bookmark_count = bookmark_count + 1 WHERE id = ?`, postID,
		)
		if err != nil {
			return false, fmt.Errorf("incrementing bookmark count: %w", err)
		}
		bookmarked = true
	case err != nil:
		return false, fmt.Errorf("checking bookmark: %w", err)
	default:
		_, err = tx.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, existingID)
		if err != nil {
			return false, fmt.Errorf("removing bookmark: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE posts SET bookmark_count = MAX(bookmark_count - 1, 0) WHERE id = ?`, postID,
		)
		if err != nil {
			return false, fmt.Errorf("decrementing bookmark count: %w", err)
		}
		bookmarked = false
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing bookmark toggle: %w", err)
	}
	return bookmarked, nil
}

// ListBookmarkedPosts returns a user's bookmarked posts of the given type.
func ListBookmarkedPosts(ctx context.Context, db *sql.DB, userID, postType string) ([]model.Post, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+prefixedPostColumns("p")+`
		 FROM posts p
		 JOIN bookmarks b ON b.post_id = p.id
		 WHERE b.user_id = ? AND b.post_type = ?
		 ORDER BY b.created_at DESC`, userID, postType,
	)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarked posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ListBookmarkerIDs returns the users who bookmarked a post, for status
// change notifications.
func ListBookmarkerIDs(ctx context.Context, db *sql.DB, postID string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT user_id FROM bookmarks WHERE post_id = ?`, postID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarkers: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning bookmarker id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// IsBookmarked reports whether a user has bookmarked a post.
func IsBookmarked(ctx context.Context, db *sql.DB, userID, postID string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookmarks WHERE user_id = ? AND post_id = ?`, userID, postID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking bookmark: %w", err)
	}
	return count > 0, nil
}
