package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusfind/campusfind/internal/model"
)

const postColumns = `id, type, item, description, category, location, date, contact,
	photo_mime, user_id, status, view_count, bookmark_count, matched_with,
	expires_at, created_at, updated_at`

// prefixedPostColumns qualifies postColumns with a table alias for joins.
func prefixedPostColumns(alias string) string {
	cols := strings.Split(postColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

// CreatePost creates a lost or found post. The expiry timestamp is fixed at
// creation time plus the retention window.
func CreatePost(ctx context.Context, db *sql.DB, p model.Post) (*model.Post, error) {
	if p.Category == "" {
		p.Category = model.CategoryOther
	}
	id := uuid.NewString()
	expiresAt := time.Now().UTC().Add(model.PostRetention)
	_, err := db.ExecContext(ctx,
		`INSERT INTO posts (id, type, item, description, category, location, date, contact, user_id, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Type, p.Item, p.Description, p.Category, p.Location, p.Date, p.Contact, p.UserID, expiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	return GetPost(ctx, db, id)
}

// GetPost returns a post by ID.
func GetPost(ctx context.Context, db *sql.DB, id string) (*model.Post, error) {
	row := db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	p, err := scanPostInto(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting post: %w", err)
	}
	return p, nil
}

// ListPosts returns posts, optionally filtered by type and status, newest first.
func ListPosts(ctx context.Context, db *sql.DB, postType, status string) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE 1=1`
	var args []any

	if postType != "" {
		query += ` AND type = ?`
		args = append(args, postType)
	}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// UpdatePost updates a post's descriptive fields.
func UpdatePost(ctx context.Context, db *sql.DB, id, item, description, category, location, date, contact string) error {
	if category == "" {
		category = model.CategoryOther
	}
	_, err := db.ExecContext(ctx,
		`UPDATE posts SET item = ?, description = ?, category = ?, location = ?, date = ?, contact = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		item, description, category, location, date, contact, id,
	)
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}
	return nil
}

// SetPostStatus updates a post's lifecycle status.
func SetPostStatus(ctx context.Context, db *sql.DB, id, status string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE posts SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("setting post status: %w", err)
	}
	return nil
}

// DeletePost removes a post together with its claims and bookmarks.
func DeletePost(ctx context.Context, db *sql.DB, id string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM claim_images WHERE claim_id IN (SELECT id FROM claims WHERE post_id = ?)`,
		`DELETE FROM claims WHERE post_id = ?`,
		`DELETE FROM bookmarks WHERE post_id = ?`,
		`DELETE FROM posts WHERE id = ?`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("deleting post: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing post deletion: %w", err)
	}
	return nil
}

// IncrementViewCount bumps a post's view counter.
func IncrementViewCount(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE posts SET view_count = view_count + 1 WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("incrementing view count: %w", err)
	}
	return nil
}

// SetPostPhoto sets a post's photo data.
func SetPostPhoto(ctx context.Context, db *sql.DB, id string, photo []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE posts SET photo = ?, photo_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting post photo: %w", err)
	}
	return nil
}

// GetPostPhoto returns a post's photo data and MIME type.
func GetPostPhoto(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM posts WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting post photo: %w", err)
	}
	return photo, mime.String, nil
}

// ListPostsByUser returns a user's posts, newest first. An empty postType
// returns posts of both types.
func ListPostsByUser(ctx context.Context, db *sql.DB, userID, postType string) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = ?`
	args := []any{userID}

	if postType != "" {
		query += ` AND type = ?`
		args = append(args, postType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing user posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ExpireOverduePosts transitions active posts past their expiry to expired.
// Returns the number of posts expired.
func ExpireOverduePosts(ctx context.Context, db *sql.DB, now time.Time) (int64, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE posts SET status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE status = ? AND expires_at <= ?`,
		model.PostStatusExpired, model.PostStatusActive, now.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("expiring posts: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting expired posts: %w", err)
	}
	return n, nil
}

// ListExpiringPosts returns active posts whose expiry falls in (now, until].
func ListExpiringPosts(ctx context.Context, db *sql.DB, now, until time.Time) ([]model.Post, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE status = ? AND expires_at > ? AND expires_at <= ?`,
		model.PostStatusActive, now.UTC(), until.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("listing expiring posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func scanPostInto(s rowScanner) (*model.Post, error) {
	p := &model.Post{}
	var description, location, date, contact, photoMime sql.NullString
	err := s.Scan(&p.ID, &p.Type, &p.Item, &description, &p.Category, &location, &date, &contact,
		&photoMime, &p.UserID, &p.Status, &p.ViewCount, &p.BookmarkCount, &p.MatchedWith,
		&p.ExpiresAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Location = location.String
	p.Date = date.String
	p.Contact = contact.String
	p.PhotoMime = photoMime.String
	return p, nil
}

func scanPosts(rows *sql.Rows) ([]model.Post, error) {
	var posts []model.Post
	for rows.Next() {
		p, err := scanPostInto(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}
