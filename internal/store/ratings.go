package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campusfind/campusfind/internal/model"
)

// GetRating returns a rating by ID.
func GetRating(ctx context.Context, db *sql.DB, id string) (*model.Rating, error) {
	r := &model.Rating{}
	var comment, postType sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, from_user_id, to_user_id, rating, comment, related_post, post_type, created_at
		 FROM ratings WHERE id = ?`, id,
	).Scan(&r.ID, &r.FromUserID, &r.ToUserID, &r.Rating, &comment, &r.RelatedPost, &postType, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting rating: %w", err)
	}
	r.Comment = comment.String
	r.PostType = postType.String
	return r, nil
}

// ListRatingsForUser returns all ratings received by a user, newest first.
func ListRatingsForUser(ctx context.Context, db *sql.DB, userID string) ([]model.Rating, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT r.id, r.from_user_id, r.to_user_id, r.rating, r.comment, r.related_post,
		        r.post_type, r.created_at, u.name AS from_user_name
		 FROM ratings r
		 JOIN users u ON u.id = r.from_user_id
		 WHERE r.to_user_id = ?
		 ORDER BY r.created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing ratings: %w", err)
	}
	defer rows.Close()

	var ratings []model.Rating
	for rows.Next() {
		var r model.Rating
		var comment, postType sql.NullString
		if err := rows.Scan(&r.ID, &r.FromUserID, &r.ToUserID, &r.Rating, &comment,
			&r.RelatedPost, &postType, &r.CreatedAt, &r.FromUserName); err != nil {
			return nil, fmt.Errorf("scanning rating: %w", err)
		}
		r.Comment = comment.String
		r.PostType = postType.String
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}
