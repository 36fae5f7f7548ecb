package model

import "time"

// Rating is a one-time star rating one user gives another, optionally tied
// to a post. Ratings are immutable after creation; the unique index on
// (from_user, to_user, related_post) rejects duplicates.
type Rating struct {
	ID          string    `json:"id"`
	FromUserID  string    `json:"from_user_id"`
	ToUserID    string    `json:"to_user_id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	RelatedPost *string   `json:"related_post,omitempty"`
	PostType    string    `json:"post_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined fields (not always populated).
	FromUserName string `json:"from_user_name,omitempty"`
}

// Rating bounds.
const (
	RatingMin = 1
	RatingMax = 5
)
