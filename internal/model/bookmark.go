package model

import "time"

// Bookmark saves a post for a user. One bookmark per (user, post).
type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	PostType  string    `json:"post_type"`
	CreatedAt time.Time `json:"created_at"`
}
