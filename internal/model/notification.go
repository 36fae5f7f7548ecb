package model

import "time"

// Notification is a user-facing event record. The core only ever creates
// notifications; marking them read happens through the API.
type Notification struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	RelatedPost *string   `json:"related_post,omitempty"`
	RelatedUser *string   `json:"related_user,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notification types.
const (
	NotifyMatch          = "match"
	NotifyMessage        = "message"
	NotifyClaim          = "claim"
	NotifyRating         = "rating"
	NotifyBookmarkUpdate = "bookmark_update"
	NotifyExpiryWarning  = "expiry_warning"
)
