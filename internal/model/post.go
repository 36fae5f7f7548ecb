package model

import "time"

// Post is a lost report or a found listing. The two variants share one
// schema and are distinguished by Type.
type Post struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Item          string    `json:"item"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	Location      string    `json:"location,omitempty"`
	Date          string    `json:"date,omitempty"`
	Contact       string    `json:"contact,omitempty"`
	PhotoMime     string    `json:"photo_mime,omitempty"`
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	ViewCount     int       `json:"view_count"`
	BookmarkCount int       `json:"bookmark_count"`
	MatchedWith   *string   `json:"matched_with,omitempty"`
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Post types.
const (
	PostTypeLost  = "lost"
	PostTypeFound = "found"
)

// Post statuses. Posts move forward through the lifecycle: a claim approval
// takes an active post to claimed, completion to resolved, and the expiry
// sweep takes stale active posts to expired.
const (
	PostStatusActive   = "active"
	PostStatusClaimed  = "claimed"
	PostStatusResolved = "resolved"
	PostStatusExpired  = "expired"
)

// PostRetention is how long a post stays active before the sweep expires it.
const PostRetention = 30 * 24 * time.Hour

// OppositeType returns the counterpart post type for matching.
func OppositeType(postType string) string {
	if postType == PostTypeLost {
		return PostTypeFound
	}
	return PostTypeLost
}
