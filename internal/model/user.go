package model

import (
	"fmt"
	"time"
)

// User represents a registered account. Rating and helper aggregates are
// derived fields recomputed by the workflow package, never edited directly.
type User struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Mobile         string     `json:"mobile,omitempty"`
	Address        string     `json:"address,omitempty"`
	Role           string     `json:"role"`
	PhotoMime      string     `json:"photo_mime,omitempty"`
	AvgRating      float64    `json:"average_rating"`
	TotalRatings   int        `json:"total_ratings"`
	ItemsReturned  int        `json:"items_returned"`
	ThanksReceived int        `json:"thanks_received"`
	Theme          string     `json:"theme"`
	Language       string     `json:"language"`
	PushEnabled    bool       `json:"push_notifications"`
	CreatedAt      time.Time  `json:"created_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// Roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Preference values.
const (
	ThemeDark   = "dark"
	ThemeLight  = "light"
	LangEnglish = "en"
	LangBengali = "bn"
)

// ValidatePassword checks password requirements for signup and password changes.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
