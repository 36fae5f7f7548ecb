package model

import "time"

// Conversation is a two-person message thread, optionally tied to a post.
type Conversation struct {
	ID              string    `json:"id"`
	UserA           string    `json:"user_a"`
	UserB           string    `json:"user_b"`
	RelatedPost     *string   `json:"related_post,omitempty"`
	PostType        string    `json:"post_type,omitempty"`
	LastMessage     string    `json:"last_message,omitempty"`
	LastMessageTime time.Time `json:"last_message_time"`
	CreatedAt       time.Time `json:"created_at"`

	// Joined fields (not always populated).
	UserAName string `json:"user_a_name,omitempty"`
	UserBName string `json:"user_b_name,omitempty"`
}

// Message is a single message within a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	ReceiverID     string    `json:"receiver_id"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`

	// Joined fields (not always populated).
	SenderName string `json:"sender_name,omitempty"`
}
