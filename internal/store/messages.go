package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusfind/campusfind/internal/model"
)

// GetOrCreateConversation returns the conversation between two users about a
// post, creating it if none exists. Participant order does not matter.
func GetOrCreateConversation(ctx context.Context, db *sql.DB, userA, userB string, relatedPost *string, postType string) (*model.Conversation, error) {
	var id string
	err := db.QueryRowContext(ctx,
		`SELECT id FROM conversations
		 WHERE ((user_a = ? AND user_b = ?) OR (user_a = ? AND user_b = ?))
		   AND COALESCE(related_post, '') = COALESCE(?, '')`,
		userA, userB, userB, userA, relatedPost,
	).Scan(&id)
	if err == nil {
		return GetConversation(ctx, db, id)
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("finding conversation: %w", err)
	}

	id = uuid.NewString()
	_, err = db.ExecContext(ctx,
		`INSERT INTO conversations (id, user_a, user_b, related_post, post_type)
		 VALUES (?, ?, ?, ?, ?)`,
		id, userA, userB, relatedPost, postType,
	)
	if err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}
	return GetConversation(ctx, db, id)
}

// GetConversation returns a conversation by ID.
func GetConversation(ctx context.Context, db *sql.DB, id string) (*model.Conversation, error) {
	c := &model.Conversation{}
	var postType, lastMessage sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT c.id, c.user_a, c.user_b, c.related_post, c.post_type, c.last_message,
		        c.last_message_time, c.created_at, ua.name, ub.name
		 FROM conversations c
		 JOIN users ua ON ua.id = c.user_a
		 JOIN users ub ON ub.id = c.user_b
		 WHERE c.id = ?`, id,
	).Scan(&c.ID, &c.UserA, &c.UserB, &c.RelatedPost, &postType, &lastMessage,
		&c.LastMessageTime, &c.CreatedAt, &c.UserAName, &c.UserBName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting conversation: %w", err)
	}
	c.PostType = postType.String
	c.LastMessage = lastMessage.String
	return c, nil
}

// ListConversations returns a user's conversations, most recently active first.
func ListConversations(ctx context.Context, db *sql.DB, userID string) ([]model.Conversation, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT c.id, c.user_a, c.user_b, c.related_post, c.post_type, c.last_message,
		        c.last_message_time, c.created_at, ua.name, ub.name
		 FROM conversations c
		 JOIN users ua ON ua.id = c.user_a
		 JOIN users ub ON ub.id = c.user_b
		 WHERE c.user_a = ? OR c.user_b = ?
		 ORDER BY c.last_message_time DESC`, userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	defer rows.Close()

	var conversations []model.Conversation
	for rows.Next() {
		var c model.Conversation
		var postType, lastMessage sql.NullString
		if err := rows.Scan(&c.ID, &c.UserA, &c.UserB, &c.RelatedPost, &postType, &lastMessage,
			&c.LastMessageTime, &c.CreatedAt, &c.UserAName, &c.UserBName); err != nil {
			return nil, fmt.Errorf("scanning conversation: %w", err)
		}
		c.PostType = postType.String
		c.LastMessage = lastMessage.String
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

// CreateMessage stores a message and updates the conversation's last-message
// fields in one transaction.
func CreateMessage(ctx context.Context, db *sql.DB, conversationID, senderID, receiverID, content string) (*model.Message, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO messages (id, conversation_id, sender_id, receiver_id, content)
		 VALUES (?, ?, ?, ?, ?)`,
		id, conversationID, senderID, receiverID, content,
	)
	if err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE conversations SET last_message = ?, last_message_time = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		content, conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating conversation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing message: %w", err)
	}
	return GetMessage(ctx, db, id)
}

// GetMessage returns a message by ID.
func GetMessage(ctx context.Context, db *sql.DB, id string) (*model.Message, error) {
	m := &model.Message{}
	err := db.QueryRowContext(ctx,
		`SELECT id, conversation_id, sender_id, receiver_id, content, read, created_at
		 FROM messages WHERE id = ?`, id,
	).Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting message: %w", err)
	}
	return m, nil
}

// ListMessages returns a conversation's messages in chronological order and
// marks the reader's received messages as read.
func ListMessages(ctx context.Context, db *sql.DB, conversationID, readerID string) ([]model.Message, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT m.id, m.conversation_id, m.sender_id, m.receiver_id, m.content, m.read,
		        m.created_at, u.name AS sender_name
		 FROM messages m
		 JOIN users u ON u.id = m.sender_id
		 WHERE m.conversation_id = ?
		 ORDER BY m.created_at`, conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.ReceiverID, &m.Content,
			&m.Read, &m.CreatedAt, &m.SenderName); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx,
		`UPDATE messages SET read = 1 WHERE conversation_id = ? AND receiver_id = ? AND read = 0`,
		conversationID, readerID,
	)
	if err != nil {
		return nil, fmt.Errorf("marking messages read: %w", err)
	}
	return messages, nil
}

// CountUnreadMessages returns the number of unread messages for a user.
func CountUnreadMessages(ctx context.Context, db *sql.DB, userID string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE receiver_id = ? AND read = 0`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting unread messages: %w", err)
	}
	return count, nil
}
