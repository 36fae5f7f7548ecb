package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
	"github.com/campusfind/campusfind/internal/workflow"
)

// MessagesHandler handles conversations and direct messages.
type MessagesHandler struct {
	DB       *sql.DB
	Notifier workflow.Notifier
}

type startConversationRequest struct {
	UserID      string  `json:"user_id"`
	RelatedPost *string `json:"related_post"`
	PostType    string  `json:"post_type"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// Start handles POST /api/conversations.
func (h *MessagesHandler) Start(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req startConversationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserID == "" || req.UserID == claims.UserID {
		jsonError(w, http.StatusBadRequest, "a different user_id is required")
		return
	}

	other, err := store.GetUser(r.Context(), h.DB, req.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if other == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	conv, err := store.GetOrCreateConversation(r.Context(), h.DB, claims.UserID, req.UserID, req.RelatedPost, req.PostType)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to start conversation")
		return
	}

	jsonResponse(w, http.StatusOK, conv)
}

// List handles GET /api/conversations.
func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	conversations, err := store.ListConversations(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list conversations")
		return
	}
	if conversations == nil {
		conversations = []model.Conversation{}
	}
	jsonResponse(w, http.StatusOK, conversations)
}

// Messages handles GET /api/conversations/{id}/messages. Reading marks the
// caller's incoming messages as read.
func (h *MessagesHandler) Messages(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	conv, err := h.participantConversation(w, r, claims.UserID)
	if conv == nil || err != nil {
		return
	}

	messages, err := store.ListMessages(r.Context(), h.DB, conv.ID, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	if messages == nil {
		messages = []model.Message{}
	}
	jsonResponse(w, http.StatusOK, messages)
}

// Send handles POST /api/conversations/{id}/messages.
func (h *MessagesHandler) Send(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	conv, err := h.participantConversation(w, r, claims.UserID)
	if conv == nil || err != nil {
		return
	}

	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		jsonError(w, http.StatusBadRequest, "content required")
		return
	}

	receiverID := conv.UserA
	if receiverID == claims.UserID {
		receiverID = conv.UserB
	}

	message, err := store.CreateMessage(r.Context(), h.DB, conv.ID, claims.UserID, receiverID, req.Content)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	if err := h.Notifier.Notify(r.Context(), model.Notification{
		UserID:      receiverID,
		Type:        model.NotifyMessage,
		Title:       "New Message",
		Message:     fmt.Sprintf("%s sent you a message", claims.Name),
		RelatedPost: conv.RelatedPost,
		RelatedUser: &claims.UserID,
	}); err != nil {
		slog.Error("sending message notification", "conversation", conv.ID, "error", err)
	}

	jsonResponse(w, http.StatusCreated, message)
}

// UnreadCount handles GET /api/messages/unread.
func (h *MessagesHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	count, err := store.CountUnreadMessages(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to count messages")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]int{"unread": count})
}

// participantConversation loads the conversation from the path and verifies
// the caller is one of its two participants. Writes the error response
// itself and returns nil when the caller should stop.
func (h *MessagesHandler) participantConversation(w http.ResponseWriter, r *http.Request, userID string) (*model.Conversation, error) {
	conv, err := store.GetConversation(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get conversation")
		return nil, err
	}
	if conv == nil {
		jsonError(w, http.StatusNotFound, "conversation not found")
		return nil, nil
	}
	if conv.UserA != userID && conv.UserB != userID {
		jsonError(w, http.StatusForbidden, "not your conversation")
		return nil, nil
	}
	return conv, nil
}
