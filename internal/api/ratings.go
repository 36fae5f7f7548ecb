package api

import (
	"database/sql"
	"net/http"

	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
	"github.com/campusfind/campusfind/internal/workflow"
)

// RatingsHandler handles ratings and thanks.
type RatingsHandler struct {
	DB       *sql.DB
	Notifier workflow.Notifier
}

type createRatingRequest struct {
	ToUserID    string  `json:"to_user_id"`
	Rating      int     `json:"rating"`
	Comment     string  `json:"comment"`
	RelatedPost *string `json:"related_post"`
	PostType    string  `json:"post_type"`
}

// Create handles POST /api/ratings.
func (h *RatingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createRatingRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ToUserID == "" {
		jsonError(w, http.StatusBadRequest, "to_user_id required")
		return
	}
	if req.ToUserID == claims.UserID {
		jsonError(w, http.StatusBadRequest, "cannot rate yourself")
		return
	}
	if req.Rating < model.RatingMin || req.Rating > model.RatingMax {
		jsonError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	rating, err := workflow.RecordRating(r.Context(), h.DB, h.Notifier, claims.UserID, req.ToUserID, req.Rating, req.Comment, req.RelatedPost, req.PostType)
	if err != nil {
		writeWorkflowError(w, err, "failed to record rating")
		return
	}

	jsonResponse(w, http.StatusCreated, rating)
}

// ListForUser handles GET /api/users/{id}/ratings.
func (h *RatingsHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	ratings, err := store.ListRatingsForUser(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list ratings")
		return
	}
	if ratings == nil {
		ratings = []model.Rating{}
	}
	jsonResponse(w, http.StatusOK, ratings)
}

// Thanks handles POST /api/users/{id}/thanks.
func (h *RatingsHandler) Thanks(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	toUserID := r.PathValue("id")

	if toUserID == claims.UserID {
		jsonError(w, http.StatusBadRequest, "cannot thank yourself")
		return
	}

	if err := workflow.SendThanks(r.Context(), h.DB, h.Notifier, claims.UserID, toUserID); err != nil {
		writeWorkflowError(w, err, "failed to send thanks")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "thanks sent"})
}
