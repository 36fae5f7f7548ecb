package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/campusfind/campusfind/internal/imaging"
	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
)

// UsersHandler handles user profile endpoints.
type UsersHandler struct {
	DB *sql.DB
}

type preferencesRequest struct {
	Theme       string `json:"theme"`
	Language    string `json:"language"`
	PushEnabled bool   `json:"push_notifications"`
}

// publicProfile is the subset of a user shown to other users.
type publicProfile struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	AvgRating      float64      `json:"average_rating"`
	TotalRatings   int          `json:"total_ratings"`
	ItemsReturned  int          `json:"items_returned"`
	ThanksReceived int          `json:"thanks_received"`
	Posts          []model.Post `json:"posts"`
}

// Get handles GET /api/users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := store.GetUser(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	posts, err := store.ListPostsByUser(r.Context(), h.DB, user.ID, "")
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list posts")
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}

	jsonResponse(w, http.StatusOK, publicProfile{
		ID:             user.ID,
		Name:           user.Name,
		AvgRating:      user.AvgRating,
		TotalRatings:   user.TotalRatings,
		ItemsReturned:  user.ItemsReturned,
		ThanksReceived: user.ThanksReceived,
		Posts:          posts,
	})
}

// List handles GET /api/users (admin only).
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := store.ListUsers(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonResponse(w, http.StatusOK, users)
}

// UpdatePreferences handles PUT /api/users/me/preferences.
func (h *UsersHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req preferencesRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Theme != model.ThemeDark && req.Theme != model.ThemeLight {
		jsonError(w, http.StatusBadRequest, "theme must be 'dark' or 'light'")
		return
	}
	if req.Language != model.LangEnglish && req.Language != model.LangBengali {
		jsonError(w, http.StatusBadRequest, "language must be 'en' or 'bn'")
		return
	}

	if err := store.UpdateUserPreferences(r.Context(), h.DB, claims.UserID, req.Theme, req.Language, req.PushEnabled); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update preferences")
		return
	}

	user, _ := store.GetUser(r.Context(), h.DB, claims.UserID)
	jsonResponse(w, http.StatusOK, user)
}

// DeleteMe handles DELETE /api/users/me. Posts and claims survive account
// deletion; only the account itself is retired.
func (h *UsersHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	if err := store.DeleteUser(r.Context(), h.DB, claims.UserID); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}

	slog.Info("account deleted", "user", claims.UserID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

// Delete handles DELETE /api/users/{id} (admin only).
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := store.GetUser(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	if err := store.DeleteUser(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	slog.Info("user deleted by admin", "user", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// UploadPhoto handles PUT /api/users/me/photo.
func (h *UsersHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	processed, err := imaging.ProcessPhoto(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetUserPhoto(r.Context(), h.DB, claims.UserID, processed.Data, processed.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// GetPhoto handles GET /api/users/{id}/photo.
func (h *UsersHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetUserPhoto(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
