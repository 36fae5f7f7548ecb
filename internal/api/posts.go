package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/campusfind/campusfind/internal/imaging"
	"github.com/campusfind/campusfind/internal/match"
	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
	"github.com/campusfind/campusfind/internal/workflow"
)

// PostsHandler handles lost and found post endpoints.
type PostsHandler struct {
	DB       *sql.DB
	Notifier workflow.Notifier
}

type postRequest struct {
	Type        string `json:"type"`
	Item        string `json:"item"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Contact     string `json:"contact"`
}

// List handles GET /api/posts.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	postType := r.URL.Query().Get("type")
	status := r.URL.Query().Get("status")
	posts, err := store.ListPosts(r.Context(), h.DB, postType, status)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list posts")
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	jsonResponse(w, http.StatusOK, posts)
}

// ListMine handles GET /api/posts/mine.
func (h *PostsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	posts, err := store.ListPostsByUser(r.Context(), h.DB, claims.UserID, r.URL.Query().Get("type"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list posts")
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	jsonResponse(w, http.StatusOK, posts)
}

// Create handles POST /api/posts.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Type != model.PostTypeLost && req.Type != model.PostTypeFound {
		jsonError(w, http.StatusBadRequest, "type must be 'lost' or 'found'")
		return
	}
	if req.Item == "" || req.Location == "" || req.Date == "" || req.Contact == "" {
		jsonError(w, http.StatusBadRequest, "item, location, date and contact required")
		return
	}
	if req.Category != "" {
		exists, err := store.CategoryExists(r.Context(), h.DB, req.Category)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !exists {
			jsonError(w, http.StatusBadRequest, "unknown category")
			return
		}
	}

	post, err := store.CreatePost(r.Context(), h.DB, model.Post{
		Type:        req.Type,
		Item:        req.Item,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Date:        req.Date,
		Contact:     req.Contact,
		UserID:      claims.UserID,
	})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create post")
		return
	}

	// Matching is best effort; the post stands even if it fails.
	matches := h.notifyMatches(r, post)

	slog.Info("post created", "post", post.ID, "type", post.Type, "item", post.Item)
	jsonResponse(w, http.StatusCreated, map[string]any{
		"post":    post,
		"matches": matches,
	})
}

// notifyMatches finds counterpart posts for a new post and notifies both
// sides of each match. Returns the matches for the creation response.
func (h *PostsHandler) notifyMatches(r *http.Request, post *model.Post) []match.Match {
	candidates, err := store.ListPosts(r.Context(), h.DB, model.OppositeType(post.Type), model.PostStatusActive)
	if err != nil {
		slog.Error("listing match candidates", "post", post.ID, "error", err)
		return []match.Match{}
	}

	matches := match.FindMatches(match.DefaultConfig(), *post, candidates)
	for _, m := range matches {
		matched := m.Post
		if err := h.Notifier.Notify(r.Context(), model.Notification{
			UserID:      matched.UserID,
			Type:        model.NotifyMatch,
			Title:       "Potential Match Found",
			Message:     fmt.Sprintf("A new %s post %q looks like a %d%% match for your %q", post.Type, post.Item, m.Score, matched.Item),
			RelatedPost: &matched.ID,
		}); err != nil {
			slog.Error("sending match notification", "post", matched.ID, "error", err)
		}
	}

	if len(matches) > 0 {
		postID := post.ID
		if err := h.Notifier.Notify(r.Context(), model.Notification{
			UserID:      post.UserID,
			Type:        model.NotifyMatch,
			Title:       "Potential Matches Found",
			Message:     fmt.Sprintf("Found %d possible match(es) for your %q", len(matches), post.Item),
			RelatedPost: &postID,
		}); err != nil {
			slog.Error("sending match notification", "post", post.ID, "error", err)
		}
	}
	return matches
}

// Get handles GET /api/posts/{id}.
func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := store.GetPost(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get post")
		return
	}
	if post == nil {
		jsonError(w, http.StatusNotFound, "post not found")
		return
	}

	// Views from the owner don't count.
	if claims := GetClaims(r.Context()); claims == nil || claims.UserID != post.UserID {
		if err := store.IncrementViewCount(r.Context(), h.DB, post.ID); err != nil {
			slog.Error("incrementing view count", "post", post.ID, "error", err)
		} else {
			post.ViewCount++
		}
	}

	jsonResponse(w, http.StatusOK, post)
}

// Matches handles GET /api/posts/{id}/matches.
func (h *PostsHandler) Matches(w http.ResponseWriter, r *http.Request) {
	post, err := store.GetPost(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get post")
		return
	}
	if post == nil {
		jsonError(w, http.StatusNotFound, "post not found")
		return
	}

	candidates, err := store.ListPosts(r.Context(), h.DB, model.OppositeType(post.Type), model.PostStatusActive)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list candidates")
		return
	}

	matches := match.FindMatches(match.DefaultConfig(), *post, candidates)
	if matches == nil {
		matches = []match.Match{}
	}
	jsonResponse(w, http.StatusOK, matches)
}

// Update handles PUT /api/posts/{id}.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	post, err := store.GetPost(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get post")
		return
	}
	if post == nil {
		jsonError(w, http.StatusNotFound, "post not found")
		return
	}
	if post.UserID != claims.UserID {
		jsonError(w, http.StatusForbidden, "only the author may edit a post")
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Item == "" || req.Location == "" {
		jsonError(w, http.StatusBadRequest, "item and location required")
		return
	}
	if req.Category == "" {
		req.Category = post.Category
	}

	if err := store.UpdatePost(r.Context(), h.DB, post.ID, req.Item, req.Description, req.Category, req.Location, req.Date, req.Contact); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update post")
		return
	}

	updated, _ := store.GetPost(r.Context(), h.DB, post.ID)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/posts/{id}.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	post, err := store.GetPost(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get post")
		return
	}
	if post == nil {
		jsonError(w, http.StatusNotFound, "post not found")
		return
	}
	if post.UserID != claims.UserID && claims.Role != model.RoleAdmin {
		jsonError(w, http.StatusForbidden, "only the author or an admin may delete a post")
		return
	}

	if err := store.DeletePost(r.Context(), h.DB, post.ID); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete post")
		return
	}

	slog.Info("post deleted", "post", post.ID, "by", claims.UserID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

// UploadPhoto handles PUT /api/posts/{id}/photo.
func (h *PostsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	post, err := store.GetPost(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get post")
		return
	}
	if post == nil {
		jsonError(w, http.StatusNotFound, "post not found")
		return
	}
	if post.UserID != claims.UserID {
		jsonError(w, http.StatusForbidden, "only the author may upload a photo")
		return
	}

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

	if err := store.SetPostPhoto(r.Context(), h.DB, post.ID, processed.Data, processed.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// GetPhoto handles GET /api/posts/{id}/photo.
func (h *PostsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetPostPhoto(r.Context(), h.DB, r.PathValue("id"))
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
