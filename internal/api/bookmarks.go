package api

import (
	"database/sql"
	"net/http"

	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
)

// BookmarksHandler handles bookmark endpoints.
type BookmarksHandler struct {
	DB *sql.DB
}

// Toggle handles POST /api/posts/{id}/bookmark.
func (h *BookmarksHandler) Toggle(w http.ResponseWriter, r *http.Request) {
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

	bookmarked, err := store.ToggleBookmark(r.Context(), h.DB, claims.UserID, post.ID, post.Type)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to toggle bookmark")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]bool{"bookmarked": bookmarked})
}

// Check handles GET /api/posts/{id}/bookmark.
func (h *BookmarksHandler) Check(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	bookmarked, err := store.IsBookmarked(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to check bookmark")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]bool{"bookmarked": bookmarked})
}

// List handles GET /api/bookmarks.
func (h *BookmarksHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	postType := r.URL.Query().Get("type")
	if postType == "" {
		postType = model.PostTypeLost
	}

	posts, err := store.ListBookmarkedPosts(r.Context(), h.DB, claims.UserID, postType)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list bookmarks")
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	jsonResponse(w, http.StatusOK, posts)
}
