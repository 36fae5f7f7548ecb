package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
)

// MiscHandler handles categories, search, and platform statistics.
type MiscHandler struct {
	DB *sql.DB
}

// Categories handles GET /api/categories.
func (h *MiscHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := store.ListCategories(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	jsonResponse(w, http.StatusOK, categories)
}

// Search handles GET /api/search.
func (h *MiscHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.SearchFilter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Location: q.Get("location"),
		Status:   q.Get("status"),
		Type:     q.Get("type"),
		Limit:    100,
	}

	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = parsed
	}

	for _, span := range []struct {
		param string
		dest  **time.Time
	}{
		{"date_from", &filter.DateFrom},
		{"date_to", &filter.DateTo},
	} {
		if raw := q.Get(span.param); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				jsonError(w, http.StatusBadRequest, "dates must be YYYY-MM-DD")
				return
			}
			*span.dest = &parsed
		}
	}

	posts, err := store.SearchPosts(r.Context(), h.DB, filter)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	jsonResponse(w, http.StatusOK, posts)
}

// Stats handles GET /api/stats.
func (h *MiscHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStats(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}
