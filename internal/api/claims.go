package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/campusfind/campusfind/internal/imaging"
	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
	"github.com/campusfind/campusfind/internal/workflow"
)

// ClaimsHandler handles the claim lifecycle endpoints.
type ClaimsHandler struct {
	DB       *sql.DB
	Notifier workflow.Notifier
}

type reviewClaimRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// Create handles POST /api/posts/{id}/claims. The request is a multipart
// form with a proof_description field and up to three proof image files
// under the "images" key.
func (h *ClaimsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	postID := r.PathValue("id")

	r.Body = http.MaxBytesReader(w, r.Body, model.MaxProofImages*imaging.MaxUploadBytes)
	if err := r.ParseMultipartForm(model.MaxProofImages * imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	proof := r.FormValue("proof_description")
	if proof == "" {
		jsonError(w, http.StatusBadRequest, "proof_description required")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) > model.MaxProofImages {
		jsonError(w, http.StatusBadRequest, fmt.Sprintf("at most %d proof images allowed", model.MaxProofImages))
		return
	}

	claim, err := workflow.SubmitClaim(r.Context(), h.DB, h.Notifier, claims.UserID, postID, proof)
	if err != nil {
		writeWorkflowError(w, err, "failed to submit claim")
		return
	}

	for i, header := range files {
		file, err := header.Open()
		if err != nil {
			jsonError(w, http.StatusBadRequest, "unreadable proof image")
			return
		}
		processed, err := imaging.ProcessProof(file)
		file.Close()
		if err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := store.AddClaimImage(r.Context(), h.DB, claim.ID, i, processed.Data, processed.MIME); err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to save proof image")
			return
		}
	}

	// Re-fetch to include the stored proof images; if that fails the claim
	// itself still stands, so answer with what we already hold.
	if fresh, err := store.GetClaim(r.Context(), h.DB, claim.ID); err == nil && fresh != nil {
		claim = fresh
	}
	jsonResponse(w, http.StatusCreated, claim)
}

// ListForPost handles GET /api/posts/{id}/claims. Only the post owner may
// see claims against their post.
func (h *ClaimsHandler) ListForPost(w http.ResponseWriter, r *http.Request) {
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
		jsonError(w, http.StatusForbidden, "only the post owner may view claims")
		return
	}

	list, err := store.ListClaimsForPost(r.Context(), h.DB, post.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list claims")
		return
	}
	if list == nil {
		list = []model.Claim{}
	}
	jsonResponse(w, http.StatusOK, list)
}

// Get handles GET /api/claims/{id}. Visible to the claimant and the post
// owner.
func (h *ClaimsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	claim, err := store.GetClaim(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get claim")
		return
	}
	if claim == nil {
		jsonError(w, http.StatusNotFound, "claim not found")
		return
	}

	if claim.ClaimantID != claims.UserID {
		post, err := store.GetPost(r.Context(), h.DB, claim.PostID)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if post == nil || post.UserID != claims.UserID {
			jsonError(w, http.StatusForbidden, "not your claim")
			return
		}
	}

	jsonResponse(w, http.StatusOK, claim)
}

// Review handles PUT /api/claims/{id}/review.
func (h *ClaimsHandler) Review(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req reviewClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Status {
	case model.ClaimStatusApproved, model.ClaimStatusRejected, model.ClaimStatusCompleted:
	default:
		jsonError(w, http.StatusBadRequest, "status must be 'approved', 'rejected' or 'completed'")
		return
	}

	claim, err := workflow.ReviewClaim(r.Context(), h.DB, h.Notifier, claims.UserID, r.PathValue("id"), req.Status, req.Note)
	if err != nil {
		writeWorkflowError(w, err, "failed to review claim")
		return
	}

	jsonResponse(w, http.StatusOK, claim)
}

// GetProofImage handles GET /api/claims/images/{id}.
func (h *ClaimsHandler) GetProofImage(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetClaimImage(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no such image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Write(data)
}

// writeWorkflowError maps workflow sentinel errors onto HTTP statuses.
func writeWorkflowError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, workflow.ErrConflict):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, workflow.ErrInvalidTransition):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, workflow.ErrUnauthorized):
		jsonError(w, http.StatusForbidden, err.Error())
	default:
		jsonError(w, http.StatusInternalServerError, fallback)
	}
}
