package model

import "time"

// Claim is an ownership claim a user submits against someone else's post.
type Claim struct {
	ID               string    `json:"id"`
	ClaimantID       string    `json:"claimant_id"`
	PostID           string    `json:"post_id"`
	PostType         string    `json:"post_type"`
	ProofDescription string    `json:"proof_description"`
	ProofImages      []string  `json:"proof_images,omitempty"`
	Status           string    `json:"status"`
	ReviewedBy       *string   `json:"reviewed_by,omitempty"`
	ReviewNote       string    `json:"review_note,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Joined fields (not always populated).
	ClaimantName  string `json:"claimant_name,omitempty"`
	ClaimantEmail string `json:"claimant_email,omitempty"`
}

// Claim statuses.
const (
	ClaimStatusPending   = "pending"
	ClaimStatusApproved  = "approved"
	ClaimStatusRejected  = "rejected"
	ClaimStatusCompleted = "completed"
)

// MaxProofImages caps the attachments accepted per claim.
const MaxProofImages = 3

// ClaimTransitionAllowed reports whether a claim may move from one status to
// another. Rejected and completed are terminal; completed is reachable only
// from approved.
func ClaimTransitionAllowed(from, to string) bool {
	switch from {
	case ClaimStatusPending:
		return to == ClaimStatusApproved || to == ClaimStatusRejected
	case ClaimStatusApproved:
		return to == ClaimStatusCompleted
	default:
		return false
	}
}
