package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusfind/campusfind/internal/model"
)

// CreateClaim creates a new claim in the pending state.
func CreateClaim(ctx context.Context, db *sql.DB, c model.Claim) (*model.Claim, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO claims (id, claimant_id, post_id, post_type, proof_description)
		 VALUES (?, ?, ?, ?, ?)`,
		id, c.ClaimantID, c.PostID, c.PostType, c.ProofDescription,
	)
	if err != nil {
		return nil, fmt.Errorf("creating claim: %w", err)
	}
	return GetClaim(ctx, db, id)
}

// GetClaim returns a claim by ID, with its proof image references.
func GetClaim(ctx context.Context, db *sql.DB, id string) (*model.Claim, error) {
	c := &model.Claim{}
	var reviewNote sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, claimant_id, post_id, post_type, proof_description, status,
		        reviewed_by, review_note, created_at, updated_at
		 FROM claims WHERE id = ?`, id,
	).Scan(&c.ID, &c.ClaimantID, &c.PostID, &c.PostType, &c.ProofDescription, &c.Status,
		&c.ReviewedBy, &reviewNote, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting claim: %w", err)
	}
	c.ReviewNote = reviewNote.String

	c.ProofImages, err = listClaimImageIDs(ctx, db, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListClaimsForPost returns all claims against a post with claimant details,
// newest first.
func ListClaimsForPost(ctx context.Context, db *sql.DB, postID string) ([]model.Claim, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT c.id, c.claimant_id, c.post_id, c.post_type, c.proof_description, c.status,
		        c.reviewed_by, c.review_note, c.created_at, c.updated_at,
		        u.name AS claimant_name, u.email AS claimant_email
		 FROM claims c
		 JOIN users u ON u.id = c.claimant_id
		 WHERE c.post_id = ?
		 ORDER BY c.created_at DESC`, postID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	defer rows.Close()

	var claims []model.Claim
	for rows.Next() {
		var c model.Claim
		var reviewNote sql.NullString
		if err := rows.Scan(&c.ID, &c.ClaimantID, &c.PostID, &c.PostType, &c.ProofDescription,
			&c.Status, &c.ReviewedBy, &reviewNote, &c.CreatedAt, &c.UpdatedAt,
			&c.ClaimantName, &c.ClaimantEmail); err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}
		c.ReviewNote = reviewNote.String
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range claims {
		claims[i].ProofImages, err = listClaimImageIDs(ctx, db, claims[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return claims, nil
}

// AddClaimImage attaches a proof image to a claim at the given position.
func AddClaimImage(ctx context.Context, db *sql.DB, claimID string, position int, image []byte, mime string) (string, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO claim_images (id, claim_id, position, image, mime) VALUES (?, ?, ?, ?, ?)`,
		id, claimID, position, image, mime,
	)
	if err != nil {
		return "", fmt.Errorf("adding claim image: %w", err)
	}
	return id, nil
}

// GetClaimImage returns a proof image's data and MIME type.
func GetClaimImage(ctx context.Context, db *sql.DB, imageID string) ([]byte, string, error) {
	var image []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT image, mime FROM claim_images WHERE id = ?`, imageID,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting claim image: %w", err)
	}
	return image, mime, nil
}

func listClaimImageIDs(ctx context.Context, db *sql.DB, claimID string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id FROM claim_images WHERE claim_id = ? ORDER BY position`, claimID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing claim images: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning claim image id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
