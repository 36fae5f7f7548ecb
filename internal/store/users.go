package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusfind/campusfind/internal/model"
)

const userColumns = `id, name, email, password_hash, mobile, address, role,
	photo_mime, average_rating, total_ratings, items_returned, thanks_received,
	theme, language, push_enabled, created_at, deleted_at`

// CreateUser creates a new user account.
func CreateUser(ctx context.Context, db *sql.DB, name, email, passwordHash, mobile, address, role string) (*model.User, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, mobile, address, role)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, email, passwordHash, mobile, address, role,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return GetUser(ctx, db, id)
}

// GetUser returns a live user by ID. Soft-deleted accounts are invisible.
func GetUser(ctx context.Context, db *sql.DB, id string) (*model.User, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? AND deleted_at IS NULL`, id)
	return scanUser(row)
}

// GetUserByEmail returns the live account registered under an email address.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? AND deleted_at IS NULL`, email)
	return scanUser(row)
}

// ListUsers returns all non-deleted users.
func ListUsers(ctx context.Context, db *sql.DB) ([]model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE deleted_at IS NULL ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUserPassword updates a user's password hash.
func UpdateUserPassword(ctx context.Context, db *sql.DB, id, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ? AND deleted_at IS NULL`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}

// UpdateUserPreferences updates a user's display preferences.
func UpdateUserPreferences(ctx context.Context, db *sql.DB, id, theme, language string, pushEnabled bool) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET theme = ?, language = ?, push_enabled = ? WHERE id = ? AND deleted_at IS NULL`,
		theme, language, pushEnabled, id,
	)
	if err != nil {
		return fmt.Errorf("updating user preferences: %w", err)
	}
	return nil
}

// DeleteUser soft-deletes a user.
func DeleteUser(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// SetUserPhoto sets a user's profile picture.
func SetUserPhoto(ctx context.Context, db *sql.DB, id string, photo []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET photo = ?, photo_mime = ? WHERE id = ? AND deleted_at IS NULL`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting user photo: %w", err)
	}
	return nil
}

// GetUserPhoto returns a user's profile picture data and MIME type.
func GetUserPhoto(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM users WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting user photo: %w", err)
	}
	return photo, mime.String, nil
}

// TopHelpers returns users with at least one returned item, best helpers first.
func TopHelpers(ctx context.Context, db *sql.DB, limit int) ([]model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE deleted_at IS NULL AND items_returned > 0
		 ORDER BY items_returned DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing top helpers: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserInto(s rowScanner) (*model.User, error) {
	u := &model.User{}
	var mobile, address, photoMime sql.NullString
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &mobile, &address, &u.Role,
		&photoMime, &u.AvgRating, &u.TotalRatings, &u.ItemsReturned, &u.ThanksReceived,
		&u.Theme, &u.Language, &u.PushEnabled, &u.CreatedAt, &u.DeletedAt)
	if err != nil {
		return nil, err
	}
	u.Mobile = mobile.String
	u.Address = address.String
	u.PhotoMime = photoMime.String
	return u, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	u, err := scanUserInto(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

func scanUserRow(rows *sql.Rows) (*model.User, error) {
	u, err := scanUserInto(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return u, nil
}
