package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/campusfind/campusfind/internal/model"
)

// SearchFilter holds the optional criteria for a post search.
type SearchFilter struct {
	Query    string
	Category string
	Location string
	Status   string
	Type     string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
}

// SearchPosts returns posts matching the filter, newest first. The free-text
// query matches item names and descriptions case-insensitively.
func SearchPosts(ctx context.Context, db *sql.DB, f SearchFilter) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE 1=1`
	var args []any

	if f.Query != "" {
		query += ` AND (item LIKE ? OR description LIKE ?)`
		pattern := "%" + f.Query + "%"
		args = append(args, pattern, pattern)
	}
	if f.Category != "" && f.Category != "All" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Location != "" {
		query += ` AND location LIKE ?`
		args = append(args, "%"+f.Location+"%")
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Type != "" {
		query += ` AND type = ?`
		args = append(args, f.Type)
	}
	if f.DateFrom != nil {
		query += ` AND created_at >= ?`
		args = append(args, f.DateFrom.UTC())
	}
	if f.DateTo != nil {
		query += ` AND created_at <= ?`
		args = append(args, f.DateTo.UTC())
	}

	query += ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}
