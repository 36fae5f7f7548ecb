package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campusfind/campusfind/internal/model"
)

// ListCategories returns all categories sorted by name.
func ListCategories(ctx context.Context, db *sql.DB) ([]model.Category, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name, icon, description, color FROM categories ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		var icon, description, color sql.NullString
		if err := rows.Scan(&c.Name, &icon, &description, &color); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.Icon = icon.String
		c.Description = description.String
		c.Color = color.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CategoryExists reports whether a category with the given name is seeded.
func CategoryExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE name = ?`, name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking category: %w", err)
	}
	return count > 0, nil
}
