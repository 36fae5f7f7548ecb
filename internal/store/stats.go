package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/campusfind/campusfind/internal/model"
)

// CategoryCount is a per-category post tally.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Stats is the dashboard summary.
type Stats struct {
	TotalLost       int             `json:"total_lost"`
	TotalFound      int             `json:"total_found"`
	TotalResolved   int             `json:"total_resolved"`
	SuccessRate     float64         `json:"success_rate"`
	TotalUsers      int             `json:"total_users"`
	RecentLost      int             `json:"recent_lost"`
	RecentFound     int             `json:"recent_found"`
	LostByCategory  []CategoryCount `json:"lost_by_category"`
	FoundByCategory []CategoryCount `json:"found_by_category"`
	TopHelpers      []model.User    `json:"top_helpers"`
}

// recentWindow is how far back "recent activity" counts reach.
const recentWindow = 7 * 24 * time.Hour

// GetStats computes the dashboard summary.
func GetStats(ctx context.Context, db *sql.DB) (*Stats, error) {
	s := &Stats{}

	weekAgo := time.Now().UTC().Add(-recentWindow)
	counts := []struct {
		dest  *int
		query string
		args  []any
	}{
		{&s.TotalLost, `SELECT COUNT(*) FROM posts WHERE type = ?`, []any{model.PostTypeLost}},
		{&s.TotalFound, `SELECT COUNT(*) FROM posts WHERE type = ?`, []any{model.PostTypeFound}},
		{&s.TotalResolved, `SELECT COUNT(*) FROM posts WHERE status = ?`, []any{model.PostStatusResolved}},
		{&s.TotalUsers, `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`, nil},
		{&s.RecentLost, `SELECT COUNT(*) FROM posts WHERE type = ? AND created_at >= ?`, []any{model.PostTypeLost, weekAgo}},
		{&s.RecentFound, `SELECT COUNT(*) FROM posts WHERE type = ? AND created_at >= ?`, []any{model.PostTypeFound, weekAgo}},
	}

	for _, c := range counts {
		if err := db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("computing stats: %w", err)
		}
	}

	if total := s.TotalLost + s.TotalFound; total > 0 {
		rate := float64(s.TotalResolved) / float64(total) * 100
		s.SuccessRate = math.Round(rate*10) / 10
	}

	var err error
	s.LostByCategory, err = countByCategory(ctx, db, model.PostTypeLost)
	if err != nil {
		return nil, err
	}
	s.FoundByCategory, err = countByCategory(ctx, db, model.PostTypeFound)
	if err != nil {
		return nil, err
	}

	s.TopHelpers, err = TopHelpers(ctx, db, 5)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func countByCategory(ctx context.Context, db *sql.DB, postType string) ([]CategoryCount, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM posts WHERE type = ? GROUP BY category`, postType,
	)
	if err != nil {
		return nil, fmt.Errorf("counting posts by category: %w", err)
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
