// Package expiry retires posts that outlived their retention window and
// warns owners shortly before it happens.
package expiry

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
)

// WarningWindow is how far ahead of expiry owners are warned.
const WarningWindow = 7 * 24 * time.Hour

// DefaultInterval is how often the sweeper runs.
const DefaultInterval = time.Hour

// Notifier matches workflow.Notifier so the sweeper can share the same sink.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// Sweeper periodically expires overdue posts and emits expiry warnings.
type Sweeper struct {
	DB       *sql.DB
	Notifier Notifier
	Interval time.Duration
}

// Run sweeps immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	if err := s.SweepOnce(ctx, time.Now().UTC()); err != nil {
		slog.Error("expiry sweep failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx, time.Now().UTC()); err != nil {
				slog.Error("expiry sweep failed", "error", err)
			}
		}
	}
}

// SweepOnce expires posts whose retention has elapsed, then warns owners of
// posts expiring within WarningWindow. Each post is warned at most once, via
// a lookup on previously sent notifications.
func (s *Sweeper) SweepOnce(ctx context.Context, now time.Time) error {
	expired, err := store.ExpireOverduePosts(ctx, s.DB, now)
	if err != nil {
		return fmt.Errorf("expiring overdue posts: %w", err)
	}
	if expired > 0 {
		slog.Info("expired overdue posts", "count", expired)
	}

	expiring, err := store.ListExpiringPosts(ctx, s.DB, now, now.Add(WarningWindow))
	if err != nil {
		return fmt.Errorf("listing expiring posts: %w", err)
	}

	for _, post := range expiring {
		warned, err := store.HasNotification(ctx, s.DB, post.UserID, model.NotifyExpiryWarning, post.ID)
		if err != nil {
			return fmt.Errorf("checking prior warning: %w", err)
		}
		if warned {
			continue
		}

		days := int(post.ExpiresAt.Sub(now).Hours() / 24)
		if days < 0 {
			days = 0
		}
		postID := post.ID
		err = s.Notifier.Notify(ctx, model.Notification{
			UserID:      post.UserID,
			Type:        model.NotifyExpiryWarning,
			Title:       "Post Expiring Soon",
			Message:     fmt.Sprintf("Your post %q will expire in %d day(s)", post.Item, days),
			RelatedPost: &postID,
		})
		if err != nil {
			slog.Error("failed to send expiry warning", "post", post.ID, "error", err)
		}
	}

	return nil
}
