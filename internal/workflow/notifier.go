package workflow

import (
	"context"
	"database/sql"

	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
)

// Notifier records user-facing events. Delivery is fire-and-forget from the
// workflow's perspective: a failed notification is logged, never rolled
// back into the transition that triggered it.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// StoreNotifier persists notifications in the database.
type StoreNotifier struct {
	DB *sql.DB
}

func (s StoreNotifier) Notify(ctx context.Context, n model.Notification) error {
	_, err := store.CreateNotification(ctx, s.DB, n)
	return err
}
