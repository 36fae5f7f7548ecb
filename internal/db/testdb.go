package db

import (
	"database/sql"
	"testing"
)

// NewTestDB opens a fresh in-memory SQLite database with the full campusfind
// schema applied and the default categories seeded. The database is closed
// when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := EnsureSchema(db); err != nil {
		db.Close()
		t.Fatalf("applying test database schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
