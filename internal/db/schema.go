package db

import (
	"database/sql"
	"fmt"

	"github.com/campusfind/campusfind/internal/model"
)

// schema is the full database schema. Record ids are opaque UUID strings.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    email           TEXT NOT NULL,
    password_hash   TEXT NOT NULL,
    mobile          TEXT,
    address         TEXT,
    role            TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
    photo           BLOB,
    photo_mime      TEXT,
    average_rating  REAL NOT NULL DEFAULT 0,
    total_ratings   INTEGER NOT NULL DEFAULT 0,
    items_returned  INTEGER NOT NULL DEFAULT 0,
    thanks_received INTEGER NOT NULL DEFAULT 0,
    theme           TEXT NOT NULL DEFAULT 'dark' CHECK (theme IN ('dark', 'light')),
    language        TEXT NOT NULL DEFAULT 'en' CHECK (language IN ('en', 'bn')),
    push_enabled    INTEGER NOT NULL DEFAULT 1,
    created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at      DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_active
    ON users(email) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS categories (
    name        TEXT PRIMARY KEY,
    icon        TEXT,
    description TEXT,
    color       TEXT
);

CREATE TABLE IF NOT EXISTS posts (
    id             TEXT PRIMARY KEY,
    type           TEXT NOT NULL CHECK (type IN ('lost', 'found')),
    item           TEXT NOT NULL,
    description    TEXT,
    category       TEXT NOT NULL DEFAULT 'Other',
    location       TEXT,
    date           TEXT,
    contact        TEXT,
    photo          BLOB,
    photo_mime     TEXT,
    user_id        TEXT NOT NULL REFERENCES users(id),
    status         TEXT NOT NULL DEFAULT 'active'
                   CHECK (status IN ('active', 'claimed', 'resolved', 'expired')),
    view_count     INTEGER NOT NULL DEFAULT 0,
    bookmark_count INTEGER NOT NULL DEFAULT 0,
    matched_with   TEXT,
    expires_at     DATETIME NOT NULL,
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_posts_type_status ON posts(type, status);

CREATE TABLE IF NOT EXISTS claims (
    id                TEXT PRIMARY KEY,
    claimant_id       TEXT NOT NULL REFERENCES users(id),
    post_id           TEXT NOT NULL REFERENCES posts(id),
    post_type         TEXT NOT NULL CHECK (post_type IN ('lost', 'found')),
    proof_description TEXT NOT NULL,
    status            TEXT NOT NULL DEFAULT 'pending'
                      CHECK (status IN ('pending', 'approved', 'rejected', 'completed')),
    reviewed_by       TEXT REFERENCES users(id),
    review_note       TEXT,
    created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_claims_post ON claims(post_id);

CREATE TABLE IF NOT EXISTS claim_images (
    id       TEXT PRIMARY KEY,
    claim_id TEXT NOT NULL REFERENCES claims(id),
    position INTEGER NOT NULL,
    image    BLOB NOT NULL,
    mime     TEXT NOT NULL,
    UNIQUE (claim_id, position)
);

CREATE TABLE IF NOT EXISTS ratings (
    id           TEXT PRIMARY KEY,
    from_user_id TEXT NOT NULL REFERENCES users(id),
    to_user_id   TEXT NOT NULL REFERENCES users(id),
    rating       INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
    comment      TEXT,
    related_post TEXT,
    post_type    TEXT,
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_ratings_unique
    ON ratings(from_user_id, to_user_id, COALESCE(related_post, ''));

CREATE TABLE IF NOT EXISTS notifications (
    id           TEXT PRIMARY KEY,
    user_id      TEXT NOT NULL REFERENCES users(id),
    type         TEXT NOT NULL CHECK (type IN
                 ('match', 'message', 'claim', 'rating', 'bookmark_update', 'expiry_warning')),
    title        TEXT NOT NULL,
    message      TEXT NOT NULL,
    related_post TEXT,
    related_user TEXT,
    read         INTEGER NOT NULL DEFAULT 0,
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, read);

CREATE TABLE IF NOT EXISTS bookmarks (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL REFERENCES users(id),
    post_id    TEXT NOT NULL REFERENCES posts(id),
    post_type  TEXT NOT NULL CHECK (post_type IN ('lost', 'found')),
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (user_id, post_id)
);

CREATE TABLE IF NOT EXISTS conversations (
    id                TEXT PRIMARY KEY,
    user_a            TEXT NOT NULL REFERENCES users(id),
    user_b            TEXT NOT NULL REFERENCES users(id),
    related_post      TEXT,
    post_type         TEXT,
    last_message      TEXT,
    last_message_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS messages (
    id              TEXT PRIMARY KEY,
    conversation_id TEXT NOT NULL REFERENCES conversations(id),
    sender_id       TEXT NOT NULL REFERENCES users(id),
    receiver_id     TEXT NOT NULL REFERENCES users(id),
    content         TEXT NOT NULL,
    read            INTEGER NOT NULL DEFAULT 0,
    created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist
// and seeds the default categories when the table is empty.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	if count == 0 {
		for _, c := range model.DefaultCategories {
			_, err := db.Exec(
				`INSERT INTO categories (name, icon, description, color) VALUES (?, ?, ?, ?)`,
				c.Name, c.Icon, c.Description, c.Color,
			)
			if err != nil {
				return fmt.Errorf("seeding category %q: %w", c.Name, err)
			}
		}
	}

	return nil
}
