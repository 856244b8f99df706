package db

import (
	"database/sql"
)

var schema = []string{
	`
CREATE TABLE IF NOT EXISTS statuses (
    id     INTEGER PRIMARY KEY,
    status TEXT NOT NULL UNIQUE
)`,
	`
CREATE TABLE IF NOT EXISTS categories (
    id   SERIAL PRIMARY KEY,
    name TEXT NOT NULL
)`,
	`
CREATE TABLE IF NOT EXISTS users (
    id          UUID PRIMARY KEY,
    username    VARCHAR(50) NOT NULL UNIQUE,
    name        VARCHAR(100) NOT NULL,
    role        TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
    profile_pic TEXT
)`,
	// 参照中のカテゴリは削除不可(RESTRICT)
	`
CREATE TABLE IF NOT EXISTS posts (
    id          SERIAL PRIMARY KEY,
    title       TEXT NOT NULL,
    image       TEXT NOT NULL DEFAULT '',
    category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
    description TEXT NOT NULL DEFAULT '',
    content     TEXT NOT NULL DEFAULT '',
    status_id   INTEGER NOT NULL REFERENCES statuses(id),
    date        TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS identity_cleanups (
    id          SERIAL PRIMARY KEY,
    identity_id UUID NOT NULL,
    email       TEXT NOT NULL DEFAULT '',
    reason      TEXT NOT NULL DEFAULT '',
    attempts    INTEGER NOT NULL DEFAULT 0,
    last_error  TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    resolved_at TIMESTAMPTZ
)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_date ON posts(date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_status_date ON posts(status_id, date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_category_id ON posts(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_identity_cleanups_pending ON identity_cleanups(created_at) WHERE resolved_at IS NULL`,
	`INSERT INTO statuses (id, status) VALUES (1, 'draft'), (2, 'published') ON CONFLICT (id) DO NOTHING`,
}

// trigramIndexes speed up the ILIKE filters. They need pg_trgm, so failures are ignored.
var trigramIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_posts_title_trgm ON posts USING gin(title gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_description_trgm ON posts USING gin(description gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_categories_name_trgm ON categories USING gin(name gin_trgm_ops)`,
}

// MigrateUp creates the schema and seeds the draft/published statuses. It is idempotent.
func MigrateUp(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	// 拡張がない環境(権限不足など)では無視
	if _, err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`); err == nil {
		for _, idx := range trigramIndexes {
			_, _ = db.Exec(idx)
		}
	}

	return nil
}

// MigrateDown drops every table MigrateUp created.
// Use with caution: this will delete all data.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS identity_cleanups`,
		`DROP TABLE IF EXISTS posts`,
		`DROP TABLE IF EXISTS users`,
		`DROP TABLE IF EXISTS categories`,
		`DROP TABLE IF EXISTS statuses`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
