package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS drafts (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL,
		body       TEXT NOT NULL,
		summary    TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_drafts_owner ON drafts(owner_id)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id                 TEXT PRIMARY KEY,
		draft_id           TEXT NOT NULL REFERENCES drafts(id) ON DELETE CASCADE,
		text               TEXT NOT NULL,
		sentiment_label    TEXT,
		sentiment_score    TEXT,
		sentiment_keywords TEXT,
		created_at         DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_draft ON comments(draft_id)`,
	`CREATE TABLE IF NOT EXISTS api_keys (
		id           INTEGER  PRIMARY KEY AUTOINCREMENT,
		name         TEXT     NOT NULL,
		owner_id     TEXT     NOT NULL,
		key_prefix   TEXT     NOT NULL,
		key_hash     TEXT     NOT NULL UNIQUE,
		created_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_used_at DATETIME
	)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	return nil
}
