package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS records (
		user_key   TEXT PRIMARY KEY,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		user_key   TEXT PRIMARY KEY REFERENCES records(user_key) ON DELETE CASCADE,
		name       TEXT,
		created_at TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS assessments (
		user_key     TEXT PRIMARY KEY REFERENCES records(user_key) ON DELETE CASCADE,
		score        INTEGER CHECK(score IS NULL OR (score >= 0 AND score <= 26)),
		risk_level   TEXT,
		last_updated TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS assessment_answers (
		user_key TEXT NOT NULL REFERENCES records(user_key) ON DELETE CASCADE,
		question TEXT NOT NULL,
		answer   TEXT NOT NULL,
		PRIMARY KEY (user_key, question)
	)`,

	`CREATE TABLE IF NOT EXISTS consumption_events (
		user_key     TEXT NOT NULL REFERENCES records(user_key) ON DELETE CASCADE,
		seq          INTEGER NOT NULL,
		logged_at    TEXT,
		beverage_id  TEXT NOT NULL,
		serving_size TEXT NOT NULL CHECK(serving_size IN ('regular','large')),
		quantity     INTEGER NOT NULL,
		sugar_grams  REAL NOT NULL,
		PRIMARY KEY (user_key, seq)
	)`,

	`CREATE TABLE IF NOT EXISTS event_additives (
		user_key TEXT NOT NULL,
		seq      INTEGER NOT NULL,
		position INTEGER NOT NULL,
		additive TEXT NOT NULL,
		PRIMARY KEY (user_key, seq, position),
		FOREIGN KEY (user_key, seq) REFERENCES consumption_events(user_key, seq) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_consumption_logged_at ON consumption_events(user_key, logged_at)`,
}
