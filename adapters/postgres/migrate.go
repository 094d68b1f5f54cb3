package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"teampulse/internal/errors"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		team_id      TEXT,
		assigned_by  TEXT,
		title        TEXT NOT NULL,
		description  TEXT,
		status       TEXT NOT NULL,
		priority     TEXT NOT NULL,
		category     TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ,
		due_date     TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_team_created ON tasks (team_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS check_ins (
		id      TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date    TIMESTAMPTZ NOT NULL,
		mood    TEXT NOT NULL,
		energy  INT NOT NULL,
		stress  INT NOT NULL,
		notes   TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_check_ins_user_date ON check_ins (user_id, date)`,
	`CREATE TABLE IF NOT EXISTS teams (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS team_members (
		team_id TEXT NOT NULL REFERENCES teams (id),
		user_id TEXT NOT NULL,
		PRIMARY KEY (team_id, user_id)
	)`,
}

// Migrate creates the record tables if they do not exist
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "applying schema")
		}
	}
	return nil
}

// Connect opens and pings a PostgreSQL connection
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}
	return db, nil
}
