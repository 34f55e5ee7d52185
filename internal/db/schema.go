package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables on startup when they do not exist yet.
// Deleting a client or a staff user cascades to their appointments.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'staff',
			password_hash TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS clients (
			id         BIGSERIAL PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name  TEXT NOT NULL,
			phone      TEXT,
			email      TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS appointments (
			id           BIGSERIAL PRIMARY KEY,
			client_id    BIGINT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
			staff_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			service_name TEXT NOT NULL,
			start_time   TIMESTAMPTZ NOT NULL,
			end_time     TIMESTAMPTZ NOT NULL,
			notes        TEXT,
			price        DOUBLE PRECISION,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_start_time ON appointments (start_time, id)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
