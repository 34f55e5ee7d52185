package db

import (
	"context"
	"errors"

	"github.com/chiemelie/bookhub/internal/config"
	"github.com/chiemelie/bookhub/internal/domain/user"
	"github.com/chiemelie/bookhub/internal/security"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureOwnerUser seeds the configured owner account so a fresh deployment
// has someone who can log in. No-op when unset or already present.
func EnsureOwnerUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.OwnerEmail == "" || cfg.OwnerPassword == "" {
		return nil
	}

	var dummy int64

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.OwnerEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.OwnerPassword)

	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (email, name, role, password_hash)
		 VALUES ($1, $2, $3, $4)`,
		cfg.OwnerEmail, cfg.OwnerName, user.RoleOwner, hash,
	)

	return err
}
