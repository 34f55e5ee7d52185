package postgres

import (
	"context"
	"errors"

	"github.com/chiemelie/bookhub/internal/domain/user"
	"github.com/chiemelie/bookhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) Create(ctx context.Context, email, name, role, passwordHash string) (user.User, error) {
	u := user.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: passwordHash,
	}

	err := observe(r.prom, "users.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO users (email, name, role, password_hash)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			email, name, role, passwordHash,
		).Scan(&u.ID)
	})

	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return user.User{}, user.ErrEmailTaken
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := observe(r.prom, "users.get_by_email", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, email, name, role, password_hash
			 FROM users
			 WHERE email = $1`,
			email,
		).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	var u user.User

	err := observe(r.prom, "users.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, email, name, role, password_hash
			 FROM users
			 WHERE id = $1`,
			id,
		).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}
