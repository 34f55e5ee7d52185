package postgres

import (
	"errors"

	"github.com/chiemelie/bookhub/internal/observability"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

// observe wraps a repo operation with DB metrics when a collector is wired.
func observe(prom *observability.Prom, op string, fn func() error) error {
	if prom == nil {
		return fn()
	}

	return prom.ObserveDB(op, fn)
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func pgConstraint(err error) string {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}

	return ""
}
