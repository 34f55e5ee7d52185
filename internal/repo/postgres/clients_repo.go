package postgres

import (
	"context"
	"errors"

	"github.com/chiemelie/bookhub/internal/domain/client"
	"github.com/chiemelie/bookhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClientsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewClientsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ClientsRepo {
	return &ClientsRepo{pool: pool, prom: prom}
}

func (r *ClientsRepo) Create(ctx context.Context, req client.CreateClientRequest) (client.Client, error) {
	c := client.Client{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	}

	err := observe(r.prom, "clients.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO clients (first_name, last_name, phone, email)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			req.FirstName, req.LastName, req.Phone, req.Email,
		).Scan(&c.ID)
	})

	if err != nil {
		return client.Client{}, err
	}

	return c, nil
}

// List returns clients in insertion order.
func (r *ClientsRepo) List(ctx context.Context) ([]client.Client, error) {
	var out []client.Client

	err := observe(r.prom, "clients.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, first_name, last_name, phone, email
			 FROM clients
			 ORDER BY id ASC`,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]client.Client, 0)

		for rows.Next() {
			var c client.Client

			err = rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email)

			if err != nil {
				return err
			}

			out = append(out, c)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ClientsRepo) GetByID(ctx context.Context, id int64) (client.Client, error) {
	var c client.Client

	err := observe(r.prom, "clients.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, first_name, last_name, phone, email
			 FROM clients
			 WHERE id = $1`,
			id,
		).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrNotFound
		}

		return client.Client{}, err
	}

	return c, nil
}
