package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chiemelie/bookhub/internal/domain/appointment"
	"github.com/chiemelie/bookhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewAppointmentsRepo(pool *pgxpool.Pool, prom *observability.Prom) *AppointmentsRepo {
	return &AppointmentsRepo{pool: pool, prom: prom}
}

func (r *AppointmentsRepo) Create(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.Appointment, error) {
	a := appointment.Appointment{
		ClientID:    req.ClientID,
		StaffID:     req.StaffID,
		ServiceName: req.ServiceName,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Notes:       req.Notes,
		Price:       req.Price,
	}

	err := observe(r.prom, "appointments.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO appointments (client_id, staff_id, service_name, start_time, end_time, notes, price)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id, created_at`,
			req.ClientID, req.StaffID, req.ServiceName, req.StartTime, req.EndTime, req.Notes, req.Price,
		).Scan(&a.ID, &a.CreatedAt)
	})

	if err != nil {
		// The service checks references first, but a concurrent delete can
		// still trip the constraint. Report it the same way.
		if pgErrCode(err) == pgFKViolation {
			if strings.Contains(pgConstraint(err), "client_id") {
				return appointment.Appointment{}, appointment.ErrClientNotFound
			}

			return appointment.Appointment{}, appointment.ErrStaffNotFound
		}

		return appointment.Appointment{}, err
	}

	return a, nil
}

func (r *AppointmentsRepo) List(ctx context.Context, filter appointment.ListFilter) ([]appointment.Appointment, error) {
	baseQuery := `SELECT id, client_id, staff_id, service_name, start_time, end_time, notes, price, created_at
	FROM appointments
	`

	var conds []string
	var args []interface{}

	argsPosition := 1

	if filter.From != nil {
		conds = append(conds, fmt.Sprintf("start_time >= $%d", argsPosition))
		args = append(args, *filter.From)
		argsPosition++
	}

	if filter.To != nil {
		conds = append(conds, fmt.Sprintf("end_time <= $%d", argsPosition))
		args = append(args, *filter.To)
		argsPosition++
	}

	query := baseQuery

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	// deterministic ordering: ties on start_time break by insertion order
	query += " ORDER BY start_time ASC, id ASC"

	var out []appointment.Appointment

	err := observe(r.prom, "appointments.list", func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]appointment.Appointment, 0)

		for rows.Next() {
			var a appointment.Appointment

			err = rows.Scan(&a.ID, &a.ClientID, &a.StaffID, &a.ServiceName, &a.StartTime, &a.EndTime, &a.Notes, &a.Price, &a.CreatedAt)

			if err != nil {
				return err
			}

			out = append(out, a)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id int64) (appointment.Appointment, error) {
	var a appointment.Appointment

	err := observe(r.prom, "appointments.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, client_id, staff_id, service_name, start_time, end_time, notes, price, created_at
			 FROM appointments
			 WHERE id = $1`,
			id,
		).Scan(&a.ID, &a.ClientID, &a.StaffID, &a.ServiceName, &a.StartTime, &a.EndTime, &a.Notes, &a.Price, &a.CreatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return appointment.Appointment{}, appointment.ErrNotFound
		}

		return appointment.Appointment{}, err
	}

	return a, nil
}
