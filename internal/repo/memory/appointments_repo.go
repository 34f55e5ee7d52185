package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chiemelie/bookhub/internal/domain/appointment"
)

type AppointmentsRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  []appointment.Appointment
}

func NewAppointmentsRepo() *AppointmentsRepo {
	return &AppointmentsRepo{nextID: 1}
}

func (r *AppointmentsRepo) Create(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := appointment.Appointment{
		ID:          r.nextID,
		ClientID:    req.ClientID,
		StaffID:     req.StaffID,
		ServiceName: req.ServiceName,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Notes:       req.Notes,
		Price:       req.Price,
		CreatedAt:   time.Now().UTC(),
	}

	r.nextID++
	r.items = append(r.items, a)

	return a, nil
}

func (r *AppointmentsRepo) List(ctx context.Context, filter appointment.ListFilter) ([]appointment.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointment.Appointment, 0, len(r.items))

	for _, a := range r.items {
		if filter.From != nil && a.StartTime.Before(*filter.From) {
			continue
		}

		if filter.To != nil && a.EndTime.After(*filter.To) {
			continue
		}

		out = append(out, a)
	}

	// ascending by start time, ties by insertion order (id)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}

		return out[i].StartTime.Before(out[j].StartTime)
	})

	return out, nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id int64) (appointment.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.items {
		if a.ID == id {
			return a, nil
		}
	}

	return appointment.Appointment{}, appointment.ErrNotFound
}
