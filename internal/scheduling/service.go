// Package scheduling holds the booking rules: time-range validation and
// reference checks before an appointment is persisted, and window-filtered
// listing. There is deliberately no overlap detection, so two bookings for
// the same staff member may share a time slot.
package scheduling

import (
	"context"
	"errors"

	"github.com/chiemelie/bookhub/internal/domain/appointment"
	"github.com/chiemelie/bookhub/internal/domain/client"
	"github.com/chiemelie/bookhub/internal/domain/user"
	"github.com/chiemelie/bookhub/internal/observability"
)

type AppointmentStore interface {
	Create(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.Appointment, error)
	List(ctx context.Context, filter appointment.ListFilter) ([]appointment.Appointment, error)
	GetByID(ctx context.Context, id int64) (appointment.Appointment, error)
}

type ClientFinder interface {
	GetByID(ctx context.Context, id int64) (client.Client, error)
}

type StaffFinder interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}

type Service struct {
	appointments AppointmentStore
	clients      ClientFinder
	staff        StaffFinder
	prom         *observability.Prom
}

func NewService(appointments AppointmentStore, clients ClientFinder, staff StaffFinder, prom *observability.Prom) *Service {
	return &Service{
		appointments: appointments,
		clients:      clients,
		staff:        staff,
		prom:         prom,
	}
}

// Create validates in a fixed order: time range first, then the client
// reference, then the staff reference. Only then does it insert.
func (s *Service) Create(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.Appointment, error) {
	if !req.EndTime.After(req.StartTime) {
		s.countCreate("invalid_time_range")
		return appointment.Appointment{}, appointment.ErrInvalidTimeRange
	}

	_, err := s.clients.GetByID(ctx, req.ClientID)

	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			s.countCreate("invalid_reference")
			return appointment.Appointment{}, appointment.ErrClientNotFound
		}

		s.countCreate("error")
		return appointment.Appointment{}, err
	}

	_, err = s.staff.GetByID(ctx, req.StaffID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.countCreate("invalid_reference")
			return appointment.Appointment{}, appointment.ErrStaffNotFound
		}

		s.countCreate("error")
		return appointment.Appointment{}, err
	}

	a, err := s.appointments.Create(ctx, req)

	if err != nil {
		s.countCreate("error")
		return appointment.Appointment{}, err
	}

	s.countCreate("created")

	return a, nil
}

// List returns appointments inside the window, ascending by start time with
// ties broken by id.
func (s *Service) List(ctx context.Context, filter appointment.ListFilter) ([]appointment.Appointment, error) {
	return s.appointments.List(ctx, filter)
}

func (s *Service) GetByID(ctx context.Context, id int64) (appointment.Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) countCreate(outcome string) {
	if s.prom != nil {
		s.prom.AppointmentsCreated.WithLabelValues(outcome).Inc()
	}
}
