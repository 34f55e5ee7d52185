package appointment

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("appointment not found")

	// ErrInvalidTimeRange means end_time is not strictly after start_time.
	ErrInvalidTimeRange = errors.New("end_time must be after start_time")

	// Reference errors: the appointment points at a record that does not exist.
	ErrClientNotFound = errors.New("client does not exist")
	ErrStaffNotFound  = errors.New("staff user does not exist")
)

type Appointment struct {
	ID          int64     `json:"id"`
	ClientID    int64     `json:"client_id"`
	StaffID     int64     `json:"staff_id"`
	ServiceName string    `json:"service_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Notes       *string   `json:"notes,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateAppointmentRequest is the service-level input; the HTTP boundary
// parses and validates its own payload before building one of these.
type CreateAppointmentRequest struct {
	ClientID    int64
	StaffID     int64
	ServiceName string
	StartTime   time.Time
	EndTime     time.Time
	Notes       *string
	Price       *float64
}

// ListFilter bounds a listing by time window. Nil means unbounded on that side.
// From filters on start_time >= From, To on end_time <= To; both combine with AND.
type ListFilter struct {
	From *time.Time
	To   *time.Time
}
