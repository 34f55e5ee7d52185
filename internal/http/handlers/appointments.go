package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/chiemelie/bookhub/internal/domain/appointment"
	"github.com/gin-gonic/gin"
)

type Scheduler interface {
	Create(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.Appointment, error)
	List(ctx context.Context, filter appointment.ListFilter) ([]appointment.Appointment, error)
	GetByID(ctx context.Context, id int64) (appointment.Appointment, error)
}

type AppointmentsHandler struct {
	scheduler Scheduler
}

func NewAppointmentsHandler(scheduler Scheduler) *AppointmentsHandler {
	return &AppointmentsHandler{scheduler: scheduler}
}

type CreateAppointmentPayload struct {
	ClientID    int64    `json:"client_id" binding:"required,gt=0"`
	StaffID     int64    `json:"staff_id" binding:"required,gt=0"`
	ServiceName string   `json:"service_name" binding:"required,min=1,max=200"`
	StartTime   string   `json:"start_time" binding:"required"`
	EndTime     string   `json:"end_time" binding:"required"`
	Notes       *string  `json:"notes" binding:"omitempty,max=2000"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
}

func (h *AppointmentsHandler) CreateAppointment(ctx *gin.Context) {
	var payload CreateAppointmentPayload

	if !BindJSON(ctx, &payload) {
		return
	}

	start, err := parseTimestamp(payload.StartTime)

	if err != nil {
		RespondBadRequest(ctx, "invalid_request", "start_time is not a valid timestamp", nil)
		return
	}

	end, err := parseTimestamp(payload.EndTime)

	if err != nil {
		RespondBadRequest(ctx, "invalid_request", "end_time is not a valid timestamp", nil)
		return
	}

	a, err := h.scheduler.Create(ctx.Request.Context(), appointment.CreateAppointmentRequest{
		ClientID:    payload.ClientID,
		StaffID:     payload.StaffID,
		ServiceName: payload.ServiceName,
		StartTime:   start,
		EndTime:     end,
		Notes:       payload.Notes,
		Price:       payload.Price,
	})

	if err != nil {
		switch {
		case errors.Is(err, appointment.ErrInvalidTimeRange):
			RespondBadRequest(ctx, "invalid_time_range", "end_time must be after start_time", nil)
		case errors.Is(err, appointment.ErrClientNotFound), errors.Is(err, appointment.ErrStaffNotFound):
			RespondBadRequest(ctx, "invalid_reference", err.Error(), nil)
		default:
			RespondInternal(ctx, "Could not create appointment")
		}
		return
	}

	ctx.JSON(http.StatusCreated, a)
}

func (h *AppointmentsHandler) ListAppointments(ctx *gin.Context) {
	var filter appointment.ListFilter

	if v := ctx.Query("start"); v != "" {
		t, err := parseTimestamp(v)

		if err != nil {
			RespondBadRequest(ctx, "invalid_request", "start is not a valid timestamp", nil)
			return
		}

		filter.From = &t
	}

	if v := ctx.Query("end"); v != "" {
		t, err := parseTimestamp(v)

		if err != nil {
			RespondBadRequest(ctx, "invalid_request", "end is not a valid timestamp", nil)
			return
		}

		filter.To = &t
	}

	appointments, err := h.scheduler.List(ctx.Request.Context(), filter)

	if err != nil {
		RespondInternal(ctx, "Could not list appointments")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": appointments,
		"count": len(appointments),
	})
}

func (h *AppointmentsHandler) GetAppointmentByID(ctx *gin.Context) {
	id, err := parseID(ctx.Param("id"))

	if err != nil {
		RespondBadRequest(ctx, "invalid_request", "id must be a positive integer", nil)
		return
	}

	a, err := h.scheduler.GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, appointment.ErrNotFound) {
			RespondNotFound(ctx, "Appointment not found")
			return
		}

		RespondInternal(ctx, "Could not fetch appointment")
		return
	}

	ctx.JSON(http.StatusOK, a)
}

// parseTimestamp accepts RFC 3339 and zone-less ISO timestamps; zone-less
// values are taken as UTC.
func parseTimestamp(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)

	if err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02T15:04:05", v)
}
