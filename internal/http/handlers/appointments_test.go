package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chiemelie/bookhub/internal/domain/appointment"
	"github.com/chiemelie/bookhub/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// Fake implementation of the handlers.Scheduler interface

type fakeScheduler struct {
	createFn func(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.Appointment, error)
	listFn   func(ctx context.Context, filter appointment.ListFilter) ([]appointment.Appointment, error)
	getFn    func(ctx context.Context, id int64) (appointment.Appointment, error)
}

func (f *fakeScheduler) Create(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.Appointment, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return appointment.Appointment{}, nil
}

func (f *fakeScheduler) List(ctx context.Context, filter appointment.ListFilter) ([]appointment.Appointment, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return []appointment.Appointment{}, nil
}

func (f *fakeScheduler) GetByID(ctx context.Context, id int64) (appointment.Appointment, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return appointment.Appointment{}, nil
}

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func TestCreateAppointmentHandler(t *testing.T) {
	stored := appointment.Appointment{
		ID:          7,
		ClientID:    1,
		StaffID:     2,
		ServiceName: "Haircut",
		StartTime:   time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC),
		CreatedAt:   time.Now().UTC(),
	}

	tests := []struct {
		name           string
		body           string
		schedulerSetUp func(*fakeScheduler)
		wantStatusCode int
		wantErrCode    string
	}{
		{
			name: "success",
			body: `{
				"client_id": 1,
				"staff_id": 2,
				"service_name": "Haircut",
				"start_time": "2025-01-01T10:00:00Z",
				"end_time": "2025-01-01T11:00:00Z",
				"price": 45.5
			}`,
			schedulerSetUp: func(f *fakeScheduler) {
				f.createFn = func(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.Appointment, error) {
					return stored, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			// zone-less timestamps are the original wire format; still accepted
			name: "naive_timestamps",
			body: `{
				"client_id": 1,
				"staff_id": 2,
				"service_name": "Haircut",
				"start_time": "2025-01-01T10:00:00",
				"end_time": "2025-01-01T11:00:00"
			}`,
			schedulerSetUp: func(f *fakeScheduler) {
				f.createFn = func(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.Appointment, error) {
					if req.StartTime.Hour() != 10 || req.EndTime.Hour() != 11 {
						t.Errorf("timestamps parsed wrong: %v - %v", req.StartTime, req.EndTime)
					}
					return stored, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "inverted_time_range",
			body: `{
				"client_id": 1,
				"staff_id": 2,
				"service_name": "Haircut",
				"start_time": "2025-01-01T10:00:00",
				"end_time": "2025-01-01T09:00:00"
			}`,
			schedulerSetUp: func(f *fakeScheduler) {
				f.createFn = func(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.Appointment, error) {
					return appointment.Appointment{}, appointment.ErrInvalidTimeRange
				}
			},
			wantStatusCode: http.StatusBadRequest,
			wantErrCode:    "invalid_time_range",
		},
		{
			name: "unknown_client",
			body: `{
				"client_id": 999,
				"staff_id": 2,
				"service_name": "Haircut",
				"start_time": "2025-01-01T10:00:00Z",
				"end_time": "2025-01-01T11:00:00Z"
			}`,
			schedulerSetUp: func(f *fakeScheduler) {
				f.createFn = func(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.Appointment, error) {
					return appointment.Appointment{}, appointment.ErrClientNotFound
				}
			},
			wantStatusCode: http.StatusBadRequest,
			wantErrCode:    "invalid_reference",
		},
		{
			name: "unknown_staff",
			body: `{
				"client_id": 1,
				"staff_id": 999,
				"service_name": "Haircut",
				"start_time": "2025-01-01T10:00:00Z",
				"end_time": "2025-01-01T11:00:00Z"
			}`,
			schedulerSetUp: func(f *fakeScheduler) {
				f.createFn = func(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.Appointment, error) {
					return appointment.Appointment{}, appointment.ErrStaffNotFound
				}
			},
			wantStatusCode: http.StatusBadRequest,
			wantErrCode:    "invalid_reference",
		},
		{
			name:           "missing_fields",
			body:           `{"client_id": 1}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "unparseable_timestamp",
			body: `{
				"client_id": 1,
				"staff_id": 2,
				"service_name": "Haircut",
				"start_time": "next tuesday",
				"end_time": "2025-01-01T11:00:00Z"
			}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "storage_error",
			body: `{
				"client_id": 1,
				"staff_id": 2,
				"service_name": "Haircut",
				"start_time": "2025-01-01T10:00:00Z",
				"end_time": "2025-01-01T11:00:00Z"
			}`,
			schedulerSetUp: func(f *fakeScheduler) {
				f.createFn = func(ctx context.Context, req appointment.CreateAppointmentRequest) (appointment.Appointment, error) {
					return appointment.Appointment{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeScheduler{}

			if tt.schedulerSetUp != nil {
				tt.schedulerSetUp(fake)
			}

			h := handlers.NewAppointmentsHandler(fake)

			r := setupRouter(http.MethodPost, "/appointments", h.CreateAppointment)

			w := postJSON(r, "/appointments", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantErrCode != "" {
				var resp struct {
					Error struct {
						Code string `json:"code"`
					} `json:"error"`
				}

				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshal error body: %v", err)
				}

				if resp.Error.Code != tt.wantErrCode {
					t.Errorf("got error code %q, want %q", resp.Error.Code, tt.wantErrCode)
				}
			}
		})
	}
}

func TestListAppointmentsHandler(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		wantStatusCode int
		wantFrom       bool
		wantTo         bool
	}{
		{name: "no_filters", query: "", wantStatusCode: http.StatusOK},
		{name: "start_only", query: "?start=2025-01-01T00:00:00Z", wantStatusCode: http.StatusOK, wantFrom: true},
		{name: "end_only", query: "?end=2025-02-01T00:00:00Z", wantStatusCode: http.StatusOK, wantTo: true},
		{name: "both", query: "?start=2025-01-01T00:00:00Z&end=2025-02-01T00:00:00Z", wantStatusCode: http.StatusOK, wantFrom: true, wantTo: true},
		{name: "naive_bounds", query: "?start=2025-01-01T00:00:00", wantStatusCode: http.StatusOK, wantFrom: true},
		{name: "bad_start", query: "?start=yesterday", wantStatusCode: http.StatusBadRequest},
		{name: "bad_end", query: "?end=tomorrow", wantStatusCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFilter appointment.ListFilter

			fake := &fakeScheduler{
				listFn: func(ctx context.Context, filter appointment.ListFilter) ([]appointment.Appointment, error) {
					gotFilter = filter
					return []appointment.Appointment{}, nil
				},
			}

			h := handlers.NewAppointmentsHandler(fake)
			r := setupRouter(http.MethodGet, "/appointments", h.ListAppointments)

			req := httptest.NewRequest(http.MethodGet, "/appointments"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode != http.StatusOK {
				return
			}

			if (gotFilter.From != nil) != tt.wantFrom {
				t.Errorf("From bound: got %v, want present=%v", gotFilter.From, tt.wantFrom)
			}

			if (gotFilter.To != nil) != tt.wantTo {
				t.Errorf("To bound: got %v, want present=%v", gotFilter.To, tt.wantTo)
			}
		})
	}
}

func TestGetAppointmentByID(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		getFn          func(ctx context.Context, id int64) (appointment.Appointment, error)
		wantStatusCode int
	}{
		{
			name: "found",
			path: "/appointments/7",
			getFn: func(ctx context.Context, id int64) (appointment.Appointment, error) {
				return appointment.Appointment{ID: id}, nil
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "not_found",
			path: "/appointments/8",
			getFn: func(ctx context.Context, id int64) (appointment.Appointment, error) {
				return appointment.Appointment{}, appointment.ErrNotFound
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "bad_id",
			path:           "/appointments/abc",
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeScheduler{getFn: tt.getFn}

			h := handlers.NewAppointmentsHandler(fake)
			r := setupRouter(http.MethodGet, "/appointments/:id", h.GetAppointmentByID)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}
