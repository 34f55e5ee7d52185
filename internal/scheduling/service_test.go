package scheduling_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chiemelie/bookhub/internal/domain/appointment"
	"github.com/chiemelie/bookhub/internal/domain/client"
	"github.com/chiemelie/bookhub/internal/repo/memory"
	"github.com/chiemelie/bookhub/internal/scheduling"
)

// fixture builds a service backed by memory repos with one client and one
// staff user already present.
func fixture(t *testing.T) (*scheduling.Service, client.Client, int64) {
	t.Helper()

	ctx := context.Background()

	users := memory.NewUsersRepo()
	clients := memory.NewClientsRepo()
	appointments := memory.NewAppointmentsRepo()

	staff, err := users.Create(ctx, "alice@example.com", "Alice", "owner", "hash")
	if err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	jo, err := clients.Create(ctx, client.CreateClientRequest{FirstName: "Jo", LastName: "Doe"})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}

	return scheduling.NewService(appointments, clients, users, nil), jo, staff.ID
}

func at(hour int) time.Time {
	return time.Date(2025, 1, 1, hour, 0, 0, 0, time.UTC)
}

func TestCreateAppointment(t *testing.T) {
	tests := []struct {
		name     string
		clientID func(realID int64) int64
		staffID  func(realID int64) int64
		start    time.Time
		end      time.Time
		wantErr  error
	}{
		{
			name:     "success",
			clientID: func(id int64) int64 { return id },
			staffID:  func(id int64) int64 { return id },
			start:    at(10),
			end:      at(11),
		},
		{
			name:     "end_before_start",
			clientID: func(id int64) int64 { return id },
			staffID:  func(id int64) int64 { return id },
			start:    at(10),
			end:      at(9),
			wantErr:  appointment.ErrInvalidTimeRange,
		},
		{
			name:     "end_equals_start",
			clientID: func(id int64) int64 { return id },
			staffID:  func(id int64) int64 { return id },
			start:    at(10),
			end:      at(10),
			wantErr:  appointment.ErrInvalidTimeRange,
		},
		{
			name: "time_range_checked_before_references",
			// both references are bogus, but the time range error wins
			clientID: func(int64) int64 { return 9999 },
			staffID:  func(int64) int64 { return 9999 },
			start:    at(10),
			end:      at(9),
			wantErr:  appointment.ErrInvalidTimeRange,
		},
		{
			name:     "unknown_client",
			clientID: func(int64) int64 { return 9999 },
			staffID:  func(id int64) int64 { return id },
			start:    at(10),
			end:      at(11),
			wantErr:  appointment.ErrClientNotFound,
		},
		{
			name:     "unknown_staff",
			clientID: func(id int64) int64 { return id },
			staffID:  func(int64) int64 { return 9999 },
			start:    at(10),
			end:      at(11),
			wantErr:  appointment.ErrStaffNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, jo, staffID := fixture(t)

			a, err := svc.Create(context.Background(), appointment.CreateAppointmentRequest{
				ClientID:    tt.clientID(jo.ID),
				StaffID:     tt.staffID(staffID),
				ServiceName: "Haircut",
				StartTime:   tt.start,
				EndTime:     tt.end,
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got err %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			if a.ID <= 0 {
				t.Errorf("stored appointment id should be positive, got %d", a.ID)
			}

			if a.CreatedAt.IsZero() {
				t.Error("stored appointment should carry a creation timestamp")
			}
		})
	}
}

// Overlapping bookings for the same staff member both succeed: there is no
// double-booking prevention.
func TestOverlappingAppointmentsBothSucceed(t *testing.T) {
	svc, jo, staffID := fixture(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, appointment.CreateAppointmentRequest{
		ClientID:    jo.ID,
		StaffID:     staffID,
		ServiceName: "Haircut",
		StartTime:   at(10),
		EndTime:     at(11),
	})
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	second, err := svc.Create(ctx, appointment.CreateAppointmentRequest{
		ClientID:    jo.ID,
		StaffID:     staffID,
		ServiceName: "Coloring",
		StartTime:   at(10).Add(30 * time.Minute),
		EndTime:     at(12),
	})
	if err != nil {
		t.Fatalf("overlapping booking failed: %v", err)
	}

	if first.ID == second.ID {
		t.Error("two bookings got the same id")
	}
}

func TestListFilteringAndOrdering(t *testing.T) {
	svc, jo, staffID := fixture(t)
	ctx := context.Background()

	// inserted out of order on purpose
	for _, hours := range [][2]int{{14, 15}, {9, 10}, {11, 13}} {
		_, err := svc.Create(ctx, appointment.CreateAppointmentRequest{
			ClientID:    jo.ID,
			StaffID:     staffID,
			ServiceName: "Haircut",
			StartTime:   at(hours[0]),
			EndTime:     at(hours[1]),
		})
		if err != nil {
			t.Fatalf("seed booking: %v", err)
		}
	}

	from := at(9)
	to := at(13)

	tests := []struct {
		name       string
		filter     appointment.ListFilter
		wantStarts []int
	}{
		{name: "no_filter", filter: appointment.ListFilter{}, wantStarts: []int{9, 11, 14}},
		{name: "start_after", filter: appointment.ListFilter{From: &from}, wantStarts: []int{9, 11, 14}},
		{name: "end_before", filter: appointment.ListFilter{To: &to}, wantStarts: []int{9, 11}},
		{name: "both", filter: appointment.ListFilter{From: &from, To: &to}, wantStarts: []int{9, 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.filter)

			if err != nil {
				t.Fatalf("List failed: %v", err)
			}

			if len(got) != len(tt.wantStarts) {
				t.Fatalf("got %d appointments, want %d", len(got), len(tt.wantStarts))
			}

			for i, a := range got {
				if a.StartTime.Hour() != tt.wantStarts[i] {
					t.Errorf("position %d: got start hour %d, want %d", i, a.StartTime.Hour(), tt.wantStarts[i])
				}

				if tt.filter.From != nil && a.StartTime.Before(*tt.filter.From) {
					t.Errorf("appointment %d starts before the From bound", a.ID)
				}

				if tt.filter.To != nil && a.EndTime.After(*tt.filter.To) {
					t.Errorf("appointment %d ends after the To bound", a.ID)
				}
			}
		})
	}
}

func TestListTiesBreakByInsertionOrder(t *testing.T) {
	svc, jo, staffID := fixture(t)
	ctx := context.Background()

	for _, service := range []string{"First", "Second"} {
		_, err := svc.Create(ctx, appointment.CreateAppointmentRequest{
			ClientID:    jo.ID,
			StaffID:     staffID,
			ServiceName: service,
			StartTime:   at(10),
			EndTime:     at(11),
		})
		if err != nil {
			t.Fatalf("seed booking: %v", err)
		}
	}

	got, err := svc.List(ctx, appointment.ListFilter{})

	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d appointments, want 2", len(got))
	}

	if got[0].ServiceName != "First" || got[1].ServiceName != "Second" {
		t.Errorf("ties should keep insertion order, got %q then %q", got[0].ServiceName, got[1].ServiceName)
	}
}
