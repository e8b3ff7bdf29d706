package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Dzoc98/barbersite/internal/models"
	"github.com/Dzoc98/barbersite/internal/repository"
	"github.com/Dzoc98/barbersite/internal/services"
)

type stubBookingService struct {
	bookResult    *models.Appointment
	bookErr       error
	listResult    []models.Appointment
	listErr       error
	getResult     *models.Appointment
	getErr        error
	updateResult  *models.Appointment
	updateErr     error
	cancelErr     error
	slotsResult   []time.Time
	slotsErr      error
	lastBookInput services.BookAppointmentInput
	lastID        int64
	lastUpdate    services.UpdateAppointmentInput
	lastFilter    repository.AppointmentListFilter
	lastDay       time.Time
	lastServiceID int64
}

func (s *stubBookingService) Book(_ context.Context, input services.BookAppointmentInput) (*models.Appointment, error) {
	s.lastBookInput = input
	return s.bookResult, s.bookErr
}

func (s *stubBookingService) ListAppointments(_ context.Context, filter repository.AppointmentListFilter) ([]models.Appointment, error) {
	s.lastFilter = filter
	return s.listResult, s.listErr
}

func (s *stubBookingService) GetAppointment(_ context.Context, id int64) (*models.Appointment, error) {
	s.lastID = id
	return s.getResult, s.getErr
}

func (s *stubBookingService) UpdateAppointment(_ context.Context, id int64, input services.UpdateAppointmentInput) (*models.Appointment, error) {
	s.lastID = id
	s.lastUpdate = input
	return s.updateResult, s.updateErr
}

func (s *stubBookingService) CancelAppointment(_ context.Context, id int64) error {
	s.lastID = id
	return s.cancelErr
}

func (s *stubBookingService) AvailableSlots(_ context.Context, day time.Time, serviceID int64) ([]time.Time, error) {
	s.lastDay = day
	s.lastServiceID = serviceID
	return s.slotsResult, s.slotsErr
}

func newAppointmentTestApp(service *stubBookingService) *fiber.App {
	handler := &AppointmentHandler{service: service}

	app := fiber.New()
	app.Get("/api/appointments", handler.List)
	app.Post("/api/appointments", handler.Book)
	app.Get("/api/appointments/:id", handler.Get)
	app.Put("/api/appointments/:id", handler.Update)
	app.Delete("/api/appointments/:id", handler.Delete)
	return app
}

func TestBookAppointmentReturnsCreated(t *testing.T) {
	service := &stubBookingService{
		bookResult: &models.Appointment{
			ID:        12,
			UserID:    3,
			ServiceID: 2,
			StartsAt:  time.Date(2030, 6, 12, 10, 0, 0, 0, time.UTC),
			Status:    "pending",
		},
	}
	app := newAppointmentTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(`{
		"userId": 3,
		"serviceId": 2,
		"appointmentDate": "2030-06-12T10:00:00Z"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastBookInput.UserID != 3 || service.lastBookInput.ServiceID != 2 {
		t.Fatalf("unexpected booking input: %+v", service.lastBookInput)
	}
	if !service.lastBookInput.StartsAt.Equal(time.Date(2030, 6, 12, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start time: %v", service.lastBookInput.StartsAt)
	}

	var body models.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.ID != 12 || body.Status != "pending" {
		t.Fatalf("unexpected response body: %+v", body)
	}
}

func TestBookAppointmentRejectsMalformedTimestamp(t *testing.T) {
	app := newAppointmentTestApp(&stubBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(`{
		"userId": 3,
		"serviceId": 2,
		"appointmentDate": "next tuesday"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestBookAppointmentMapsServiceErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"off grid", services.ErrOffSlotGrid, http.StatusBadRequest},
		{"outside business hours", services.ErrOutsideBusinessHours, http.StatusBadRequest},
		{"runs past closing", services.ErrRunsPastClosing, http.StatusBadRequest},
		{"conflict", services.ErrConflict, http.StatusConflict},
		{"unknown user", services.ErrUserNotFound, http.StatusNotFound},
		{"unknown service", services.ErrServiceNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newAppointmentTestApp(&stubBookingService{bookErr: tc.err})

			req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(`{
				"userId": 3,
				"serviceId": 2,
				"appointmentDate": "2030-06-12T09:07:00Z"
			}`))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestListAppointmentsPassesFilter(t *testing.T) {
	service := &stubBookingService{
		listResult: []models.Appointment{{ID: 4, Status: "pending"}},
	}
	app := newAppointmentTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/appointments?userId=7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastFilter.UserID != 7 {
		t.Fatalf("expected userId filter 7, got %d", service.lastFilter.UserID)
	}
	if service.lastFilter.Date != nil {
		t.Fatalf("expected no date filter, got %v", service.lastFilter.Date)
	}
}

func TestUpdateAppointmentForwardsStatus(t *testing.T) {
	service := &stubBookingService{
		updateResult: &models.Appointment{ID: 9, Status: "completed", NotificationSent: true},
	}
	app := newAppointmentTestApp(service)

	req := httptest.NewRequest(http.MethodPut, "/api/appointments/9", strings.NewReader(`{"status": "completed"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastID != 9 {
		t.Fatalf("expected id 9, got %d", service.lastID)
	}
	if service.lastUpdate.Status == nil || *service.lastUpdate.Status != "completed" {
		t.Fatalf("expected status completed, got %+v", service.lastUpdate.Status)
	}

	var body models.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.NotificationSent {
		t.Fatal("expected notificationSent true after completion")
	}
}

func TestUpdateAppointmentNotFound(t *testing.T) {
	app := newAppointmentTestApp(&stubBookingService{updateErr: pgx.ErrNoRows})

	req := httptest.NewRequest(http.MethodPut, "/api/appointments/99", strings.NewReader(`{"status": "completed"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteAppointmentReturnsNoContent(t *testing.T) {
	service := &stubBookingService{}
	app := newAppointmentTestApp(service)

	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/5", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if service.lastID != 5 {
		t.Fatalf("expected id 5, got %d", service.lastID)
	}
}

func TestDeleteAppointmentNotFound(t *testing.T) {
	app := newAppointmentTestApp(&stubBookingService{cancelErr: pgx.ErrNoRows})

	req := httptest.NewRequest(http.MethodDelete, "/api/appointments/5", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
