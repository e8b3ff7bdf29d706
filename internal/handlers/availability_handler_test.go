package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Dzoc98/barbersite/internal/services"
)

func newAvailabilityTestApp(service *stubBookingService) *fiber.App {
	handler := &AvailabilityHandler{service: service}

	app := fiber.New()
	app.Get("/api/available-slots", handler.GetAvailableSlots)
	return app
}

func TestGetAvailableSlotsReturnsOrderedTimestamps(t *testing.T) {
	day := time.Date(2030, 6, 12, 0, 0, 0, 0, time.UTC)
	service := &stubBookingService{
		slotsResult: []time.Time{
			day.Add(9 * time.Hour),
			day.Add(9*time.Hour + 10*time.Minute),
			day.Add(9*time.Hour + 20*time.Minute),
		},
	}
	app := newAvailabilityTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/available-slots?date=2030-06-12&serviceId=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastServiceID != 2 {
		t.Fatalf("expected serviceId 2, got %d", service.lastServiceID)
	}
	if !service.lastDay.Equal(day) {
		t.Fatalf("expected day %v, got %v", day, service.lastDay)
	}

	var body struct {
		AvailableSlots []time.Time `json:"availableSlots"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.AvailableSlots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(body.AvailableSlots))
	}
	for i := 1; i < len(body.AvailableSlots); i++ {
		if !body.AvailableSlots[i-1].Before(body.AvailableSlots[i]) {
			t.Fatalf("slots out of order: %v then %v", body.AvailableSlots[i-1], body.AvailableSlots[i])
		}
	}
}

func TestGetAvailableSlotsRequiresParams(t *testing.T) {
	app := newAvailabilityTestApp(&stubBookingService{})

	for _, target := range []string{
		"/api/available-slots",
		"/api/available-slots?date=2030-06-12",
		"/api/available-slots?serviceId=2",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, resp.StatusCode)
		}
	}
}

func TestGetAvailableSlotsUnknownService(t *testing.T) {
	app := newAvailabilityTestApp(&stubBookingService{slotsErr: services.ErrServiceNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/available-slots?date=2030-06-12&serviceId=99", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetAvailableSlotsEmptyDayIsNotAnError(t *testing.T) {
	app := newAvailabilityTestApp(&stubBookingService{slotsResult: []time.Time{}})

	req := httptest.NewRequest(http.MethodGet, "/api/available-slots?date=2030-06-12&serviceId=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for fully booked day, got %d", resp.StatusCode)
	}

	var body struct {
		AvailableSlots []time.Time `json:"availableSlots"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.AvailableSlots) != 0 {
		t.Fatalf("expected no slots, got %d", len(body.AvailableSlots))
	}
}
