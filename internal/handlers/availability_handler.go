package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Dzoc98/barbersite/internal/services"
)

type AvailabilityHandler struct {
	service availabilityService
}

type availabilityService interface {
	AvailableSlots(ctx context.Context, day time.Time, serviceID int64) ([]time.Time, error)
}

func NewAvailabilityHandler(service *services.BookingService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

func (h *AvailabilityHandler) GetAvailableSlots(c *fiber.Ctx) error {
	dateStr := strings.TrimSpace(c.Query("date"))
	serviceIDStr := strings.TrimSpace(c.Query("serviceId"))
	if dateStr == "" || serviceIDStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date and serviceId are required"})
	}

	day, err := parseDateParam(dateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be an ISO8601 date"})
	}
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil || serviceID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "serviceId must be a positive integer"})
	}

	slots, err := h.service.AvailableSlots(c.Context(), day, serviceID)
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return c.JSON(fiber.Map{"availableSlots": slots})
}
