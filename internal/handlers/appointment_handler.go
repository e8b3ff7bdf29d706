package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Dzoc98/barbersite/internal/models"
	"github.com/Dzoc98/barbersite/internal/repository"
	"github.com/Dzoc98/barbersite/internal/services"
)

type AppointmentHandler struct {
	service bookingApplicationService
}

type bookingApplicationService interface {
	Book(ctx context.Context, input services.BookAppointmentInput) (*models.Appointment, error)
	ListAppointments(ctx context.Context, filter repository.AppointmentListFilter) ([]models.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, input services.UpdateAppointmentInput) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id int64) error
}

func NewAppointmentHandler(service *services.BookingService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type bookAppointmentRequest struct {
	UserID          int64  `json:"userId"`
	ServiceID       int64  `json:"serviceId"`
	AppointmentDate string `json:"appointmentDate"`
}

type updateAppointmentRequest struct {
	Status           *string `json:"status"`
	NotificationSent *bool   `json:"notificationSent"`
}

func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	var req bookAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	startsAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.AppointmentDate))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "appointmentDate must be a valid RFC3339 timestamp"})
	}

	appointment, err := h.service.Book(c.Context(), services.BookAppointmentInput{
		UserID:    req.UserID,
		ServiceID: req.ServiceID,
		StartsAt:  startsAt,
	})
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	filter := repository.AppointmentListFilter{}

	if userIDStr := strings.TrimSpace(c.Query("userId")); userIDStr != "" {
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId must be a positive integer"})
		}
		filter.UserID = userID
	}
	if dateStr := strings.TrimSpace(c.Query("date")); dateStr != "" {
		date, err := parseDateParam(dateStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be an ISO8601 date"})
		}
		filter.Date = &date
	}

	appointments, err := h.service.ListAppointments(c.Context(), filter)
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return c.JSON(appointments)
}

func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	appointmentID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment id"})
	}

	appointment, err := h.service.GetAppointment(c.Context(), appointmentID)
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return c.JSON(appointment)
}

func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	appointmentID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment id"})
	}

	var req updateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	appointment, err := h.service.UpdateAppointment(c.Context(), appointmentID, services.UpdateAppointmentInput{
		Status:           req.Status,
		NotificationSent: req.NotificationSent,
	})
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return c.JSON(appointment)
}

func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	appointmentID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment id"})
	}

	if err := h.service.CancelAppointment(c.Context(), appointmentID); err != nil {
		return mapAppointmentError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}

// parseDateParam accepts both a plain date and a full RFC3339 timestamp,
// matching what the booking page sends for day selection.
func parseDateParam(value string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date, nil
	}
	return time.Parse(time.RFC3339, value)
}

func mapAppointmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrOutsideBusinessHours),
		errors.Is(err, services.ErrOffSlotGrid),
		errors.Is(err, services.ErrRunsPastClosing),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrServiceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This time slot is already booked"})
	case errors.Is(err, services.ErrInvalidStateTransition):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process appointment request"})
	}
}
