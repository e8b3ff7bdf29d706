package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Dzoc98/barbersite/internal/models"
	"github.com/Dzoc98/barbersite/internal/repository"
)

type ServiceHandler struct {
	serviceRepo serviceCatalogue
}

type serviceCatalogue interface {
	List(ctx context.Context) ([]models.Service, error)
	GetByID(ctx context.Context, id int64) (*models.Service, error)
}

func NewServiceHandler(serviceRepo *repository.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{serviceRepo: serviceRepo}
}

func (h *ServiceHandler) ListServices(c *fiber.Ctx) error {
	services, err := h.serviceRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get services"})
	}
	return c.JSON(services)
}

func (h *ServiceHandler) GetService(c *fiber.Ctx) error {
	serviceID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service id"})
	}

	service, err := h.serviceRepo.GetByID(c.Context(), serviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get service"})
	}
	return c.JSON(service)
}
