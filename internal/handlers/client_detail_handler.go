package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Dzoc98/barbersite/internal/repository"
)

type ClientDetailHandler struct {
	clientDetailRepo *repository.ClientDetailRepository
	userRepo         *repository.UserRepository
}

func NewClientDetailHandler(
	clientDetailRepo *repository.ClientDetailRepository,
	userRepo *repository.UserRepository,
) *ClientDetailHandler {
	return &ClientDetailHandler{
		clientDetailRepo: clientDetailRepo,
		userRepo:         userRepo,
	}
}

type updateClientDetailRequest struct {
	CoffeePreference *string `json:"coffeePreference"`
	LastHaircut      *string `json:"lastHaircut"`
	Notes            *string `json:"notes"`
}

func (h *ClientDetailHandler) GetClientDetail(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	detail, err := h.clientDetailRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client detail not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get client detail"})
	}

	return c.JSON(detail)
}

func (h *ClientDetailHandler) UpdateClientDetail(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	if _, err := h.userRepo.GetByID(c.Context(), userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get user"})
	}

	var req updateClientDetailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	detail, err := h.clientDetailRepo.Update(c.Context(), userID, repository.UpdateClientDetailInput{
		CoffeePreference: req.CoffeePreference,
		LastHaircut:      req.LastHaircut,
		Notes:            req.Notes,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client detail not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update client detail"})
	}

	return c.JSON(detail)
}

func parseUserIDParam(c *fiber.Ctx) (int64, error) {
	userID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return 0, strconv.ErrSyntax
	}
	return userID, nil
}
