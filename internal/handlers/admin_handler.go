package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ottlabs/ott-platform/internal/dto"
	"github.com/ottlabs/ott-platform/internal/services"
)

// AdminHandler exposes the administrative trigger surface: list inactive
// users, run the notification job now, delete a user by id. Each maps 1:1
// onto a service contract and returns its structured result as JSON.
type AdminHandler struct {
	notifications *services.NotificationService
	thresholdDays int
}

func NewAdminHandler(notifications *services.NotificationService, thresholdDays int) *AdminHandler {
	return &AdminHandler{notifications: notifications, thresholdDays: thresholdDays}
}

func (h *AdminHandler) ListInactiveUsers(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", h.thresholdDays)
	if threshold <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "threshold must be a positive number of days",
		})
	}

	users, err := h.notifications.FindInactiveUsers(threshold)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(users),
		"users":   users,
	})
}

func (h *AdminHandler) RunNotificationJob(c *fiber.Ctx) error {
	result := h.notifications.RunJob()
	if !result.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}
	return c.JSON(result)
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	deleted, err := h.notifications.DeleteUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "error": "user not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "deleted_rows": deleted})
}
