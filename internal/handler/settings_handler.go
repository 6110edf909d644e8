package handler

import (
	"go-retail-ws/internal/model"
	"go-retail-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	service service.InventoryService
}

func NewSettingsHandler(s service.InventoryService) *SettingsHandler {
	return &SettingsHandler{service: s}
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.service.GetSettings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch settings"})
	}
	return c.JSON(settings)
}

// UpdateSettings replaces the singleton record wholesale.
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var settings model.AppSettings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateSettings(&settings)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Settings updated", "data": updated})
}
