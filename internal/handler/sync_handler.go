package handler

import (
	"strconv"
	"time"

	"go-retail-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SyncHandler struct {
	service service.SyncService
}

func NewSyncHandler(s service.SyncService) *SyncHandler {
	return &SyncHandler{service: s}
}

// SyncYear runs the spreadsheet sync for /sync/:year. Concurrent syncs for
// the same year race on the sheet; callers must serialize.
func (h *SyncHandler) SyncYear(c *fiber.Ctx) error {
	yearParam := c.Params("year")
	year, err := strconv.Atoi(yearParam)
	if err != nil || year < 2000 || year > time.Now().Year()+1 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid year"})
	}

	result, err := h.service.SyncYear(c.Context(), year)
	if err != nil {
		return c.Status(502).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Sync completed", "data": result})
}
