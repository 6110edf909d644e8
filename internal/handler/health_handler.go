package handler

import (
	"time"

	"go-retail-ws/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	productRepo repository.ProductRepository
}

func NewHealthHandler(productRepo repository.ProductRepository) *HealthHandler {
	return &HealthHandler{productRepo: productRepo}
}

// Check runs one lightweight count query. External uptime pingers hit this
// endpoint to keep the managed backend from idling.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	count, err := h.productRepo.CountActive()
	if err != nil {
		return c.Status(503).JSON(fiber.Map{
			"status": "degraded",
			"error":  err.Error(),
			"time":   time.Now().Format(time.RFC3339),
		})
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"products": count,
		"time":     time.Now().Format(time.RFC3339),
	})
}
