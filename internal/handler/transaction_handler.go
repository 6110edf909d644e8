package handler

import (
	"go-retail-ws/internal/model"
	"go-retail-ws/internal/service"
	"go-retail-ws/pkg/format"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	service service.InventoryService
}

func NewTransactionHandler(s service.InventoryService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

type purchaseRequest struct {
	Date      string    `json:"date"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitCost  int64     `json:"unit_cost"`
	Supplier  string    `json:"supplier"`
	Note      string    `json:"note"`
}

type saleRequest struct {
	Date      string    `json:"date"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	Customer  string    `json:"customer"`
	Note      string    `json:"note"`
}

func (h *TransactionHandler) GetPurchases(c *fiber.Ctx) error {
	entries, err := h.service.GetPurchases()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// CreatePurchase records a "nhập hàng" entry. Dates accept dd/MM/yyyy or ISO.
func (h *TransactionHandler) CreatePurchase(c *fiber.Ctx) error {
	var req purchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	date, err := format.ParseDate(req.Date)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	entry := model.PurchaseEntry{
		Date:      date,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitCost:  req.UnitCost,
		Supplier:  req.Supplier,
		Note:      req.Note,
	}

	if err := h.service.RecordPurchase(&entry, getUserID(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Purchase recorded", "data": entry})
}

func (h *TransactionHandler) GetSales(c *fiber.Ctx) error {
	entries, err := h.service.GetSales()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// CreateSale records a "bán hàng" entry. The unit cost is snapshotted
// server-side from the product's last purchase price.
func (h *TransactionHandler) CreateSale(c *fiber.Ctx) error {
	var req saleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	date, err := format.ParseDate(req.Date)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	entry := model.SaleEntry{
		Date:      date,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Customer:  req.Customer,
		Note:      req.Note,
	}

	if err := h.service.RecordSale(&entry, getUserID(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": entry})
}
