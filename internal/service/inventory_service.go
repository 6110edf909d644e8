package service

import (
	"errors"
	"fmt"

	"go-retail-ws/internal/model"
	"go-retail-ws/internal/repository"
	"go-retail-ws/internal/ws"
	"go-retail-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryService interface {
	CreateProduct(req *model.Product, userID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error)
	DeactivateProduct(id uuid.UUID, userID string) error
	GetActiveProducts() ([]model.Product, error)
	RecordPurchase(req *model.PurchaseEntry, userID string) error
	RecordSale(req *model.SaleEntry, userID string) error
	GetPurchases() ([]model.PurchaseEntry, error)
	GetSales() ([]model.SaleEntry, error)
	GetSettings() (*model.AppSettings, error)
	UpdateSettings(req *model.AppSettings) (*model.AppSettings, error)
}

type inventoryService struct {
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewInventoryService(
	pRepo repository.ProductRepository,
	purRepo repository.PurchaseRepository,
	sRepo repository.SaleRepository,
	setRepo repository.SettingsRepository,
	db *gorm.DB,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		productRepo:  pRepo,
		purchaseRepo: purRepo,
		saleRepo:     sRepo,
		settingsRepo: setRepo,
		db:           db,
		wsHub:        hub,
	}
}

func firstValidationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
}

func (s *inventoryService) CreateProduct(req *model.Product, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return firstValidationError(errs)
	}

	// Markup dan threshold kosong diisi default dari settings
	if req.MarkupPercent == 0 || req.AlertThreshold == 0 {
		settings, err := s.settingsRepo.Get()
		if err == nil {
			if req.MarkupPercent == 0 {
				req.MarkupPercent = settings.DefaultMarkupPercent
			}
			if req.AlertThreshold == 0 {
				req.AlertThreshold = settings.DefaultAlertThreshold
			}
		}
	}

	req.IsActive = true
	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	go s.wsHub.PublishEvent("product_created", map[string]interface{}{
		"product": map[string]interface{}{
			"id":   req.ID,
			"name": req.Name,
			"unit": req.Unit,
		},
	})

	return nil
}

func (s *inventoryService) UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error) {
	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		// Cari & Lock Product (Pessimistic Locking)
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&existing, "id = ?", id).Error; err != nil {
			return errors.New("product not found")
		}

		existing.Name = req.Name
		existing.Unit = req.Unit
		existing.MarkupPercent = req.MarkupPercent
		existing.AlertThreshold = req.AlertThreshold
		existing.UpdatedBy = userID

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.wsHub.PublishEvent("product_updated", map[string]interface{}{
		"product": map[string]interface{}{
			"id":   updated.ID,
			"name": updated.Name,
		},
	})

	return updated, nil
}

// DeactivateProduct soft-disables; products are never physically deleted.
func (s *inventoryService) DeactivateProduct(id uuid.UUID, userID string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return errors.New("product not found")
	}
	return s.productRepo.Deactivate(id, userID)
}

func (s *inventoryService) GetActiveProducts() ([]model.Product, error) {
	return s.productRepo.FindAllActive()
}

// RecordPurchase writes a "nhập hàng" entry and snapshots the new purchase
// price onto the product. Entries are immutable once created.
func (s *inventoryService) RecordPurchase(req *model.PurchaseEntry, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return firstValidationError(errs)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", req.ProductID).Error; err != nil {
			return errors.New("product not found")
		}

		// Giá bán gợi ý dari giá nhập + markup
		product.LastPurchasePrice = req.UnitCost
		req.SuggestedPrice = product.SuggestedPrice()
		req.CreatedBy = userID
		req.UpdatedBy = userID

		if err := s.purchaseRepo.Create(tx, req); err != nil {
			return err
		}
		if err := s.productRepo.UpdateLastPurchasePrice(tx, product.ID, req.UnitCost, userID); err != nil {
			return err
		}

		go s.wsHub.PublishEvent("purchase_recorded", map[string]interface{}{
			"entry": map[string]interface{}{
				"id":         req.ID,
				"product_id": product.ID,
				"product":    product.Name,
				"quantity":   req.Quantity,
				"unit_cost":  req.UnitCost,
			},
		})

		return nil
	})
}

// RecordSale writes a "bán hàng" entry. The unit cost is snapshotted from
// the product's last purchase price at record time and never recomputed.
// No stock floor is enforced: overselling produces a negative inventory
// level, which the reports surface as a data error instead of hiding.
func (s *inventoryService) RecordSale(req *model.SaleEntry, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return firstValidationError(errs)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", req.ProductID).Error; err != nil {
			return errors.New("product not found")
		}

		req.UnitCost = product.LastPurchasePrice
		req.CreatedBy = userID
		req.UpdatedBy = userID

		if err := s.saleRepo.Create(tx, req); err != nil {
			return err
		}

		go s.wsHub.PublishEvent("sale_recorded", map[string]interface{}{
			"entry": map[string]interface{}{
				"id":         req.ID,
				"product_id": product.ID,
				"product":    product.Name,
				"quantity":   req.Quantity,
				"unit_price": req.UnitPrice,
			},
		})

		return nil
	})
}

func (s *inventoryService) GetPurchases() ([]model.PurchaseEntry, error) {
	return s.purchaseRepo.FindAll()
}

func (s *inventoryService) GetSales() ([]model.SaleEntry, error) {
	return s.saleRepo.FindAll()
}

func (s *inventoryService) GetSettings() (*model.AppSettings, error) {
	return s.settingsRepo.Get()
}

// UpdateSettings replaces the singleton record wholesale.
func (s *inventoryService) UpdateSettings(req *model.AppSettings) (*model.AppSettings, error) {
	current, err := s.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	// LastSyncedAt is owned by the sync pipeline, not the settings form.
	req.LastSyncedAt = current.LastSyncedAt
	if err := s.settingsRepo.Update(req); err != nil {
		return nil, err
	}
	return req, nil
}
