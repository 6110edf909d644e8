package repository

import (
	"go-retail-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAllActive() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	Deactivate(id uuid.UUID, updatedBy string) error
	UpdateLastPurchasePrice(tx *gorm.DB, id uuid.UUID, price int64, updatedBy string) error
	CountActive() (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAllActive() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// Deactivate soft-disables a product. Physical delete tidak pernah dilakukan
// supaya purchase/sale lama tetap bisa resolve product-nya.
func (r *productRepo) Deactivate(id uuid.UUID, updatedBy string) error {
	return r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": updatedBy,
		}).Error
}

// UpdateLastPurchasePrice menerima *gorm.DB (tx) agar bisa berjalan dalam transaksi
func (r *productRepo) UpdateLastPurchasePrice(tx *gorm.DB, id uuid.UUID, price int64, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_purchase_price": price,
			"updated_by":          updatedBy,
		}).Error
}

func (r *productRepo) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
