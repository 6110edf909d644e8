package repository

import (
	"time"

	"go-retail-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(tx *gorm.DB, entry *model.PurchaseEntry) error
	FindAll() ([]model.PurchaseEntry, error)
	FindByDateRange(start, end time.Time) ([]model.PurchaseEntry, error)
	FindByID(id uuid.UUID) (*model.PurchaseEntry, error)
	Count() (int64, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) Create(tx *gorm.DB, entry *model.PurchaseEntry) error {
	return tx.Create(entry).Error
}

func (r *purchaseRepo) FindAll() ([]model.PurchaseEntry, error) {
	var entries []model.PurchaseEntry
	err := r.db.Preload("Product").Order("date ASC, created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *purchaseRepo) FindByDateRange(start, end time.Time) ([]model.PurchaseEntry, error) {
	var entries []model.PurchaseEntry
	err := r.db.Preload("Product").
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC, created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.PurchaseEntry, error) {
	var entry model.PurchaseEntry
	err := r.db.Preload("Product").First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *purchaseRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.PurchaseEntry{}).Count(&count).Error
	return count, err
}
