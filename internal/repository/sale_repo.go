package repository

import (
	"time"

	"go-retail-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(tx *gorm.DB, entry *model.SaleEntry) error
	FindAll() ([]model.SaleEntry, error)
	FindByDateRange(start, end time.Time) ([]model.SaleEntry, error)
	FindByID(id uuid.UUID) (*model.SaleEntry, error)
	Count() (int64, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, entry *model.SaleEntry) error {
	return tx.Create(entry).Error
}

func (r *saleRepo) FindAll() ([]model.SaleEntry, error) {
	var entries []model.SaleEntry
	err := r.db.Preload("Product").Order("date ASC, created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *saleRepo) FindByDateRange(start, end time.Time) ([]model.SaleEntry, error) {
	var entries []model.SaleEntry
	err := r.db.Preload("Product").
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC, created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.SaleEntry, error) {
	var entry model.SaleEntry
	err := r.db.Preload("Product").First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *saleRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.SaleEntry{}).Count(&count).Error
	return count, err
}
