package repository

import (
	"errors"
	"time"

	"go-retail-ws/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get() (*model.AppSettings, error)
	Update(settings *model.AppSettings) error
	TouchLastSynced(at time.Time) error
}

type settingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db}
}

// Get returns the singleton settings row, creating it with defaults when the
// row does not exist yet.
func (r *settingsRepo) Get() (*model.AppSettings, error) {
	var settings model.AppSettings
	err := r.db.First(&settings, "id = ?", model.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.DefaultSettings
		if err := r.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update menimpa seluruh record (whole-record update, bukan patch).
func (r *settingsRepo) Update(settings *model.AppSettings) error {
	settings.ID = model.SettingsID
	return r.db.Save(settings).Error
}

func (r *settingsRepo) TouchLastSynced(at time.Time) error {
	return r.db.Model(&model.AppSettings{}).
		Where("id = ?", model.SettingsID).
		Update("last_synced_at", at).Error
}
