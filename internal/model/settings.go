package model

import "time"

// SettingsID is the fixed primary key of the singleton AppSettings row.
const SettingsID uint = 1

// AppSettings is a singleton record, updated wholesale via PUT /settings.
type AppSettings struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	DefaultMarkupPercent  float64    `gorm:"default:20" json:"default_markup_percent"`
	DefaultAlertThreshold int        `gorm:"default:5" json:"default_alert_threshold"`
	BackupReminder        bool       `gorm:"default:false" json:"backup_reminder"`
	SyncReminder          bool       `gorm:"default:false" json:"sync_reminder"`
	LastSyncedAt          *time.Time `json:"last_synced_at,omitempty"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// DefaultSettings is created on first boot when the singleton row is missing.
var DefaultSettings = AppSettings{
	ID:                    SettingsID,
	DefaultMarkupPercent:  20,
	DefaultAlertThreshold: 5,
}
