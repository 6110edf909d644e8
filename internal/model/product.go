package model

import "math"

// Product is a catalog item. Products are never hard-deleted; deactivating
// sets IsActive = false so historical entries keep resolving.
type Product struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Unit string `gorm:"type:varchar(20)" json:"unit"`

	// Giá nhập gần nhất - snapshot dari RecordPurchase
	LastPurchasePrice int64   `gorm:"default:0" json:"last_purchase_price"`
	MarkupPercent     float64 `gorm:"default:0" json:"markup_percent"`
	AlertThreshold    int     `gorm:"default:5" json:"alert_threshold"`
	IsActive          bool    `gorm:"default:true" json:"is_active"`

	// Relasi
	Purchases []PurchaseEntry `json:"purchases,omitempty"`
	Sales     []SaleEntry     `json:"sales,omitempty"`
}

// SuggestedPrice returns "giá bán gợi ý": last purchase price plus the
// product markup, rounded to whole đồng.
func (p *Product) SuggestedPrice() int64 {
	if p.LastPurchasePrice <= 0 {
		return 0
	}
	return int64(math.Round(float64(p.LastPurchasePrice) * (1 + p.MarkupPercent/100)))
}
