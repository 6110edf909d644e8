package model

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseEntry adalah transaksi "nhập hàng" (stock-in).
// Immutable: tidak ada route update/delete untuk entry ini.
type PurchaseEntry struct {
	BaseModel
	Date      time.Time `gorm:"type:date;not null;index" json:"date" validate:"required"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   Product   `json:"product" validate:"-"` // Relasi - skip validation
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitCost  int64     `gorm:"not null" json:"unit_cost" validate:"gte=0"`

	// Giá bán gợi ý yang dihitung saat nhập
	SuggestedPrice int64  `gorm:"default:0" json:"suggested_price"`
	Supplier       string `gorm:"type:varchar(255)" json:"supplier"`
	Note           string `json:"note"`
}

// LineTotal = quantity * unit cost.
func (p *PurchaseEntry) LineTotal() int64 {
	return int64(p.Quantity) * p.UnitCost
}
