package model

import (
	"time"

	"github.com/google/uuid"
)

// SaleEntry adalah transaksi "bán hàng" (stock-out).
// UnitCost di-snapshot dari Product.LastPurchasePrice saat sale dibuat dan
// tidak pernah dihitung ulang. Immutable setelah dibuat.
type SaleEntry struct {
	BaseModel
	Date      time.Time `gorm:"type:date;not null;index" json:"date" validate:"required"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   Product   `json:"product" validate:"-"` // Relasi - skip validation
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitCost  int64     `gorm:"not null" json:"unit_cost"`
	UnitPrice int64     `gorm:"not null" json:"unit_price" validate:"gte=0"`
	Customer  string    `gorm:"type:varchar(255)" json:"customer"`
	Note      string    `json:"note"`
}

// LineTotal = quantity * unit sale price.
func (s *SaleEntry) LineTotal() int64 {
	return int64(s.Quantity) * s.UnitPrice
}
