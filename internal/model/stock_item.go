package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockItem is one row of the shop's stock list. IDs are opaque strings:
// normally a generated UUID, but CSV imports may carry arbitrary stable ids
// from older exports, so the column is not typed as uuid.
type StockItem struct {
	ID        string          `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"index;not null" json:"name"`
	SKU       string          `gorm:"column:sku;index" json:"sku"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_cost"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	// Quantity may go negative: a delivery of more units than tracked is
	// recorded as-is and left for the operator to reconcile.
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	Category  string    `gorm:"index" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *StockItem) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (StockItem) TableName() string { return "stock" }
