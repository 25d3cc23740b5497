package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleItem is one row of the sales ledger. Created directly by the user or
// automatically when a pending order reaches Delivered. Prices are captured
// at sale time and do not follow later stock price changes.
type SaleItem struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Date string `gorm:"not null" json:"date"` // YYYY-MM-DD, user-editable
	// ProductID is the stable link to a StockItem; Product is the denormalized
	// display name captured at sale time. The name is NOT referentially
	// enforced — renames in stock do not touch past sales.
	ProductID    *string         `gorm:"index" json:"product_id"`
	Product      string          `gorm:"not null" json:"product"`
	QuantitySold int             `gorm:"not null" json:"quantity_sold"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_cost"`
	// TotalSale always equals QuantitySold × UnitPrice; recomputed on every write.
	TotalSale decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_sale"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (s *SaleItem) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// RecomputeTotal restores the TotalSale invariant for the current factors.
func (s *SaleItem) RecomputeTotal() {
	s.TotalSale = s.UnitPrice.Mul(decimal.NewFromInt(int64(s.QuantitySold)))
}

func (SaleItem) TableName() string { return "sales" }
