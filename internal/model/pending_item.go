package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DeliveryStatus is the lifecycle state of a pending order.
type DeliveryStatus string

const (
	StatusPending   DeliveryStatus = "Pending"
	StatusShipped   DeliveryStatus = "Shipped"
	StatusDelivered DeliveryStatus = "Delivered"
	StatusCancelled DeliveryStatus = "Cancelled"
)

// statusTransitions is the legal transition graph. Delivered and Cancelled
// are terminal: the record is removed from the pending collection, so no
// further transition can be applied to it.
var statusTransitions = map[DeliveryStatus][]DeliveryStatus{
	StatusPending: {StatusShipped, StatusDelivered, StatusCancelled},
	StatusShipped: {StatusDelivered, StatusCancelled},
}

// Valid reports whether s is a known status value.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether s → next is a legal status change.
// A no-op (same status) is always allowed: plain field edits save without
// re-triggering delivery side effects.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// PendingItem is an order sent to a customer or channel but not yet
// confirmed delivered. Reaching Delivered or Cancelled removes the record.
type PendingItem struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	Date         string          `gorm:"not null" json:"date"` // YYYY-MM-DD
	ProductID    *string         `gorm:"index" json:"product_id"`
	Product      string          `gorm:"not null" json:"product"`
	QuantitySent int             `gorm:"not null" json:"quantity_sent"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_cost"`
	Status       DeliveryStatus  `gorm:"not null;default:'Pending'" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (p *PendingItem) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (PendingItem) TableName() string { return "pending" }
