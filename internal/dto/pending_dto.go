package dto

import (
	"voltstock/internal/model"

	"github.com/shopspring/decimal"
)

// SavePendingRequest carries the full proposed record of a pending-order
// save — other fields may have been edited alongside the status change.
type SavePendingRequest struct {
	Date         string          `json:"date"          validate:"required"`
	ProductID    *string         `json:"product_id"`
	Product      string          `json:"product"`
	QuantitySent int             `json:"quantity_sent" validate:"gt=0"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Status       string          `json:"status"        validate:"required,oneof=Pending Shipped Delivered Cancelled"`
}

// StepOutcome is the individually-surfaced result of one transition step.
// There is no rollback: a failed step halts the rest, and outcomes tell the
// user exactly which effects were already committed.
type StepOutcome struct {
	Step   string `json:"step"`
	Status string `json:"status"` // applied | failed | skipped
	Detail string `json:"detail,omitempty"`
}

// TransitionResponse is the result of saving a pending item: what happened
// step by step, any non-fatal warnings, and the three collections re-read
// from storage so the UI can reconcile its state in one round trip.
type TransitionResponse struct {
	Outcomes []StepOutcome       `json:"outcomes"`
	Warnings []string            `json:"warnings,omitempty"`
	Stock    []model.StockItem   `json:"stock"`
	Sales    []model.SaleItem    `json:"sales"`
	Pending  []model.PendingItem `json:"pending"`
}

type PendingSummaryResponse struct {
	TotalValue    decimal.Decimal `json:"total_value"`
	TotalQuantity int             `json:"total_quantity"`
	PendingCount  int             `json:"pending_count"`
	ShippedCount  int             `json:"shipped_count"`
}
