package dto

import "github.com/shopspring/decimal"

// SaveSaleRequest covers direct create and edit of a ledger row. TotalSale
// is never accepted from the client — the service recomputes it from
// quantity and unit price on every write.
type SaveSaleRequest struct {
	Date         string          `json:"date"          validate:"required"`
	ProductID    *string         `json:"product_id"`
	Product      string          `json:"product"`
	QuantitySold int             `json:"quantity_sold" validate:"gt=0"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

type SalesSummaryResponse struct {
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`
}
