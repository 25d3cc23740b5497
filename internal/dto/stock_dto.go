package dto

import "github.com/shopspring/decimal"

// SaveStockItemRequest covers both create and in-place edit. All fields may
// be blank on create: the "add item" action scaffolds an empty row the user
// fills in afterwards.
type SaveStockItemRequest struct {
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Category  string          `json:"category"`
}

type StockFilter struct {
	Category string `form:"category"`
}

// StockSummaryResponse aggregates the stock list for the dashboard cards.
type StockSummaryResponse struct {
	TotalItems  int             `json:"total_items"`
	CostValue   decimal.Decimal `json:"cost_value"`
	RetailValue decimal.Decimal `json:"retail_value"`
	LowStock    int             `json:"low_stock"`
}
