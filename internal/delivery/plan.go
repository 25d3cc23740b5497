// Package delivery implements the pending-order state machine as a pure
// planner: given the previous and proposed versions of a pending item plus a
// snapshot of the stock list, it produces an ordered list of side-effect
// steps for the caller to execute against persistence. Keeping the planner
// free of I/O makes every transition testable without a database.
package delivery

import (
	"errors"
	"fmt"
	"time"

	"voltstock/internal/model"
)

// StepKind identifies one side effect of a status change.
type StepKind string

const (
	StepUpdatePending  StepKind = "update_pending"
	StepDecrementStock StepKind = "decrement_stock"
	StepInsertSale     StepKind = "insert_sale"
	StepDeletePending  StepKind = "delete_pending"
)

// Step is one persistence call of a transition. Steps form a saga: they are
// executed in order, each one an independent call with no surrounding
// transaction. Compensate names the inverse action a future executor could
// run; the current executor only reports, it never rolls back.
type Step struct {
	Kind       StepKind
	Compensate string

	// update_pending / delete_pending
	Pending *model.PendingItem

	// decrement_stock
	StockID     string
	NewQuantity int

	// insert_sale
	Sale *model.SaleItem
}

// Plan is the full ordered side-effect list for one status change, plus any
// non-fatal warnings (stock lookup misses) the user should see.
type Plan struct {
	Steps    []Step
	Warnings []string
}

var (
	ErrIDMismatch = errors.New("delivery: previous and updated items have different ids")
)

// IllegalTransitionError reports a status change outside the legal graph.
type IllegalTransitionError struct {
	From, To model.DeliveryStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("delivery: illegal status transition %s → %s", e.From, e.To)
}

// BuildPlan computes the side effects of saving updated over prev.
//
// Behavior by updated.Status:
//   - Pending (or unchanged status): persist edited fields only.
//   - Shipped: persist fields, then decrement the matching stock item's
//     quantity by QuantitySent. No floor — quantity may go negative.
//   - Delivered: the Shipped decrement, plus a new sale dated now with the
//     pending item's amounts, then removal of the pending record.
//   - Cancelled: removal of the pending record, stock and sales untouched.
//
// A failed stock match never fails the plan; it is surfaced as a warning and
// the decrement step is simply omitted.
func BuildPlan(prev, updated model.PendingItem, stock []model.StockItem, now time.Time) (Plan, error) {
	if prev.ID != updated.ID {
		return Plan{}, ErrIDMismatch
	}
	if !updated.Status.Valid() {
		return Plan{}, &IllegalTransitionError{From: prev.Status, To: updated.Status}
	}
	if !prev.Status.CanTransitionTo(updated.Status) {
		return Plan{}, &IllegalTransitionError{From: prev.Status, To: updated.Status}
	}

	plan := Plan{
		Steps: []Step{{
			Kind:       StepUpdatePending,
			Compensate: "restore previous pending fields",
			Pending:    &updated,
		}},
	}

	// Status unchanged: a plain field edit, no cross-collection effects.
	if prev.Status == updated.Status {
		return plan, nil
	}

	if updated.Status == model.StatusShipped || updated.Status == model.StatusDelivered {
		match, warning := matchStock(updated, stock)
		if match != nil {
			plan.Steps = append(plan.Steps, Step{
				Kind:        StepDecrementStock,
				Compensate:  fmt.Sprintf("add %d back to stock item %s", updated.QuantitySent, match.ID),
				StockID:     match.ID,
				NewQuantity: match.Quantity - updated.QuantitySent,
			})
		}
		if warning != "" {
			plan.Warnings = append(plan.Warnings, warning)
		}

		if updated.Status == model.StatusDelivered {
			productID := updated.ProductID
			if productID == nil && match != nil {
				id := match.ID
				productID = &id
			}
			sale := &model.SaleItem{
				Date:         now.Format("2006-01-02"),
				ProductID:    productID,
				Product:      updated.Product,
				QuantitySold: updated.QuantitySent,
				UnitPrice:    updated.UnitPrice,
				UnitCost:     updated.UnitCost,
			}
			sale.RecomputeTotal()
			plan.Steps = append(plan.Steps, Step{
				Kind:       StepInsertSale,
				Compensate: "delete the inserted sale",
				Sale:       sale,
			})
		}
	}

	if updated.Status == model.StatusDelivered || updated.Status == model.StatusCancelled {
		plan.Steps = append(plan.Steps, Step{
			Kind:       StepDeletePending,
			Compensate: "re-insert the pending record",
			Pending:    &updated,
		})
	}

	return plan, nil
}

// matchStock resolves the stock item a pending order draws from. The stable
// product_id link wins when present; otherwise the match is exact
// case-sensitive equality on the display name. A name shared by several
// stock items is ambiguous: nothing is decremented and the caller is warned,
// rather than silently picking whichever row came back first.
func matchStock(item model.PendingItem, stock []model.StockItem) (*model.StockItem, string) {
	if item.ProductID != nil && *item.ProductID != "" {
		for i := range stock {
			if stock[i].ID == *item.ProductID {
				return &stock[i], ""
			}
		}
		return nil, fmt.Sprintf("Warning: linked stock item %q no longer exists; quantity not decremented.", *item.ProductID)
	}

	var found []*model.StockItem
	for i := range stock {
		if stock[i].Name == item.Product {
			found = append(found, &stock[i])
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Sprintf("Warning: product %q not found in stock to decrement quantity.", item.Product)
	case 1:
		return found[0], ""
	default:
		return nil, fmt.Sprintf("Warning: %d stock items share the name %q; quantity not decremented — link the order to a specific item.", len(found), item.Product)
	}
}
