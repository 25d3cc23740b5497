package delivery

import (
	"testing"
	"time"

	"voltstock/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var planNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func pendingMacbook(status model.DeliveryStatus) model.PendingItem {
	return model.PendingItem{
		ID:           "2",
		Date:         "2026-03-10",
		Product:      "MacBook Air M2",
		QuantitySent: 1,
		UnitPrice:    decimal.NewFromInt(145000),
		UnitCost:     decimal.NewFromInt(120000),
		Status:       status,
	}
}

func stockMacbook(qty int) model.StockItem {
	return model.StockItem{
		ID:        "stk-mba",
		Name:      "MacBook Air M2",
		UnitCost:  decimal.NewFromInt(120000),
		UnitPrice: decimal.NewFromInt(145000),
		Quantity:  qty,
	}
}

func TestBuildPlanDelivered(t *testing.T) {
	prev := pendingMacbook(model.StatusPending)
	updated := pendingMacbook(model.StatusDelivered)
	stock := []model.StockItem{stockMacbook(8)}

	plan, err := BuildPlan(prev, updated, stock, planNow)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 4)
	assert.Empty(t, plan.Warnings)

	assert.Equal(t, StepUpdatePending, plan.Steps[0].Kind)
	assert.Equal(t, model.StatusDelivered, plan.Steps[0].Pending.Status)

	assert.Equal(t, StepDecrementStock, plan.Steps[1].Kind)
	assert.Equal(t, "stk-mba", plan.Steps[1].StockID)
	assert.Equal(t, 7, plan.Steps[1].NewQuantity)

	require.Equal(t, StepInsertSale, plan.Steps[2].Kind)
	sale := plan.Steps[2].Sale
	assert.Equal(t, "2026-03-14", sale.Date)
	assert.Equal(t, "MacBook Air M2", sale.Product)
	assert.Equal(t, 1, sale.QuantitySold)
	assert.True(t, sale.UnitPrice.Equal(decimal.NewFromInt(145000)))
	assert.True(t, sale.TotalSale.Equal(decimal.NewFromInt(145000)), "total = quantity × price")
	require.NotNil(t, sale.ProductID)
	assert.Equal(t, "stk-mba", *sale.ProductID)

	assert.Equal(t, StepDeletePending, plan.Steps[3].Kind)
	assert.Equal(t, "2", plan.Steps[3].Pending.ID)
}

func TestBuildPlanShipped(t *testing.T) {
	prev := pendingMacbook(model.StatusPending)
	updated := pendingMacbook(model.StatusShipped)
	updated.QuantitySent = 3

	plan, err := BuildPlan(prev, updated, []model.StockItem{stockMacbook(8)}, planNow)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, StepUpdatePending, plan.Steps[0].Kind)
	assert.Equal(t, StepDecrementStock, plan.Steps[1].Kind)
	assert.Equal(t, 5, plan.Steps[1].NewQuantity)
}

func TestBuildPlanCancelled(t *testing.T) {
	prev := pendingMacbook(model.StatusShipped)
	updated := pendingMacbook(model.StatusCancelled)

	plan, err := BuildPlan(prev, updated, []model.StockItem{stockMacbook(8)}, planNow)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, StepUpdatePending, plan.Steps[0].Kind)
	assert.Equal(t, StepDeletePending, plan.Steps[1].Kind)
	assert.Empty(t, plan.Warnings)
}

func TestBuildPlanUnchangedStatusIsPlainEdit(t *testing.T) {
	prev := pendingMacbook(model.StatusShipped)
	updated := pendingMacbook(model.StatusShipped)
	updated.QuantitySent = 5

	plan, err := BuildPlan(prev, updated, []model.StockItem{stockMacbook(8)}, planNow)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, StepUpdatePending, plan.Steps[0].Kind)
	assert.Equal(t, 5, plan.Steps[0].Pending.QuantitySent)
}

func TestBuildPlanShippedToDelivered(t *testing.T) {
	// Each transition runs its own side effects: an order decremented at
	// Shipped decrements again at Delivered.
	prev := pendingMacbook(model.StatusShipped)
	updated := pendingMacbook(model.StatusDelivered)

	plan, err := BuildPlan(prev, updated, []model.StockItem{stockMacbook(7)}, planNow)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 4)
	assert.Equal(t, 6, plan.Steps[1].NewQuantity)
}

func TestBuildPlanIllegalTransitions(t *testing.T) {
	cases := []struct {
		from, to model.DeliveryStatus
	}{
		{model.StatusDelivered, model.StatusPending},
		{model.StatusCancelled, model.StatusShipped},
		{model.StatusShipped, model.StatusPending},
		{model.StatusPending, model.DeliveryStatus("Lost")},
	}
	for _, tc := range cases {
		prev := pendingMacbook(tc.from)
		updated := pendingMacbook(tc.to)
		_, err := BuildPlan(prev, updated, nil, planNow)
		require.Error(t, err, "%s → %s", tc.from, tc.to)
		var illegal *IllegalTransitionError
		assert.ErrorAs(t, err, &illegal)
	}
}

func TestBuildPlanIDMismatch(t *testing.T) {
	prev := pendingMacbook(model.StatusPending)
	updated := pendingMacbook(model.StatusShipped)
	updated.ID = "other"
	_, err := BuildPlan(prev, updated, nil, planNow)
	assert.ErrorIs(t, err, ErrIDMismatch)
}

func TestBuildPlanNoStockMatchWarns(t *testing.T) {
	prev := pendingMacbook(model.StatusPending)
	updated := pendingMacbook(model.StatusDelivered)
	updated.Product = "AirPods Pro" // nothing in stock by that name

	plan, err := BuildPlan(prev, updated, []model.StockItem{stockMacbook(8)}, planNow)
	require.NoError(t, err)
	require.Len(t, plan.Warnings, 1)
	assert.Contains(t, plan.Warnings[0], `"AirPods Pro"`)

	// Sale and delete still happen; only the decrement is omitted.
	kinds := stepKinds(plan)
	assert.Equal(t, []StepKind{StepUpdatePending, StepInsertSale, StepDeletePending}, kinds)
}

func TestBuildPlanNameMatchIsExact(t *testing.T) {
	prev := pendingMacbook(model.StatusPending)
	updated := pendingMacbook(model.StatusShipped)
	updated.Product = "macbook air m2" // case differs

	plan, err := BuildPlan(prev, updated, []model.StockItem{stockMacbook(8)}, planNow)
	require.NoError(t, err)
	assert.Len(t, plan.Warnings, 1)
	assert.Equal(t, []StepKind{StepUpdatePending}, stepKinds(plan))
}

func TestBuildPlanAmbiguousNameDecrementsNothing(t *testing.T) {
	prev := pendingMacbook(model.StatusPending)
	updated := pendingMacbook(model.StatusShipped)
	a := stockMacbook(8)
	b := stockMacbook(3)
	b.ID = "stk-mba-2"

	plan, err := BuildPlan(prev, updated, []model.StockItem{a, b}, planNow)
	require.NoError(t, err)
	assert.Equal(t, []StepKind{StepUpdatePending}, stepKinds(plan))
	require.Len(t, plan.Warnings, 1)
	assert.Contains(t, plan.Warnings[0], "share the name")
}

func TestBuildPlanProductIDBeatsName(t *testing.T) {
	prev := pendingMacbook(model.StatusPending)
	updated := pendingMacbook(model.StatusShipped)
	id := "stk-mba-2"
	updated.ProductID = &id
	a := stockMacbook(8)
	b := stockMacbook(3)
	b.ID = "stk-mba-2"

	plan, err := BuildPlan(prev, updated, []model.StockItem{a, b}, planNow)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "stk-mba-2", plan.Steps[1].StockID)
	assert.Equal(t, 2, plan.Steps[1].NewQuantity)
	assert.Empty(t, plan.Warnings)
}

func TestBuildPlanStaleProductLinkWarns(t *testing.T) {
	prev := pendingMacbook(model.StatusPending)
	updated := pendingMacbook(model.StatusShipped)
	id := "stk-gone"
	updated.ProductID = &id

	plan, err := BuildPlan(prev, updated, []model.StockItem{stockMacbook(8)}, planNow)
	require.NoError(t, err)
	assert.Equal(t, []StepKind{StepUpdatePending}, stepKinds(plan))
	require.Len(t, plan.Warnings, 1)
	assert.Contains(t, plan.Warnings[0], "no longer exists")
}

func TestBuildPlanQuantityMayGoNegative(t *testing.T) {
	prev := pendingMacbook(model.StatusPending)
	updated := pendingMacbook(model.StatusShipped)
	updated.QuantitySent = 10

	plan, err := BuildPlan(prev, updated, []model.StockItem{stockMacbook(8)}, planNow)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, -2, plan.Steps[1].NewQuantity)
}

func stepKinds(plan Plan) []StepKind {
	kinds := make([]StepKind, len(plan.Steps))
	for i, s := range plan.Steps {
		kinds[i] = s.Kind
	}
	return kinds
}
