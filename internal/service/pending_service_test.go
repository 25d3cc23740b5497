package service

import (
	"context"
	"testing"
	"time"

	"voltstock/internal/csvio"
	"voltstock/internal/delivery"
	"voltstock/internal/dto"
	"voltstock/internal/model"
	"voltstock/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingFixture(t *testing.T) (*pendingService, *stubPendingRepo, *stubStockRepo, *stubSaleRepo) {
	t.Helper()
	pendingRepo := newStubPendingRepo(model.PendingItem{
		ID:           "2",
		Date:         "2026-03-10",
		Product:      "MacBook Air M2",
		QuantitySent: 1,
		UnitPrice:    decimal.NewFromInt(145000),
		UnitCost:     decimal.NewFromInt(120000),
		Status:       model.StatusPending,
	})
	stockRepo := newStubStockRepo(model.StockItem{
		ID:        "stk-mba",
		Name:      "MacBook Air M2",
		UnitCost:  decimal.NewFromInt(120000),
		UnitPrice: decimal.NewFromInt(145000),
		Quantity:  8,
	})
	saleRepo := newStubSaleRepo()

	svc := NewPendingService(pendingRepo, stockRepo, saleRepo, nil, 3).(*pendingService)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }
	return svc, pendingRepo, stockRepo, saleRepo
}

func savedRequest(status string) dto.SavePendingRequest {
	return dto.SavePendingRequest{
		Date:         "2026-03-10",
		Product:      "MacBook Air M2",
		QuantitySent: 1,
		UnitPrice:    decimal.NewFromInt(145000),
		UnitCost:     decimal.NewFromInt(120000),
		Status:       status,
	}
}

func TestSaveDelivered(t *testing.T) {
	svc, pendingRepo, stockRepo, saleRepo := newPendingFixture(t)

	resp, err := svc.Save(context.Background(), "2", savedRequest("Delivered"))
	require.NoError(t, err)
	require.Len(t, resp.Outcomes, 4)
	for _, o := range resp.Outcomes {
		assert.Equal(t, "applied", o.Status, o.Step)
	}
	assert.Empty(t, resp.Warnings)

	// Stock decremented.
	item, err := stockRepo.FindByID(context.Background(), "stk-mba")
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)

	// Sale recorded with the transition-day date and recomputed total.
	sales, err := saleRepo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "2026-03-14", sales[0].Date)
	assert.Equal(t, 1, sales[0].QuantitySold)
	assert.True(t, sales[0].TotalSale.Equal(decimal.NewFromInt(145000)))

	// Pending record removed.
	_, err = pendingRepo.FindByID(context.Background(), "2")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Response carries the refreshed collections.
	assert.Len(t, resp.Stock, 1)
	assert.Len(t, resp.Sales, 1)
	assert.Empty(t, resp.Pending)
}

func TestSaveCancelled(t *testing.T) {
	svc, pendingRepo, stockRepo, saleRepo := newPendingFixture(t)

	resp, err := svc.Save(context.Background(), "2", savedRequest("Cancelled"))
	require.NoError(t, err)
	require.Len(t, resp.Outcomes, 2)

	item, _ := stockRepo.FindByID(context.Background(), "stk-mba")
	assert.Equal(t, 8, item.Quantity, "cancellation must not touch stock")
	sales, _ := saleRepo.List(context.Background())
	assert.Empty(t, sales)
	_, err = pendingRepo.FindByID(context.Background(), "2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSaveShippedKeepsRecord(t *testing.T) {
	svc, pendingRepo, stockRepo, _ := newPendingFixture(t)

	resp, err := svc.Save(context.Background(), "2", savedRequest("Shipped"))
	require.NoError(t, err)
	require.Len(t, resp.Outcomes, 2)

	item, _ := stockRepo.FindByID(context.Background(), "stk-mba")
	assert.Equal(t, 7, item.Quantity)

	p, err := pendingRepo.FindByID(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, model.StatusShipped, p.Status)
}

func TestSaveHaltsOnStepFailure(t *testing.T) {
	svc, pendingRepo, stockRepo, saleRepo := newPendingFixture(t)
	saleRepo.failCreate = true

	resp, err := svc.Save(context.Background(), "2", savedRequest("Delivered"))
	require.NoError(t, err, "a step failure is reported in outcomes, not as an error")
	require.Len(t, resp.Outcomes, 4)
	assert.Equal(t, "applied", resp.Outcomes[0].Status)
	assert.Equal(t, "applied", resp.Outcomes[1].Status)
	assert.Equal(t, "failed", resp.Outcomes[2].Status)
	assert.Contains(t, resp.Outcomes[2].Detail, "storage unavailable")
	assert.Equal(t, "skipped", resp.Outcomes[3].Status)

	// No rollback: the decrement stays committed, the pending record stays
	// because its delete step was skipped.
	item, _ := stockRepo.FindByID(context.Background(), "stk-mba")
	assert.Equal(t, 7, item.Quantity)
	_, err = pendingRepo.FindByID(context.Background(), "2")
	assert.NoError(t, err)
}

func TestSaveNoStockMatchWarnsAndContinues(t *testing.T) {
	svc, pendingRepo, _, saleRepo := newPendingFixture(t)

	req := savedRequest("Delivered")
	req.Product = "AirPods Pro"
	resp, err := svc.Save(context.Background(), "2", req)
	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], `"AirPods Pro"`)

	sales, _ := saleRepo.List(context.Background())
	assert.Len(t, sales, 1, "sale is still recorded")
	_, err = pendingRepo.FindByID(context.Background(), "2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSaveIllegalTransitionRejected(t *testing.T) {
	svc, pendingRepo, stockRepo, _ := newPendingFixture(t)
	_, err := svc.Save(context.Background(), "2", savedRequest("Cancelled"))
	require.NoError(t, err) // Pending → Cancelled removed the record

	pendingRepo.items["9"] = &model.PendingItem{ID: "9", Status: model.StatusDelivered}
	req := savedRequest("Pending")
	_, err = svc.Save(context.Background(), "9", req)
	var illegal *delivery.IllegalTransitionError
	require.ErrorAs(t, err, &illegal)

	item, _ := stockRepo.FindByID(context.Background(), "stk-mba")
	assert.Equal(t, 8, item.Quantity, "rejected saves must have no side effects")
}

func TestSaveUnknownID(t *testing.T) {
	svc, _, _, _ := newPendingFixture(t)
	_, err := svc.Save(context.Background(), "missing", savedRequest("Shipped"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPendingImportNormalizesStatus(t *testing.T) {
	svc, pendingRepo, _, _ := newPendingFixture(t)

	items, err := svc.Import(context.Background(), []csvio.Record{
		{"id": "10", "date": "2026-04-01", "product": "Charger", "quantity_sent": decimal.NewFromInt(2), "unit_price": decimal.NewFromInt(900), "unit_cost": decimal.NewFromInt(400), "status": "Shipped"},
		{"id": "11", "date": "2026-04-02", "product": "Hub", "quantity_sent": decimal.NewFromInt(1), "unit_price": decimal.NewFromInt(2500), "unit_cost": decimal.NewFromInt(1200), "status": "On The Truck"},
	})
	require.NoError(t, err)
	assert.Len(t, items, 3) // fixture row plus the two imported

	ten, err := pendingRepo.FindByID(context.Background(), "10")
	require.NoError(t, err)
	assert.Equal(t, model.StatusShipped, ten.Status)

	eleven, err := pendingRepo.FindByID(context.Background(), "11")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, eleven.Status, "unknown status falls back to Pending")
}

func TestPendingImportRunsNoSideEffects(t *testing.T) {
	svc, _, stockRepo, saleRepo := newPendingFixture(t)

	_, err := svc.Import(context.Background(), []csvio.Record{
		{"id": "12", "date": "2026-04-03", "product": "MacBook Air M2", "quantity_sent": decimal.NewFromInt(1), "unit_price": decimal.NewFromInt(145000), "unit_cost": decimal.NewFromInt(120000), "status": "Delivered"},
	})
	require.NoError(t, err)

	item, _ := stockRepo.FindByID(context.Background(), "stk-mba")
	assert.Equal(t, 8, item.Quantity)
	sales, _ := saleRepo.List(context.Background())
	assert.Empty(t, sales)
}

func TestPendingSummary(t *testing.T) {
	svc, pendingRepo, _, _ := newPendingFixture(t)
	pendingRepo.items["3"] = &model.PendingItem{
		ID: "3", QuantitySent: 2, UnitPrice: decimal.NewFromInt(500), Status: model.StatusShipped,
	}

	resp, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalQuantity)
	assert.True(t, resp.TotalValue.Equal(decimal.NewFromInt(146000)))
	assert.Equal(t, 1, resp.PendingCount)
	assert.Equal(t, 1, resp.ShippedCount)
}

func TestCreateScaffoldDatedToday(t *testing.T) {
	svc, pendingRepo, _, _ := newPendingFixture(t)
	item, err := svc.CreateScaffold(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", item.Date)
	assert.Equal(t, 1, item.QuantitySent)
	assert.Equal(t, model.StatusPending, item.Status)
	_, err = pendingRepo.FindByID(context.Background(), item.ID)
	assert.NoError(t, err)
}
