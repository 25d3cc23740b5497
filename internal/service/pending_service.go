package service

import (
	"context"
	"time"

	"voltstock/internal/csvio"
	"voltstock/internal/delivery"
	"voltstock/internal/dto"
	"voltstock/internal/model"
	"voltstock/internal/repository"
	"voltstock/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const PendingExportFilename = "electronics_pending.csv"

const (
	outcomeApplied = "applied"
	outcomeFailed  = "failed"
	outcomeSkipped = "skipped"
)

// PendingService manages pending orders, including the status-change saga
// that moves records into sales and out of stock.
type PendingService interface {
	List(ctx context.Context) ([]model.PendingItem, error)
	CreateScaffold(ctx context.Context) (*model.PendingItem, error)
	Save(ctx context.Context, id string, req dto.SavePendingRequest) (*dto.TransitionResponse, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (*dto.PendingSummaryResponse, error)
	ExportCSV(ctx context.Context) (string, error)
	Import(ctx context.Context, records []csvio.Record) ([]model.PendingItem, error)
}

type pendingService struct {
	repo       repository.PendingRepository
	stockRepo  repository.StockRepository
	saleRepo   repository.SaleRepository
	dispatcher *worker.Dispatcher
	threshold  int
	now        func() time.Time
}

// NewPendingService wires the saga executor. dispatcher may be nil (no
// redis); low-stock alerts are then skipped.
func NewPendingService(repo repository.PendingRepository, stockRepo repository.StockRepository, saleRepo repository.SaleRepository, dispatcher *worker.Dispatcher, lowStockThreshold int) PendingService {
	return &pendingService{
		repo:       repo,
		stockRepo:  stockRepo,
		saleRepo:   saleRepo,
		dispatcher: dispatcher,
		threshold:  lowStockThreshold,
		now:        time.Now,
	}
}

func (s *pendingService) List(ctx context.Context) ([]model.PendingItem, error) {
	return s.repo.List(ctx)
}

// CreateScaffold inserts an empty Pending row dated today for in-place editing.
func (s *pendingService) CreateScaffold(ctx context.Context) (*model.PendingItem, error) {
	item := &model.PendingItem{
		Date:         s.now().Format("2006-01-02"),
		QuantitySent: 1,
		UnitPrice:    decimal.Zero,
		UnitCost:     decimal.Zero,
		Status:       model.StatusPending,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Save applies an edited pending record. The planner turns the edit into an
// ordered list of persistence steps; each step is executed as an independent
// call. On a step failure execution halts — earlier effects stay committed,
// there is no rollback — and the per-step outcomes plus the re-read
// collections let the user see exactly where things stand.
func (s *pendingService) Save(ctx context.Context, id string, req dto.SavePendingRequest) (*dto.TransitionResponse, error) {
	prev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *prev
	updated.Date = req.Date
	updated.ProductID = req.ProductID
	updated.Product = req.Product
	updated.QuantitySent = req.QuantitySent
	updated.UnitPrice = req.UnitPrice
	updated.UnitCost = req.UnitCost
	updated.Status = model.DeliveryStatus(req.Status)

	stock, err := s.stockRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}

	plan, err := delivery.BuildPlan(*prev, updated, stock, s.now())
	if err != nil {
		return nil, err
	}

	resp := &dto.TransitionResponse{Warnings: plan.Warnings}
	halted := false
	for _, step := range plan.Steps {
		if halted {
			resp.Outcomes = append(resp.Outcomes, dto.StepOutcome{
				Step:   string(step.Kind),
				Status: outcomeSkipped,
			})
			continue
		}
		if err := s.execute(ctx, step); err != nil {
			log.Error().Err(err).
				Str("pending_id", id).
				Str("step", string(step.Kind)).
				Str("compensate", step.Compensate).
				Msg("pending: transition step failed, halting")
			resp.Outcomes = append(resp.Outcomes, dto.StepOutcome{
				Step:   string(step.Kind),
				Status: outcomeFailed,
				Detail: err.Error(),
			})
			halted = true
			continue
		}
		resp.Outcomes = append(resp.Outcomes, dto.StepOutcome{
			Step:   string(step.Kind),
			Status: outcomeApplied,
		})
		if step.Kind == delivery.StepDecrementStock && step.NewQuantity <= s.threshold {
			s.enqueueAlert(ctx, step, updated.Product)
		}
	}

	// Re-read all three collections so the response reflects what actually
	// persisted, including the partial state after a halt.
	if resp.Stock, err = s.stockRepo.List(ctx, ""); err != nil {
		log.Warn().Err(err).Msg("pending: stock refresh after transition failed")
	}
	if resp.Sales, err = s.saleRepo.List(ctx); err != nil {
		log.Warn().Err(err).Msg("pending: sales refresh after transition failed")
	}
	if resp.Pending, err = s.repo.List(ctx); err != nil {
		log.Warn().Err(err).Msg("pending: pending refresh after transition failed")
	}
	return resp, nil
}

func (s *pendingService) execute(ctx context.Context, step delivery.Step) error {
	switch step.Kind {
	case delivery.StepUpdatePending:
		return s.repo.Update(ctx, step.Pending)
	case delivery.StepDecrementStock:
		return s.stockRepo.UpdateQuantity(ctx, step.StockID, step.NewQuantity)
	case delivery.StepInsertSale:
		return s.saleRepo.Create(ctx, step.Sale)
	case delivery.StepDeletePending:
		return s.repo.Delete(ctx, step.Pending.ID)
	}
	return nil
}

func (s *pendingService) enqueueAlert(ctx context.Context, step delivery.Step, product string) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.EnqueueLowStockAlert(ctx, worker.LowStockPayload{
		StockID:  step.StockID,
		Product:  product,
		Quantity: step.NewQuantity,
	})
	if err != nil {
		log.Warn().Err(err).Str("stock_id", step.StockID).Msg("pending: low-stock alert enqueue failed")
	}
}

func (s *pendingService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *pendingService) Summary(ctx context.Context) (*dto.PendingSummaryResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.PendingSummaryResponse{TotalValue: decimal.Zero}
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.QuantitySent))
		resp.TotalValue = resp.TotalValue.Add(item.UnitPrice.Mul(qty))
		resp.TotalQuantity += item.QuantitySent
		switch item.Status {
		case model.StatusPending:
			resp.PendingCount++
		case model.StatusShipped:
			resp.ShippedCount++
		}
	}
	return resp, nil
}

func (s *pendingService) ExportCSV(ctx context.Context) (string, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}
	rows := make([]csvio.Record, len(items))
	for i, item := range items {
		rows[i] = csvio.Record{
			"id":            item.ID,
			"date":          item.Date,
			"product":       item.Product,
			"quantity_sent": item.QuantitySent,
			"unit_price":    item.UnitPrice,
			"unit_cost":     item.UnitCost,
			"status":        string(item.Status),
		}
	}
	return csvio.Export(csvio.PendingSchema, rows)
}

// Import upserts coerced records by id. Rows are stored as-is: no
// transition side effects run, even if a row arrives with status Delivered.
// Unknown or blank statuses are normalized to Pending.
func (s *pendingService) Import(ctx context.Context, records []csvio.Record) ([]model.PendingItem, error) {
	items := make([]model.PendingItem, len(records))
	for i, rec := range records {
		status := model.DeliveryStatus(rec.Text("status"))
		if !status.Valid() {
			status = model.StatusPending
		}
		items[i] = model.PendingItem{
			ID:           rec.Text("id"),
			Date:         rec.Text("date"),
			Product:      rec.Text("product"),
			QuantitySent: rec.Int("quantity_sent"),
			UnitPrice:    rec.Number("unit_price"),
			UnitCost:     rec.Number("unit_cost"),
			Status:       status,
		}
	}
	if err := s.repo.Upsert(ctx, items); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}
