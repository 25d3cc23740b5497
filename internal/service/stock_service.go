package service

import (
	"context"
	"encoding/json"
	"time"

	"voltstock/internal/csvio"
	"voltstock/internal/dto"
	"voltstock/internal/model"
	"voltstock/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	// StockExportFilename matches the name the dashboard downloads as.
	StockExportFilename = "electronics_stock.csv"

	stockSummaryCacheKey = "summary:stock"
	summaryCacheTTL      = 30 * time.Second
)

// StockService manages the stock list.
type StockService interface {
	List(ctx context.Context, filter dto.StockFilter) ([]model.StockItem, error)
	CreateScaffold(ctx context.Context) (*model.StockItem, error)
	Update(ctx context.Context, id string, req dto.SaveStockItemRequest) (*model.StockItem, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (*dto.StockSummaryResponse, error)
	ExportCSV(ctx context.Context) (string, error)
	Import(ctx context.Context, records []csvio.Record) ([]model.StockItem, error)
}

type stockService struct {
	repo         repository.StockRepository
	categoryRepo repository.CategoryRepository
	rdb          *redis.Client
	threshold    int
}

func NewStockService(repo repository.StockRepository, categoryRepo repository.CategoryRepository, rdb *redis.Client, lowStockThreshold int) StockService {
	return &stockService{repo: repo, categoryRepo: categoryRepo, rdb: rdb, threshold: lowStockThreshold}
}

func (s *stockService) List(ctx context.Context, filter dto.StockFilter) ([]model.StockItem, error) {
	return s.repo.List(ctx, filter.Category)
}

// CreateScaffold inserts an empty, immediately-editable row — the dashboard's
// "add item" action. The category defaults to the first defined category.
func (s *stockService) CreateScaffold(ctx context.Context) (*model.StockItem, error) {
	category := ""
	if cats, err := s.categoryRepo.List(ctx); err == nil && len(cats) > 0 {
		category = cats[0].Name
	}
	item := &model.StockItem{
		UnitCost:  decimal.Zero,
		UnitPrice: decimal.Zero,
		Quantity:  0,
		Category:  category,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateSummary(ctx)
	return item, nil
}

func (s *stockService) Update(ctx context.Context, id string, req dto.SaveStockItemRequest) (*model.StockItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Name = req.Name
	item.SKU = req.SKU
	item.UnitCost = req.UnitCost
	item.UnitPrice = req.UnitPrice
	item.Quantity = req.Quantity
	item.Category = req.Category
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateSummary(ctx)
	return item, nil
}

func (s *stockService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSummary(ctx)
	return nil
}

// Summary aggregates the dashboard cards: item count, value at cost, value
// at retail, low-stock count. Cached briefly in redis — the numbers feed
// cards on every page load.
func (s *stockService) Summary(ctx context.Context) (*dto.StockSummaryResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, stockSummaryCacheKey).Bytes(); err == nil {
			var resp dto.StockSummaryResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	items, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	resp := &dto.StockSummaryResponse{CostValue: decimal.Zero, RetailValue: decimal.Zero}
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		resp.TotalItems += item.Quantity
		resp.CostValue = resp.CostValue.Add(item.UnitCost.Mul(qty))
		resp.RetailValue = resp.RetailValue.Add(item.UnitPrice.Mul(qty))
		if item.Quantity <= s.threshold {
			resp.LowStock++
		}
	}

	if s.rdb != nil {
		if b, err := json.Marshal(resp); err == nil {
			_ = s.rdb.Set(ctx, stockSummaryCacheKey, b, summaryCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *stockService) ExportCSV(ctx context.Context) (string, error) {
	items, err := s.repo.List(ctx, "")
	if err != nil {
		return "", err
	}
	rows := make([]csvio.Record, len(items))
	for i, item := range items {
		rows[i] = csvio.Record{
			"id":         item.ID,
			"name":       item.Name,
			"sku":        item.SKU,
			"unit_cost":  item.UnitCost,
			"unit_price": item.UnitPrice,
			"quantity":   item.Quantity,
			"category":   item.Category,
		}
	}
	return csvio.Export(csvio.StockSchema, rows)
}

// Import upserts coerced records by id and returns the collection re-read
// from storage so the caller sees exactly what persisted.
func (s *stockService) Import(ctx context.Context, records []csvio.Record) ([]model.StockItem, error) {
	items := make([]model.StockItem, len(records))
	for i, rec := range records {
		items[i] = model.StockItem{
			ID:        rec.Text("id"),
			Name:      rec.Text("name"),
			SKU:       rec.Text("sku"),
			UnitCost:  rec.Number("unit_cost"),
			UnitPrice: rec.Number("unit_price"),
			Quantity:  rec.Int("quantity"),
			Category:  rec.Text("category"),
		}
	}
	if err := s.repo.Upsert(ctx, items); err != nil {
		return nil, err
	}
	s.invalidateSummary(ctx)
	return s.repo.List(ctx, "")
}

func (s *stockService) invalidateSummary(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, stockSummaryCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("stock: summary cache invalidation failed")
	}
}
