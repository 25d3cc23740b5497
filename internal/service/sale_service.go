package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"voltstock/internal/csvio"
	"voltstock/internal/dto"
	"voltstock/internal/infra"
	"voltstock/internal/model"
	"voltstock/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	SalesExportFilename = "electronics_sales.csv"
	SalesReportFilename = "sales_report.pdf"

	salesSummaryCacheKey = "summary:sales"
)

// SaleService manages the sales ledger.
type SaleService interface {
	List(ctx context.Context) ([]model.SaleItem, error)
	Create(ctx context.Context, req dto.SaveSaleRequest) (*model.SaleItem, error)
	Update(ctx context.Context, id string, req dto.SaveSaleRequest) (*model.SaleItem, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (*dto.SalesSummaryResponse, error)
	ExportCSV(ctx context.Context) (string, error)
	Import(ctx context.Context, records []csvio.Record) ([]model.SaleItem, error)
	ReportPDF(ctx context.Context) (*bytes.Buffer, error)
}

type saleService struct {
	repo     repository.SaleRepository
	rdb      *redis.Client
	shopName string
}

func NewSaleService(repo repository.SaleRepository, rdb *redis.Client, shopName string) SaleService {
	return &saleService{repo: repo, rdb: rdb, shopName: shopName}
}

func (s *saleService) List(ctx context.Context) ([]model.SaleItem, error) {
	return s.repo.List(ctx)
}

func (s *saleService) Create(ctx context.Context, req dto.SaveSaleRequest) (*model.SaleItem, error) {
	item := &model.SaleItem{
		Date:         req.Date,
		ProductID:    req.ProductID,
		Product:      req.Product,
		QuantitySold: req.QuantitySold,
		UnitPrice:    req.UnitPrice,
		UnitCost:     req.UnitCost,
	}
	item.RecomputeTotal()
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateSummary(ctx)
	return item, nil
}

// Update rewrites a ledger row. TotalSale is recomputed from the incoming
// quantity and unit price, never taken from the client.
func (s *saleService) Update(ctx context.Context, id string, req dto.SaveSaleRequest) (*model.SaleItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Date = req.Date
	item.ProductID = req.ProductID
	item.Product = req.Product
	item.QuantitySold = req.QuantitySold
	item.UnitPrice = req.UnitPrice
	item.UnitCost = req.UnitCost
	item.RecomputeTotal()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateSummary(ctx)
	return item, nil
}

func (s *saleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSummary(ctx)
	return nil
}

func (s *saleService) Summary(ctx context.Context) (*dto.SalesSummaryResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, salesSummaryCacheKey).Bytes(); err == nil {
			var resp dto.SalesSummaryResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	sales, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.SalesSummaryResponse{Revenue: decimal.Zero, Cost: decimal.Zero, Profit: decimal.Zero}
	for _, sale := range sales {
		qty := decimal.NewFromInt(int64(sale.QuantitySold))
		resp.Count++
		resp.Revenue = resp.Revenue.Add(sale.TotalSale)
		resp.Cost = resp.Cost.Add(sale.UnitCost.Mul(qty))
	}
	resp.Profit = resp.Revenue.Sub(resp.Cost)

	if s.rdb != nil {
		if b, err := json.Marshal(resp); err == nil {
			_ = s.rdb.Set(ctx, salesSummaryCacheKey, b, summaryCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *saleService) ExportCSV(ctx context.Context) (string, error) {
	sales, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}
	rows := make([]csvio.Record, len(sales))
	for i, sale := range sales {
		rows[i] = csvio.Record{
			"id":            sale.ID,
			"date":          sale.Date,
			"product":       sale.Product,
			"quantity_sold": sale.QuantitySold,
			"unit_price":    sale.UnitPrice,
			"unit_cost":     sale.UnitCost,
			"total_sale":    sale.TotalSale,
		}
	}
	return csvio.Export(csvio.SalesSchema, rows)
}

// Import upserts coerced records by id. Totals in the file are ignored:
// each row's total is recomputed so the invariant holds even for
// hand-edited spreadsheets.
func (s *saleService) Import(ctx context.Context, records []csvio.Record) ([]model.SaleItem, error) {
	items := make([]model.SaleItem, len(records))
	for i, rec := range records {
		items[i] = model.SaleItem{
			ID:           rec.Text("id"),
			Date:         rec.Text("date"),
			Product:      rec.Text("product"),
			QuantitySold: rec.Int("quantity_sold"),
			UnitPrice:    rec.Number("unit_price"),
			UnitCost:     rec.Number("unit_cost"),
		}
		items[i].RecomputeTotal()
	}
	if err := s.repo.Upsert(ctx, items); err != nil {
		return nil, err
	}
	s.invalidateSummary(ctx)
	return s.repo.List(ctx)
}

// ReportPDF renders the full ledger as a printable report.
func (s *saleService) ReportPDF(ctx context.Context) (*bytes.Buffer, error) {
	sales, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return infra.BuildSalesReport(s.shopName, sales, time.Now())
}

func (s *saleService) invalidateSummary(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, salesSummaryCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("sales: summary cache invalidation failed")
	}
}
