package infra

// pdf.go — Sales ledger report using go-pdf/fpdf.
// Generates an A4 report with a header, a row per sale (date, product,
// quantity, unit price, total) and a bold revenue/profit footer. The PDF is
// built into a buffer and streamed to the client, nothing touches disk.

import (
	"bytes"
	"fmt"
	"time"

	"voltstock/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// BuildSalesReport renders the full ledger as a downloadable PDF.
func BuildSalesReport(shopName string, sales []model.SaleItem, generatedAt time.Time) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, shopName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Sales Ledger", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Generated "+generatedAt.Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Column layout ─────────────────────────────────────────────────────────
	colDate := contentW * 0.14
	colProd := contentW * 0.40
	colQty := contentW * 0.10
	colPrice := contentW * 0.18
	colTotal := contentW * 0.18

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colDate, 6, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colProd, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, 6, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colPrice, 6, "Unit Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 6, "Total", "B", 1, "R", false, 0, "")

	// ── Rows ──────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	revenue := decimal.Zero
	cost := decimal.Zero
	for _, s := range sales {
		name := s.Product
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		pdf.CellFormat(colDate, 6, s.Date, "", 0, "L", false, 0, "")
		pdf.CellFormat(colProd, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 6, fmt.Sprintf("x%d", s.QuantitySold), "", 0, "C", false, 0, "")
		pdf.CellFormat(colPrice, 6, s.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 6, s.TotalSale.StringFixed(2), "", 1, "R", false, 0, "")

		revenue = revenue.Add(s.TotalSale)
		cost = cost.Add(s.UnitCost.Mul(decimal.NewFromInt(int64(s.QuantitySold))))
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colDate+colProd+colQty, 7, fmt.Sprintf("%d sales", len(sales)), "", 0, "L", false, 0, "")
	pdf.CellFormat(colPrice, 7, "Revenue:", "", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 7, revenue.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(colDate+colProd+colQty, 7, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(colPrice, 7, "Profit:", "", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 7, revenue.Sub(cost).StringFixed(2), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render report: %w", err)
	}
	return &buf, nil
}
