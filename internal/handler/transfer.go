package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"voltstock/internal/apierror"
	"voltstock/internal/csvio"
	"voltstock/internal/dto"
	"voltstock/internal/service"

	"github.com/gin-gonic/gin"
)

// TransferHandler serves the CSV/XLSX bridge: downloads of each collection
// and uploads that upsert by id. One handler covers all three collections;
// the schema and service importer are chosen per route.
type TransferHandler struct {
	stock   service.StockService
	sales   service.SaleService
	pending service.PendingService
}

func NewTransferHandler(stock service.StockService, sales service.SaleService, pending service.PendingService) *TransferHandler {
	return &TransferHandler{stock: stock, sales: sales, pending: pending}
}

// ── Exports ──────────────────────────────────────────────────────────────────

func (h *TransferHandler) ExportStock(c *gin.Context) {
	data, err := h.stock.ExportCSV(c.Request.Context())
	writeCSV(c, service.StockExportFilename, data, err)
}

func (h *TransferHandler) ExportSales(c *gin.Context) {
	data, err := h.sales.ExportCSV(c.Request.Context())
	writeCSV(c, service.SalesExportFilename, data, err)
}

func (h *TransferHandler) ExportPending(c *gin.Context) {
	data, err := h.pending.ExportCSV(c.Request.Context())
	writeCSV(c, service.PendingExportFilename, data, err)
}

func writeCSV(c *gin.Context, filename, data string, err error) {
	if err != nil {
		if errors.Is(err, csvio.ErrNothingToExport) {
			c.JSON(http.StatusConflict, apierror.New("There is no data to export."))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Export failed"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(data))
}

// ── Imports ──────────────────────────────────────────────────────────────────

// ImportStock godoc
// @Summary Upload a stock CSV or XLSX; rows are upserted by id
// @Tags transfer
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} dto.ImportResponse
// @Failure 422 {object} apierror.APIError "Missing required columns"
// @Router /v1/stock/import [post]
func (h *TransferHandler) ImportStock(c *gin.Context) {
	records, ok := h.readUpload(c, csvio.StockSchema)
	if !ok {
		return
	}
	items, err := h.stock.Import(c.Request.Context(), records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Import failed"))
		return
	}
	c.JSON(http.StatusOK, dto.ImportResponse{Imported: len(records), Records: items})
}

func (h *TransferHandler) ImportSales(c *gin.Context) {
	records, ok := h.readUpload(c, csvio.SalesSchema)
	if !ok {
		return
	}
	items, err := h.sales.Import(c.Request.Context(), records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Import failed"))
		return
	}
	c.JSON(http.StatusOK, dto.ImportResponse{Imported: len(records), Records: items})
}

func (h *TransferHandler) ImportPending(c *gin.Context) {
	records, ok := h.readUpload(c, csvio.PendingSchema)
	if !ok {
		return
	}
	items, err := h.pending.Import(c.Request.Context(), records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Import failed"))
		return
	}
	c.JSON(http.StatusOK, dto.ImportResponse{Imported: len(records), Records: items})
}

// readUpload parses the uploaded file against schema. Spreadsheets (.xlsx)
// go through the excelize path; everything else is treated as CSV text.
// Writes the error response itself when the upload is unusable.
func (h *TransferHandler) readUpload(c *gin.Context, schema csvio.Schema) ([]csvio.Record, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Upload a file in the 'file' form field"))
		return nil, false
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Could not read uploaded file"))
		return nil, false
	}
	defer f.Close()

	var records []csvio.Record
	if strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
		records, err = csvio.ImportXLSX(schema, f)
	} else {
		var raw []byte
		if raw, err = io.ReadAll(f); err == nil {
			records, err = csvio.Import(schema, string(raw))
		}
	}
	if err != nil {
		var ve *csvio.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(ve.Error()))
			return nil, false
		}
		c.JSON(http.StatusBadRequest, apierror.New("Could not parse uploaded file: "+err.Error()))
		return nil, false
	}
	return records, true
}
