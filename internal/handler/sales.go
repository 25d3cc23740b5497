package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"voltstock/internal/apierror"
	"voltstock/internal/dto"
	"voltstock/internal/repository"
	"voltstock/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

func (h *SalesHandler) List(c *gin.Context) {
	sales, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list sales"))
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.SaveSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sale, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *SalesHandler) Update(c *gin.Context) {
	var req dto.SaveSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sale, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Sale not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to update sale"))
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SalesHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Sale not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to delete sale"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *SalesHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build sales summary"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Report godoc
// @Summary Download the sales ledger as a PDF report
// @Tags sales
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /v1/sales/report.pdf [get]
func (h *SalesHandler) Report(c *gin.Context) {
	buf, err := h.svc.ReportPDF(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to render report"))
		return
	}
	filename := fmt.Sprintf("sales_report_%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
