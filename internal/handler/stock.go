package handler

import (
	"errors"
	"net/http"

	"voltstock/internal/apierror"
	"voltstock/internal/dto"
	"voltstock/internal/repository"
	"voltstock/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler { return &StockHandler{svc: svc} }

// List godoc
// @Summary List stock items, optionally filtered by category
// @Tags stock
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {array} model.StockItem
// @Router /v1/stock [get]
func (h *StockHandler) List(c *gin.Context) {
	var filter dto.StockFilter
	_ = c.ShouldBindQuery(&filter)
	items, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list stock"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create inserts an empty row the user edits in place.
func (h *StockHandler) Create(c *gin.Context) {
	item, err := h.svc.CreateScaffold(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to create item"))
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *StockHandler) Update(c *gin.Context) {
	var req dto.SaveStockItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Stock item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to update item"))
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *StockHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Stock item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to delete item"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *StockHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build stock summary"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
