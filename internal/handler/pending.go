package handler

import (
	"errors"
	"net/http"

	"voltstock/internal/apierror"
	"voltstock/internal/delivery"
	"voltstock/internal/dto"
	"voltstock/internal/repository"
	"voltstock/internal/service"

	"github.com/gin-gonic/gin"
)

type PendingHandler struct{ svc service.PendingService }

func NewPendingHandler(svc service.PendingService) *PendingHandler {
	return &PendingHandler{svc: svc}
}

func (h *PendingHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list pending orders"))
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *PendingHandler) Create(c *gin.Context) {
	item, err := h.svc.CreateScaffold(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to create pending order"))
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Save godoc
// @Summary Save an edited pending order, running any status-change side effects
// @Tags pending
// @Accept json
// @Produce json
// @Param id path string true "Pending order id"
// @Param body body dto.SavePendingRequest true "Full edited record"
// @Success 200 {object} dto.TransitionResponse
// @Failure 409 {object} apierror.APIError "Illegal status transition"
// @Router /v1/pending/{id} [put]
func (h *PendingHandler) Save(c *gin.Context) {
	var req dto.SavePendingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Save(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		var illegal *delivery.IllegalTransitionError
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, apierror.New("Pending order not found"))
		case errors.As(err, &illegal):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Failed to save pending order"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PendingHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Pending order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to delete pending order"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *PendingHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build pending summary"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
