package handler

import (
	"errors"
	"net/http"

	"voltstock/internal/apierror"
	"voltstock/internal/dto"
	"voltstock/internal/repository"
	"voltstock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoriesHandler struct{ svc service.CategoryService }

func NewCategoriesHandler(svc service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

func (h *CategoriesHandler) List(c *gin.Context) {
	cats, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list categories"))
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *CategoriesHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to create category"))
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// Delete removes a category; stock items that used it keep existing with a
// blank category.
func (h *CategoriesHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid category id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Category not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to delete category"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
