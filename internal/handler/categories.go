package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eventboard/backend/internal/model"
	"github.com/gin-gonic/gin"
)

type categoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	CreateCategory(ctx context.Context, req model.CategoryRequest) (*model.Category, error)
	UpdateCategory(ctx context.Context, id string, req model.CategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type CategoryHandler struct {
	svc categoryService
}

func NewCategoryHandler(svc categoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} model.Category
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err, "Category", "")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory godoc
// @Summary Get category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} model.Category
// @Failure 404 {object} model.ErrorResponse
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id := c.Param("id")
	category, err := h.svc.GetCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Category", id)
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory godoc
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body model.CategoryRequest true "Category"
// @Success 201 {object} model.Category
// @Failure 400,401,403 {object} model.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req model.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c)
		return
	}
	category, err := h.svc.CreateCategory(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "Category", "")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Rename category
// @Tags categories
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path string true "Category ID"
// @Param request body model.CategoryRequest true "Category"
// @Success 200 {object} model.Category
// @Failure 400,401,403,404 {object} model.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id := c.Param("id")
	var req model.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c)
		return
	}
	category, err := h.svc.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err, "Category", id)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete category
// @Tags categories
// @Produce json
// @Security TokenAuth
// @Param id path string true "Category ID"
// @Success 200 {object} model.MessageResponse
// @Failure 401,403,404 {object} model.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		writeError(c, err, "Category", id)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: fmt.Sprintf("Category with id %s successfully deleted", id)})
}
