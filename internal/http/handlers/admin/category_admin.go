package admin

import (
	"errors"
	"net/http"

	"github.com/martstore/internal/http/response"
	"github.com/martstore/internal/models"
	"github.com/martstore/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CategoryResponse 管理端分类响应
type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid category payload", err)
		return
	}

	category, err := h.CategoryService.CreateCategory(service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Created(c, "Category created", newCategoryResponse(category))
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid category payload", err)
		return
	}

	category, err := h.CategoryService.UpdateCategory(id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, "Category updated", newCategoryResponse(category))
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.DeleteCategory(id); err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, "Category deleted", nil)
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, http.StatusNotFound, "Category not found", nil)
	case errors.Is(err, service.ErrCategoryNameExists):
		respondError(c, http.StatusUnprocessableEntity, "Category name already exists", nil)
	case errors.Is(err, service.ErrCategoryInUse):
		respondError(c, http.StatusUnprocessableEntity, "Category still has products", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusUnprocessableEntity, "Invalid category payload", nil)
	default:
		respondError(c, http.StatusInternalServerError, "Category operation failed", err)
	}
}
