package admin

import (
	"errors"
	"net/http"

	"github.com/martstore/internal/http/response"
	"github.com/martstore/internal/models"
	"github.com/martstore/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	CategoryID    uint         `json:"category_id" binding:"required"`
	Name          string       `json:"name" binding:"required"`
	Description   string       `json:"description"`
	Price         models.Money `json:"price"`
	StockQuantity int          `json:"stock_quantity"`
}

// ProductResponse 管理端商品响应
type ProductResponse struct {
	ID            uint         `json:"id"`
	CategoryID    uint         `json:"category_id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Price         models.Money `json:"price"`
	StockQuantity int          `json:"stock_quantity"`
}

func newProductResponse(product *models.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID,
		CategoryID:    product.CategoryID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
	}
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid product payload", err)
		return
	}

	product, err := h.ProductService.CreateProduct(service.ProductInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Created(c, "Product created", newProductResponse(product))
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid product payload", err)
		return
	}

	product, err := h.ProductService.UpdateProduct(id, service.ProductInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, "Product updated", newProductResponse(product))
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.DeleteProduct(id); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, "Product deleted", nil)
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, http.StatusNotFound, "Product not found", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, http.StatusUnprocessableEntity, "Category not found", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusUnprocessableEntity, "Invalid product payload", nil)
	default:
		respondError(c, http.StatusInternalServerError, "Product operation failed", err)
	}
}
