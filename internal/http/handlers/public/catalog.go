package public

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	handlershared "github.com/martstore/internal/http/handlers/shared"
	"github.com/martstore/internal/http/response"
	"github.com/martstore/internal/models"
	"github.com/martstore/internal/repository"
	"github.com/martstore/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListCategories()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Category list failed", err)
		return
	}
	result := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, newCategoryResponse(&categories[i]))
	}
	response.Success(c, "OK", result)
}

// GetCategory 分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := h.CategoryService.GetCategory(id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Category fetch failed", err)
		return
	}
	response.Success(c, "OK", newCategoryResponse(category))
}

// ListProducts 商品列表，支持搜索、分类与价格区间筛选
func (h *Handler) ListProducts(c *gin.Context) {
	filter, ok := parseProductListFilter(c)
	if !ok {
		return
	}

	products, total, err := h.ProductService.ListProducts(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Product list failed", err)
		return
	}

	response.SuccessWithPage(c, "OK", newProductResponses(products), response.Pagination{
		Page:      filter.Page,
		PageSize:  filter.PageSize,
		Total:     total,
		TotalPage: int64(math.Ceil(float64(total) / float64(filter.PageSize))),
	})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Product fetch failed", err)
		return
	}
	response.Success(c, "OK", newProductResponse(product))
}

func parseProductListFilter(c *gin.Context) (repository.ProductListFilter, bool) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	}

	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "Invalid category_id", nil)
			return filter, false
		}
		filter.CategoryID = uint(categoryID)
	}
	if raw := strings.TrimSpace(c.Query("min_price")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil || value.IsNegative() {
			respondError(c, http.StatusUnprocessableEntity, "Invalid min_price", nil)
			return filter, false
		}
		minPrice := models.NewMoneyFromDecimal(value)
		filter.MinPrice = &minPrice
	}
	if raw := strings.TrimSpace(c.Query("max_price")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil || value.IsNegative() {
			respondError(c, http.StatusUnprocessableEntity, "Invalid max_price", nil)
			return filter, false
		}
		maxPrice := models.NewMoneyFromDecimal(value)
		filter.MaxPrice = &maxPrice
	}
	return filter, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusNotFound, "Resource not found", nil)
		return 0, false
	}
	return uint(id), true
}
