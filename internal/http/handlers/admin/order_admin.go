package admin

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/martstore/internal/http/handlers/shared"
	"github.com/martstore/internal/http/response"
	"github.com/martstore/internal/models"
	"github.com/martstore/internal/repository"
	"github.com/martstore/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderStatusRequest 订单状态更新请求
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminOrderResponse 管理端订单响应
type AdminOrderResponse struct {
	ID          uint         `json:"id"`
	OrderNo     string       `json:"order_no"`
	UserID      uint         `json:"user_id"`
	Status      string       `json:"status"`
	TotalAmount models.Money `json:"total_amount"`
	ItemCount   int          `json:"item_count"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func newAdminOrderResponse(order *models.Order) AdminOrderResponse {
	return AdminOrderResponse{
		ID:          order.ID,
		OrderNo:     order.OrderNo,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// ListOrders 订单列表（全部用户）
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	status := strings.ToLower(strings.TrimSpace(c.Query("status")))
	if status != "" && !service.IsValidOrderStatus(status) {
		respondError(c, http.StatusUnprocessableEntity, "Invalid order status", nil)
		return
	}

	var userID uint
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusUnprocessableEntity, "Invalid user_id", nil)
			return
		}
		userID = uint(parsed)
	}

	orders, total, err := h.OrderService.ListOrders(repository.OrderListFilter{
		UserID:   userID,
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Order list failed", err)
		return
	}

	result := make([]AdminOrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, newAdminOrderResponse(&orders[i]))
	}
	response.SuccessWithPage(c, "OK", result, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: int64(math.Ceil(float64(total) / float64(pageSize))),
	})
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "Order not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Order fetch failed", err)
		return
	}
	response.Success(c, "OK", newAdminOrderResponse(order))
}

// UpdateOrderStatus 更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid status payload", err)
		return
	}

	order, err := h.OrderService.UpdateOrderStatus(orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			respondError(c, http.StatusUnprocessableEntity, "Invalid order status", nil)
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, http.StatusNotFound, "Order not found", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Order status update failed", err)
		}
		return
	}
	response.Success(c, "Order status updated", newAdminOrderResponse(order))
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
