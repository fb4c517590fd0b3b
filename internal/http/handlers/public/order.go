package public

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	handlershared "github.com/martstore/internal/http/handlers/shared"
	"github.com/martstore/internal/http/response"
	"github.com/martstore/internal/repository"
	"github.com/martstore/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrder 从购物车提交订单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	order, err := h.OrderService.PlaceOrder(uid)
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}
	response.Created(c, "Order placed successfully", newOrderResponse(order))
}

// ListOrders 当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	status := strings.ToLower(strings.TrimSpace(c.Query("status")))
	if status != "" && !service.IsValidOrderStatus(status) {
		respondError(c, http.StatusUnprocessableEntity, "Invalid order status", nil)
		return
	}

	orders, total, err := h.OrderService.ListOrdersByUser(repository.OrderListFilter{
		UserID:   uid,
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Order list failed", err)
		return
	}

	response.SuccessWithPage(c, "OK", newOrderResponses(orders), response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: int64(math.Ceil(float64(total) / float64(pageSize))),
	})
}

// GetOrder 当前用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetOrderByUser(orderID, uid)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "Order not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Order fetch failed", err)
		return
	}
	response.Success(c, "OK", newOrderResponse(order))
}
