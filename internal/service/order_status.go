package service

import (
	"strings"

	"github.com/martstore/internal/constants"
	"github.com/martstore/internal/logger"
	"github.com/martstore/internal/models"
)

// IsValidOrderStatus 判断订单状态取值是否合法
func IsValidOrderStatus(status string) bool {
	for _, s := range constants.OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// UpdateOrderStatus 更新订单状态（管理端），状态取值之间不限制流转方向
func (s *OrderService) UpdateOrderStatus(orderID uint, status string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !IsValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}

	affected, err := s.orderRepo.UpdateStatus(orderID, status)
	if err != nil {
		logger.Errorw("order_status_update_failed", "order_id", orderID, "status", status, "error", err)
		return nil, ErrOrderUpdateFailed
	}
	if affected == 0 {
		return nil, ErrOrderNotFound
	}

	logger.Infow("order_status_updated", "order_id", orderID, "status", status)
	return s.GetOrderByID(orderID)
}
