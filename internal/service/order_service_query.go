package service

import (
	"github.com/martstore/internal/logger"
	"github.com/martstore/internal/models"
	"github.com/martstore/internal/repository"
)

// ListOrdersByUser 查询用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrNotFound
	}
	orders, total, err := s.orderRepo.ListByUser(filter)
	if err != nil {
		logger.Errorw("order_list_failed", "user_id", filter.UserID, "error", err)
		return nil, 0, ErrOrderFetchFailed
	}
	return orders, total, nil
}

// ListOrders 查询订单列表（管理端），不限定用户
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	orders, total, err := s.orderRepo.List(filter)
	if err != nil {
		logger.Errorw("order_list_failed", "error", err)
		return nil, 0, ErrOrderFetchFailed
	}
	return orders, total, nil
}

// GetOrderByUser 查询用户订单详情，订单不属于该用户时视为不存在
func (s *OrderService) GetOrderByUser(orderID, userID uint) (*models.Order, error) {
	if orderID == 0 || userID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		logger.Errorw("order_get_failed", "order_id", orderID, "user_id", userID, "error", err)
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByID 查询订单详情（管理端）
func (s *OrderService) GetOrderByID(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		logger.Errorw("order_get_failed", "order_id", orderID, "error", err)
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
