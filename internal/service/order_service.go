package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/martstore/internal/constants"
	"github.com/martstore/internal/logger"
	"github.com/martstore/internal/models"
	"github.com/martstore/internal/queue"
	"github.com/martstore/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderNoPrefix = "MS"

// OrderService 订单服务
type OrderService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		queueClient: queueClient,
	}
}

// PlaceOrder 从购物车提交订单
// 校验库存、锁定下单时价格、扣减库存、清空购物车，整体在一个事务内完成
func (s *OrderService) PlaceOrder(userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}

	var created *models.Order
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		cart, err := cartRepo.GetWithItems(userID)
		if err != nil {
			return err
		}
		if cart == nil || len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, ci := range cart.Items {
			product, err := productRepo.GetByID(ci.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return ErrProductNotFound
			}
			if ci.Quantity <= 0 {
				return ErrInvalidInput
			}
			if ci.Quantity > product.StockQuantity {
				return &InsufficientStockError{ProductName: product.Name}
			}

			// 价格以下单时刻的商品价格为准，快照进订单项
			lineTotal := product.Price.Decimal.Mul(decimal.NewFromInt(int64(ci.Quantity)))
			total = total.Add(lineTotal)
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  ci.Quantity,
				Price:     product.Price,
			})
		}

		order := &models.Order{
			OrderNo:     generateOrderNo(),
			UserID:      userID,
			Status:      constants.OrderStatusPending,
			TotalAmount: models.NewMoneyFromDecimal(total),
		}
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}

		for _, ci := range cart.Items {
			affected, err := productRepo.DecrementStock(ci.ProductID, ci.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				// 校验后被并发订单抢走了库存，回滚整单
				name := fmt.Sprintf("#%d", ci.ProductID)
				if ci.Product != nil {
					name = ci.Product.Name
				}
				return &InsufficientStockError{ProductName: name}
			}
		}

		if err := cartRepo.ClearItems(cart.ID); err != nil {
			return err
		}

		created = order
		order.Items = items
		return nil
	})
	if err != nil {
		var stockErr *InsufficientStockError
		if errors.Is(err, ErrEmptyCart) || errors.Is(err, ErrProductNotFound) ||
			errors.Is(err, ErrInvalidInput) || errors.As(err, &stockErr) {
			return nil, err
		}
		logger.Errorw("order_place_failed", "user_id", userID, "error", err)
		return nil, ErrOrderCreateFailed
	}

	s.notifyOrderPlaced(created)
	return created, nil
}

// notifyOrderPlaced 订单落库后的通知与审计，失败只记日志不影响订单
func (s *OrderService) notifyOrderPlaced(order *models.Order) {
	if order == nil {
		return
	}
	logger.Infow("order_placed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"total_amount", order.TotalAmount.String(),
		"item_count", len(order.Items),
	)
	if err := s.queueClient.EnqueueOrderConfirmEmail(queue.OrderConfirmEmailPayload{OrderID: order.ID}); err != nil {
		logger.Errorw("order_confirm_email_enqueue_failed", "order_id", order.ID, "error", err)
	}
}

// generateOrderNo 生成订单号：前缀 + 时间戳 + 6 位随机数字
func generateOrderNo() string {
	return orderNoPrefix + time.Now().Format("20060102150405") + randNumeric(6)
}

func randNumeric(n int) string {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			digits[i] = '0'
			continue
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits)
}
