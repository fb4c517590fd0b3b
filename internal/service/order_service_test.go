package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/martstore/internal/config"
	"github.com/martstore/internal/constants"
	"github.com/martstore/internal/models"
	"github.com/martstore/internal/queue"
	"github.com/martstore/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_svc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	models.DB = db

	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("create queue client failed: %v", err)
	}

	svc := NewOrderService(
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		repository.NewOrderRepository(db),
		queueClient,
	)
	return svc, db
}

func seedCatalog(t *testing.T, db *gorm.DB, name string, price int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:    1,
		Name:          name,
		Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		StockQuantity: stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func seedCartWithItems(t *testing.T, db *gorm.DB, userID uint, entries map[uint]int) *models.Cart {
	t.Helper()
	cart := &models.Cart{UserID: userID}
	if err := db.Create(cart).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	for productID, quantity := range entries {
		item := &models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
		if err := db.Create(item).Error; err != nil {
			t.Fatalf("create cart item failed: %v", err)
		}
	}
	return cart
}

func TestPlaceOrderCreatesOrderAndClearsCart(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	keyboard := seedCatalog(t, db, "机械键盘", 100, 10)
	mouse := seedCatalog(t, db, "无线鼠标", 50, 5)
	cart := seedCartWithItems(t, db, 1, map[uint]int{keyboard.ID: 2, mouse.ID: 1})

	order, err := svc.PlaceOrder(1)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.OrderNo == "" {
		t.Fatalf("order no should not be empty")
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("order status want pending got %s", order.Status)
	}
	if got := order.TotalAmount.String(); got != "250.00" {
		t.Fatalf("order total want 250.00 got %s", got)
	}

	var itemCount int64
	if err := db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error; err != nil {
		t.Fatalf("count order items failed: %v", err)
	}
	if itemCount != 2 {
		t.Fatalf("order items want 2 got %d", itemCount)
	}

	var gotKeyboard models.Product
	if err := db.First(&gotKeyboard, keyboard.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if gotKeyboard.StockQuantity != 8 {
		t.Fatalf("stock want 8 got %d", gotKeyboard.StockQuantity)
	}

	var cartItemCount int64
	if err := db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&cartItemCount).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if cartItemCount != 0 {
		t.Fatalf("cart should be empty after order, got %d items", cartItemCount)
	}
}

func TestPlaceOrderLocksPriceAtCheckout(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := seedCatalog(t, db, "显示器", 1200, 3)
	seedCartWithItems(t, db, 1, map[uint]int{product.ID: 1})

	order, err := svc.PlaceOrder(1)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	// 下单后改价不影响已生成订单的金额
	newPrice := models.NewMoneyFromDecimal(decimal.NewFromInt(1500))
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", newPrice).Error; err != nil {
		t.Fatalf("update product price failed: %v", err)
	}

	var reloaded models.Order
	if err := db.Preload("Items").First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if got := reloaded.TotalAmount.String(); got != "1200.00" {
		t.Fatalf("order total want 1200.00 got %s", got)
	}
	if len(reloaded.Items) != 1 || reloaded.Items[0].Price.String() != "1200.00" {
		t.Fatalf("order item price snapshot want 1200.00 got %+v", reloaded.Items)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	if _, err := svc.PlaceOrder(1); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart got %v", err)
	}

	seedCartWithItems(t, db, 2, map[uint]int{})
	if _, err := svc.PlaceOrder(2); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart for empty cart got %v", err)
	}
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	keyboard := seedCatalog(t, db, "机械键盘", 100, 10)
	scarce := seedCatalog(t, db, "限量手办", 500, 1)
	cart := seedCartWithItems(t, db, 1, map[uint]int{keyboard.ID: 2, scarce.ID: 3})

	_, err := svc.PlaceOrder(1)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock got %v", err)
	}
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) || stockErr.ProductName != "限量手办" {
		t.Fatalf("want product name in error, got %v", err)
	}

	// 整单回滚：不生成订单、不扣库存、不清购物车
	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("no order should exist, got %d", orderCount)
	}

	var gotKeyboard models.Product
	if err := db.First(&gotKeyboard, keyboard.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if gotKeyboard.StockQuantity != 10 {
		t.Fatalf("stock should be untouched, want 10 got %d", gotKeyboard.StockQuantity)
	}

	var cartItemCount int64
	if err := db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&cartItemCount).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if cartItemCount != 2 {
		t.Fatalf("cart should be preserved, want 2 items got %d", cartItemCount)
	}
}

func TestPlaceOrderSequentialContention(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	scarce := seedCatalog(t, db, "限量手办", 500, 1)
	seedCartWithItems(t, db, 1, map[uint]int{scarce.ID: 1})
	seedCartWithItems(t, db, 2, map[uint]int{scarce.ID: 1})

	first, err := svc.PlaceOrder(1)
	if err != nil {
		t.Fatalf("first order should succeed: %v", err)
	}
	if first.TotalAmount.String() != "500.00" {
		t.Fatalf("first order total want 500.00 got %s", first.TotalAmount.String())
	}

	if _, err := svc.PlaceOrder(2); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("second order want ErrInsufficientStock got %v", err)
	}

	var got models.Product
	if err := db.First(&got, scarce.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.StockQuantity != 0 {
		t.Fatalf("stock want 0 got %d", got.StockQuantity)
	}

	// 失败方的购物车原样保留
	var cartItemCount int64
	if err := db.Model(&models.CartItem{}).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", 2).
		Count(&cartItemCount).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if cartItemCount != 1 {
		t.Fatalf("loser cart want 1 item got %d", cartItemCount)
	}
}

func TestGetOrderScopedToUser(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := seedCatalog(t, db, "机械键盘", 100, 10)
	seedCartWithItems(t, db, 1, map[uint]int{product.ID: 1})

	order, err := svc.PlaceOrder(1)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	got, err := svc.GetOrderByUser(order.ID, 1)
	if err != nil {
		t.Fatalf("get own order failed: %v", err)
	}
	if got.ID != order.ID {
		t.Fatalf("order id want %d got %d", order.ID, got.ID)
	}

	// 他人订单视为不存在
	if _, err := svc.GetOrderByUser(order.ID, 2); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("other user's order want ErrOrderNotFound got %v", err)
	}
}

func TestListOrdersByUser(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := seedCatalog(t, db, "机械键盘", 100, 10)

	seedCartWithItems(t, db, 1, map[uint]int{product.ID: 1})
	if _, err := svc.PlaceOrder(1); err != nil {
		t.Fatalf("place first order failed: %v", err)
	}
	seedCartWithItems(t, db, 2, map[uint]int{product.ID: 1})
	if _, err := svc.PlaceOrder(2); err != nil {
		t.Fatalf("place second order failed: %v", err)
	}

	orders, total, err := svc.ListOrdersByUser(repository.OrderListFilter{UserID: 1, Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("user 1 orders want 1 got total=%d len=%d", total, len(orders))
	}
	if orders[0].UserID != 1 {
		t.Fatalf("order user want 1 got %d", orders[0].UserID)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := seedCatalog(t, db, "机械键盘", 100, 10)
	seedCartWithItems(t, db, 1, map[uint]int{product.ID: 1})

	order, err := svc.PlaceOrder(1)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	updated, err := svc.UpdateOrderStatus(order.ID, "shipped")
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusShipped {
		t.Fatalf("status want shipped got %s", updated.Status)
	}

	// 状态之间不限制流转方向
	updated, err = svc.UpdateOrderStatus(order.ID, "pending")
	if err != nil {
		t.Fatalf("update status back failed: %v", err)
	}
	if updated.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", updated.Status)
	}

	if _, err := svc.UpdateOrderStatus(order.ID, "refunded"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("invalid status want ErrInvalidOrderStatus got %v", err)
	}
	if _, err := svc.UpdateOrderStatus(9999, "shipped"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("missing order want ErrOrderNotFound got %v", err)
	}
}
