package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/martstore/internal/models"
	"github.com/martstore/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_svc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func seedCartProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *models.Product {
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

func TestGetCartLazilyCreates(t *testing.T) {
	svc, db := setupCartServiceTest(t)

	cart, err := svc.GetCart(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if cart.UserID != 1 {
		t.Fatalf("cart user want 1 got %d", cart.UserID)
	}

	// 再次获取拿到同一辆购物车
	again, err := svc.GetCart(1)
	if err != nil {
		t.Fatalf("get cart again failed: %v", err)
	}
	if again.ID != cart.ID {
		t.Fatalf("cart id want %d got %d", cart.ID, again.ID)
	}

	var count int64
	if err := db.Model(&models.Cart{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("carts want 1 got %d", count)
	}
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := seedCartProduct(t, db, "机械键盘", 100, 10)

	if _, err := svc.AddItem(1, product.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	cart, err := svc.AddItem(1, product.ID, 3)
	if err != nil {
		t.Fatalf("add item again failed: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("cart rows want 1 got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", cart.Items[0].Quantity)
	}
}

func TestAddItemMissingProduct(t *testing.T) {
	svc, _ := setupCartServiceTest(t)

	if _, err := svc.AddItem(1, 9999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
	if _, err := svc.AddItem(1, 1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero quantity want ErrInvalidInput got %v", err)
	}
}

func TestAddItemChecksAvailableStock(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := seedCartProduct(t, db, "机械键盘", 100, 3)

	if _, err := svc.AddItem(1, product.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	// 累加后超出库存
	var stockErr *InsufficientStockError
	if _, err := svc.AddItem(1, product.ID, 2); !errors.As(err, &stockErr) {
		t.Fatalf("over-stock add want InsufficientStockError got %v", err)
	}
	if stockErr.ProductName != "机械键盘" {
		t.Fatalf("product name want 机械键盘 got %s", stockErr.ProductName)
	}
	if _, err := svc.UpdateItem(1, product.ID, 4); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("over-stock update want ErrInsufficientStock got %v", err)
	}
	if _, err := svc.UpdateItem(1, product.ID, 3); err != nil {
		t.Fatalf("update to full stock failed: %v", err)
	}
}

func TestUpdateItemOverwritesQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := seedCartProduct(t, db, "机械键盘", 100, 10)

	if _, err := svc.AddItem(1, product.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	cart, err := svc.UpdateItem(1, product.ID, 7)
	if err != nil {
		t.Fatalf("update item failed: %v", err)
	}
	if cart.Items[0].Quantity != 7 {
		t.Fatalf("quantity want 7 got %d", cart.Items[0].Quantity)
	}

	if _, err := svc.UpdateItem(1, 9999, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("missing item want ErrCartItemNotFound got %v", err)
	}
	if _, err := svc.UpdateItem(2, product.ID, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("missing cart want ErrCartItemNotFound got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := seedCartProduct(t, db, "机械键盘", 100, 10)

	if _, err := svc.AddItem(1, product.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	cart, err := svc.RemoveItem(1, product.ID)
	if err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("cart should be empty got %d items", len(cart.Items))
	}

	if _, err := svc.RemoveItem(1, product.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("remove again want ErrCartItemNotFound got %v", err)
	}
}

func TestClearCartIsIdempotent(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := seedCartProduct(t, db, "机械键盘", 100, 10)

	if _, err := svc.AddItem(1, product.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := svc.ClearCart(1); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	// 已空与不存在的购物车都按成功处理
	if err := svc.ClearCart(1); err != nil {
		t.Fatalf("clear empty cart failed: %v", err)
	}
	if err := svc.ClearCart(42); err != nil {
		t.Fatalf("clear missing cart failed: %v", err)
	}
}
