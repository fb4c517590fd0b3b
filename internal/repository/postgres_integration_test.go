//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/martstore/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.CartItem{},
		&models.Cart{},
		&models.Product{},
		&models.Category{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	category := &models.Category{Name: "pg-electronics"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	repo := NewProductRepository(db)
	product := &models.Product{
		CategoryID:    category.ID,
		Name:          "Mechanical Keyboard",
		Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(99)),
		StockQuantity: 10,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rows, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 20, Search: "keyboard"})
	if err != nil {
		t.Fatalf("product search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product search want 1 got total=%d len=%d", total, len(rows))
	}
}

func TestPostgresDecrementStockConcurrentSafety(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	category := &models.Category{Name: "pg-scarce"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	repo := NewProductRepository(db)
	product := &models.Product{
		CategoryID:    category.ID,
		Name:          "Limited Edition",
		Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
		StockQuantity: 1,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	done := make(chan int64, 2)
	for i := 0; i < 2; i++ {
		go func() {
			affected, err := repo.DecrementStock(product.ID, 1)
			if err != nil {
				t.Errorf("decrement stock failed: %v", err)
			}
			done <- affected
		}()
	}

	var succeeded int64
	for i := 0; i < 2; i++ {
		succeeded += <-done
	}
	if succeeded != 1 {
		t.Fatalf("exactly one decrement should win, got %d", succeeded)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.StockQuantity != 0 {
		t.Fatalf("stock want 0 got %d", got.StockQuantity)
	}
}
