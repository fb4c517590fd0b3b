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

func setupCategoryServiceTest(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:category_svc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	if _, err := svc.CreateCategory(CategoryInput{Name: "电子产品"}); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if _, err := svc.CreateCategory(CategoryInput{Name: "电子产品"}); !errors.Is(err, ErrCategoryNameExists) {
		t.Fatalf("duplicate name want ErrCategoryNameExists got %v", err)
	}
	if _, err := svc.CreateCategory(CategoryInput{Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name want ErrInvalidInput got %v", err)
	}
}

func TestUpdateCategoryKeepsOwnName(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	created, err := svc.CreateCategory(CategoryInput{Name: "电子产品"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	other, err := svc.CreateCategory(CategoryInput{Name: "家居用品"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	// 改名为自己现在的名字应当允许
	if _, err := svc.UpdateCategory(created.ID, CategoryInput{Name: "电子产品", Description: "数码与配件"}); err != nil {
		t.Fatalf("update with own name failed: %v", err)
	}
	// 改名为别的分类的名字要拒绝
	if _, err := svc.UpdateCategory(other.ID, CategoryInput{Name: "电子产品"}); !errors.Is(err, ErrCategoryNameExists) {
		t.Fatalf("rename onto existing want ErrCategoryNameExists got %v", err)
	}
	if _, err := svc.UpdateCategory(9999, CategoryInput{Name: "不存在"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("missing category want ErrCategoryNotFound got %v", err)
	}
}

func TestDeleteCategoryBlockedWhenInUse(t *testing.T) {
	svc, db := setupCategoryServiceTest(t)

	created, err := svc.CreateCategory(CategoryInput{Name: "电子产品"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	product := &models.Product{
		CategoryID:    created.ID,
		Name:          "机械键盘",
		Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		StockQuantity: 1,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := svc.DeleteCategory(created.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("delete in-use category want ErrCategoryInUse got %v", err)
	}

	if err := db.Delete(product).Error; err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if err := svc.DeleteCategory(created.ID); err != nil {
		t.Fatalf("delete empty category failed: %v", err)
	}
	if _, err := svc.GetCategory(created.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("deleted category want ErrCategoryNotFound got %v", err)
	}
}
