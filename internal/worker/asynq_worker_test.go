package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/martstore/internal/config"
	"github.com/martstore/internal/models"
	"github.com/martstore/internal/provider"
	"github.com/martstore/internal/repository"
	"github.com/martstore/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}, &models.Product{}); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}

	container := &provider.Container{
		UserRepo:     repository.NewUserRepository(db),
		OrderRepo:    repository.NewOrderRepository(db),
		EmailService: service.NewEmailService(&config.EmailConfig{Enabled: false}),
	}
	return NewConsumer(container), db
}

func TestHandleOrderConfirmEmailBadPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task := asynq.NewTask("order:confirm_email", []byte("{not json"))
	if err := consumer.handleOrderConfirmEmail(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestHandleOrderConfirmEmailSkipsMissingOrder(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task := asynq.NewTask("order:confirm_email", []byte(`{"order_id":9999}`))
	if err := consumer.handleOrderConfirmEmail(context.Background(), task); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}
}

func TestHandleOrderConfirmEmailSkipsDisabledEmail(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	user := &models.User{Name: "张三", Email: "a@example.com", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order := &models.Order{
		OrderNo:     "MS20250101000000123456",
		UserID:      user.ID,
		Status:      "pending",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// 邮件服务未启用时按跳过处理，不触发重试
	task := asynq.NewTask("order:confirm_email", []byte(fmt.Sprintf(`{"order_id":%d}`, order.ID)))
	if err := consumer.handleOrderConfirmEmail(context.Background(), task); err != nil {
		t.Fatalf("disabled email should be skipped, got %v", err)
	}
}
