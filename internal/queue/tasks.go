package queue

import (
	"encoding/json"

	"github.com/martstore/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmEmail 订单确认邮件任务
	TaskOrderConfirmEmail = constants.TaskOrderConfirmEmail
)

// OrderConfirmEmailPayload 订单确认邮件任务载荷
type OrderConfirmEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderConfirmEmailTask 创建订单确认邮件任务
func NewOrderConfirmEmailTask(payload OrderConfirmEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmEmail, body), nil
}
