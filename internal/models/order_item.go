package models

import (
	"time"
)

// OrderItem 订单项表
// price 为下单时的商品单价快照，此后商品调价不影响历史订单
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                // 主键
	OrderID   uint      `gorm:"index;not null" json:"order_id"`                      // 订单ID
	ProductID uint      `gorm:"index;not null" json:"product_id"`                    // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                            // 数量
	Price     Money     `gorm:"type:decimal(12,2);not null;default:0" json:"price"` // 单价快照
	CreatedAt time.Time `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                          // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
