package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
// stock_quantity 是订单提交唯一会修改的字段
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                               // 主键
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`                  // 分类ID
	Name          string         `gorm:"not null;index" json:"name"`                         // 名称
	Description   string         `gorm:"type:text" json:"description"`                       // 描述
	Price         Money          `gorm:"type:decimal(12,2);not null;default:0" json:"price"` // 单价
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`           // 库存数量
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间

	// 关联
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
