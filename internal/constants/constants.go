package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses 订单状态全集
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// 用户角色常量
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列常量
const (
	QueueDefault          = "default"
	TaskOrderConfirmEmail = "order:confirm_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "ms"
)

// 商品列表默认分页
const (
	ProductListDefaultLimit = 20
	ProductListMaxLimit     = 100
)
