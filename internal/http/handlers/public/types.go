package public

import (
	"time"

	"github.com/martstore/internal/models"

	"github.com/shopspring/decimal"
)

// UserResponse 用户信息响应
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// CategoryResponse 分类响应
type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}

// ProductResponse 商品响应
type ProductResponse struct {
	ID            uint              `json:"id"`
	CategoryID    uint              `json:"category_id"`
	Category      *CategoryResponse `json:"category,omitempty"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         models.Money      `json:"price"`
	StockQuantity int               `json:"stock_quantity"`
	CreatedAt     time.Time         `json:"created_at"`
}

func newProductResponse(product *models.Product) ProductResponse {
	resp := ProductResponse{
		ID:            product.ID,
		CategoryID:    product.CategoryID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		CreatedAt:     product.CreatedAt,
	}
	if product.Category != nil {
		category := newCategoryResponse(product.Category)
		resp.Category = &category
	}
	return resp
}

func newProductResponses(products []models.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, newProductResponse(&products[i]))
	}
	return result
}

// CartItemResponse 购物车项响应
type CartItemResponse struct {
	ProductID uint             `json:"product_id"`
	Quantity  int              `json:"quantity"`
	LineTotal models.Money     `json:"line_total"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// CartResponse 购物车响应
type CartResponse struct {
	ID          uint               `json:"id"`
	Items       []CartItemResponse `json:"items"`
	TotalAmount models.Money       `json:"total_amount"`
}

func newCartResponse(cart *models.Cart) CartResponse {
	resp := CartResponse{
		ID:    cart.ID,
		Items: make([]CartItemResponse, 0, len(cart.Items)),
	}
	total := decimal.Zero
	for i := range cart.Items {
		item := &cart.Items[i]
		itemResp := CartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			product := newProductResponse(item.Product)
			itemResp.Product = &product
			lineTotal := item.Product.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
			itemResp.LineTotal = models.NewMoneyFromDecimal(lineTotal)
			total = total.Add(lineTotal)
		}
		resp.Items = append(resp.Items, itemResp)
	}
	resp.TotalAmount = models.NewMoneyFromDecimal(total)
	return resp
}

// OrderItemResponse 订单项响应
type OrderItemResponse struct {
	ProductID   uint         `json:"product_id"`
	ProductName string       `json:"product_name"`
	Quantity    int          `json:"quantity"`
	Price       models.Money `json:"price"`
	Subtotal    models.Money `json:"subtotal"`
}

// OrderResponse 订单响应
type OrderResponse struct {
	ID          uint                `json:"id"`
	OrderNo     string              `json:"order_no"`
	Status      string              `json:"status"`
	TotalAmount models.Money        `json:"total_amount"`
	Items       []OrderItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

func newOrderResponse(order *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:          order.ID,
		OrderNo:     order.OrderNo,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}
	for i := range order.Items {
		item := &order.Items[i]
		itemResp := OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  models.NewMoneyFromDecimal(item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))),
		}
		if item.Product != nil {
			itemResp.ProductName = item.Product.Name
		}
		resp.Items = append(resp.Items, itemResp)
	}
	return resp
}

func newOrderResponses(orders []models.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, newOrderResponse(&orders[i]))
	}
	return result
}
