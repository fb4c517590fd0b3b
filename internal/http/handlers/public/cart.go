package public

import (
	"net/http"

	"github.com/martstore/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CartQuantityRequest 购物车数量覆盖请求
type CartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetCart(uid)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Cart fetch failed", err)
		return
	}
	response.Success(c, "OK", newCartResponse(cart))
}

// AddCartItem 向购物车追加商品，已存在时数量累加
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid cart item payload", err)
		return
	}

	cart, err := h.CartService.AddItem(uid, req.ProductID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, "Item added to cart", newCartResponse(cart))
}

// UpdateCartItem 覆盖购物车中某商品的数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid quantity payload", err)
		return
	}

	cart, err := h.CartService.UpdateItem(uid, productID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, "Cart item updated", newCartResponse(cart))
}

// DeleteCartItem 从购物车移除某商品
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}

	cart, err := h.CartService.RemoveItem(uid, productID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, "Cart item removed", newCartResponse(cart))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.ClearCart(uid); err != nil {
		respondError(c, http.StatusInternalServerError, "Cart clear failed", err)
		return
	}
	response.Success(c, "Cart cleared", nil)
}
