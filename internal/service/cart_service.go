package service

import (
	"github.com/martstore/internal/models"
	"github.com/martstore/internal/repository"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// GetCart 获取用户购物车，首次访问时惰性创建
func (s *CartService) GetCart(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	cart, err := s.cartRepo.GetWithItems(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	return s.cartRepo.GetOrCreateByUser(userID)
}

// AddItem 向购物车追加商品，已存在时数量累加
func (s *CartService) AddItem(userID, productID uint, quantity int) (*models.Cart, error) {
	if userID == 0 || productID == 0 || quantity <= 0 {
		return nil, ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetItem(cart.ID, productID)
	if err != nil {
		return nil, err
	}
	newQuantity := quantity
	if item != nil {
		newQuantity = item.Quantity + quantity
	}
	// 加购时的预检，下单事务内才是最终校验
	if newQuantity > product.StockQuantity {
		return nil, &InsufficientStockError{ProductName: product.Name}
	}
	if item == nil {
		if err := s.cartRepo.CreateItem(&models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}); err != nil {
			return nil, err
		}
	} else {
		if err := s.cartRepo.UpdateItemQuantity(item.ID, newQuantity); err != nil {
			return nil, err
		}
	}
	return s.cartRepo.GetWithItems(userID)
}

// UpdateItem 覆盖购物车中某商品的数量
func (s *CartService) UpdateItem(userID, productID uint, quantity int) (*models.Cart, error) {
	if userID == 0 || productID == 0 || quantity <= 0 {
		return nil, ErrInvalidInput
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}
	item, err := s.cartRepo.GetItem(cart.ID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if quantity > product.StockQuantity {
		return nil, &InsufficientStockError{ProductName: product.Name}
	}
	if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	return s.cartRepo.GetWithItems(userID)
}

// RemoveItem 从购物车移除某商品
func (s *CartService) RemoveItem(userID, productID uint) (*models.Cart, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrInvalidInput
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}
	affected, err := s.cartRepo.DeleteItem(cart.ID, productID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrCartItemNotFound
	}
	return s.cartRepo.GetWithItems(userID)
}

// ClearCart 清空购物车，购物车不存在或已空也视为成功
func (s *CartService) ClearCart(userID uint) error {
	if userID == 0 {
		return ErrInvalidInput
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.cartRepo.ClearItems(cart.ID)
}
