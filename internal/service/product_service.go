package service

import (
	"strings"

	"github.com/martstore/internal/models"
	"github.com/martstore/internal/repository"
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	CategoryID    uint
	Name          string
	Description   string
	Price         models.Money
	StockQuantity int
}

// ListProducts 商品列表（支持搜索与筛选）
func (s *ProductService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.WithCategory = true
	return s.productRepo.List(filter)
}

// GetProduct 商品详情
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateProduct 创建商品
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:    input.CategoryID,
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return s.GetProduct(product.ID)
}

// UpdateProduct 更新商品，逐字段覆盖
func (s *ProductService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.Name = strings.TrimSpace(input.Name)
	product.Description = strings.TrimSpace(input.Description)
	product.Price = input.Price
	product.StockQuantity = input.StockQuantity
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return s.GetProduct(product.ID)
}

// DeleteProduct 删除商品
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(product.ID)
}

func (s *ProductService) validateInput(input *ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrInvalidInput
	}
	if input.Price.Decimal.IsNegative() {
		return ErrInvalidInput
	}
	if input.StockQuantity < 0 {
		return ErrInvalidInput
	}
	if input.CategoryID == 0 {
		return ErrCategoryNotFound
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}
