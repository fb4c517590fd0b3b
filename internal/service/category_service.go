package service

import (
	"strings"

	"github.com/martstore/internal/models"
	"github.com/martstore/internal/repository"
)

// CategoryService 商品分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryInput 分类创建/更新输入
type CategoryInput struct {
	Name        string
	Description string
}

// ListCategories 分类列表
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// GetCategory 分类详情
func (s *CategoryService) GetCategory(id uint) (*models.Category, error) {
	if id == 0 {
		return nil, ErrCategoryNotFound
	}
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// CreateCategory 创建分类，名称不可重复
func (s *CategoryService) CreateCategory(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	count, err := s.categoryRepo.CountByName(name, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameExists
	}

	category := &models.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory 更新分类
func (s *CategoryService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	count, err := s.categoryRepo.CountByName(name, &category.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameExists
	}

	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory 删除分类，分类下还有商品时拒绝删除
func (s *CategoryService) DeleteCategory(id uint) error {
	category, err := s.GetCategory(id)
	if err != nil {
		return err
	}
	count, err := s.categoryRepo.CountProducts(category.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(category.ID)
}
