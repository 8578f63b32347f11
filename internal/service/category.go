package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/docassembler/backend/internal/model"
	"github.com/docassembler/backend/internal/repository"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryDTO 分类数据传输对象
type CategoryDTO struct {
	ID        uint   `json:"id"`
	Label     string `json:"label"`
	SortOrder int    `json:"sort_order"`
}

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Label     string `json:"label" binding:"required,min=1,max=100"`
	SortOrder int    `json:"sort_order"`
}

// CategoryService 分类服务接口
type CategoryService interface {
	List(ctx context.Context) ([]*CategoryDTO, error)
	Create(ctx context.Context, req CreateCategoryRequest) (*CategoryDTO, error)
	Delete(ctx context.Context, id uint) error
}

// categoryService 实现
type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建服务实例
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

// List 获取分类列表
func (s *categoryService) List(ctx context.Context) ([]*CategoryDTO, error) {
	categories, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	dtos := make([]*CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, toCategoryDTO(&categories[i]))
	}
	return dtos, nil
}

// Create 创建分类
func (s *categoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryDTO, error) {
	category := &model.Category{
		Label:     req.Label,
		SortOrder: req.SortOrder,
	}
	if err := s.repo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return toCategoryDTO(category), nil
}

// Delete 删除分类
func (s *categoryService) Delete(ctx context.Context, id uint) error {
	_, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to get category: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// toCategoryDTO 转换为 DTO
func toCategoryDTO(c *model.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:        c.ID,
		Label:     c.Label,
		SortOrder: c.SortOrder,
	}
}
