package repository

import (
	"errors"

	"github.com/docassembler/backend/internal/model"
	"gorm.io/gorm"
)

// CategoryRepository 内容分类 Repository 接口
type CategoryRepository interface {
	List() ([]model.Category, error)
	GetByID(id uint) (*model.Category, error)
	Create(category *model.Category) error
	Delete(id uint) error
}

// categoryRepository 实现
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建 Repository 实例
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List 获取分类列表
func (r *categoryRepository) List() ([]model.Category, error) {
	var categories []model.Category
	result := r.db.Order("sort_order ASC, id ASC").Find(&categories)
	return categories, result.Error
}

// GetByID 根据ID获取分类
func (r *categoryRepository) GetByID(id uint) (*model.Category, error) {
	var category model.Category
	result := r.db.First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &category, nil
}

// Create 创建分类
func (r *categoryRepository) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

// Delete 删除分类
func (r *categoryRepository) Delete(id uint) error {
	return r.db.Delete(&model.Category{}, id).Error
}
