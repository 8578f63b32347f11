package repository

import (
	"errors"

	"github.com/docassembler/backend/internal/model"
	"gorm.io/gorm"
)

// SnippetRepository 内容片段 Repository 接口
type SnippetRepository interface {
	List() ([]model.ContentSnippet, error)
	GetByCategoryID(categoryID uint) ([]model.ContentSnippet, error)
	GetByID(id uint) (*model.ContentSnippet, error)
	Create(snippet *model.ContentSnippet) error
	Update(snippet *model.ContentSnippet) error
	Delete(id uint) error
}

// snippetRepository 实现
type snippetRepository struct {
	db *gorm.DB
}

// NewSnippetRepository 创建 Repository 实例
func NewSnippetRepository(db *gorm.DB) SnippetRepository {
	return &snippetRepository{db: db}
}

// List 获取全部内容片段
func (r *snippetRepository) List() ([]model.ContentSnippet, error) {
	var snippets []model.ContentSnippet
	result := r.db.Order("id ASC").Find(&snippets)
	return snippets, result.Error
}

// GetByCategoryID 获取分类下的所有片段
func (r *snippetRepository) GetByCategoryID(categoryID uint) ([]model.ContentSnippet, error) {
	var snippets []model.ContentSnippet
	result := r.db.Where("category_id = ?", categoryID).
		Order("id ASC").
		Find(&snippets)
	return snippets, result.Error
}

// GetByID 根据ID获取片段
func (r *snippetRepository) GetByID(id uint) (*model.ContentSnippet, error) {
	var snippet model.ContentSnippet
	result := r.db.First(&snippet, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &snippet, nil
}

// Create 创建片段
func (r *snippetRepository) Create(snippet *model.ContentSnippet) error {
	return r.db.Create(snippet).Error
}

// Update 更新片段
func (r *snippetRepository) Update(snippet *model.ContentSnippet) error {
	return r.db.Save(snippet).Error
}

// Delete 删除片段
func (r *snippetRepository) Delete(id uint) error {
	return r.db.Delete(&model.ContentSnippet{}, id).Error
}
