package repository

import (
	"errors"

	"github.com/docassembler/backend/internal/model"
	"gorm.io/gorm"
)

// TemplateRepository 模板 Repository 接口
type TemplateRepository interface {
	List() ([]model.Template, error)
	GetByID(id uint) (*model.Template, error)
	GetByName(name string) (*model.Template, error)
	Create(tpl *model.Template) error
	Save(tpl *model.Template) error
	Delete(id uint) error
}

// templateRepository 实现
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建 Repository 实例
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// List 获取模板列表（不含分节）
func (r *templateRepository) List() ([]model.Template, error) {
	var templates []model.Template
	result := r.db.Order("sort_order ASC, id ASC").Find(&templates)
	return templates, result.Error
}

// GetByID 根据ID获取模板，预加载分节并按序号排序
func (r *templateRepository) GetByID(id uint) (*model.Template, error) {
	var tpl model.Template
	result := r.db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).First(&tpl, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &tpl, nil
}

// GetByName 根据名称获取模板
func (r *templateRepository) GetByName(name string) (*model.Template, error) {
	var tpl model.Template
	result := r.db.Where("name = ?", name).First(&tpl)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &tpl, nil
}

// Create 创建模板（级联创建分节）
func (r *templateRepository) Create(tpl *model.Template) error {
	return r.db.Create(tpl).Error
}

// Save 保存模板
func (r *templateRepository) Save(tpl *model.Template) error {
	return r.db.Save(tpl).Error
}

// Delete 删除模板
func (r *templateRepository) Delete(id uint) error {
	return r.db.Select("Sections").Delete(&model.Template{ID: id}).Error
}
