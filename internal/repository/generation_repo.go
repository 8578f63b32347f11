package repository

import (
	"errors"

	"github.com/docassembler/backend/internal/model"
	"gorm.io/gorm"
)

// GenerationRequestRepository 生成请求 Repository 接口
type GenerationRequestRepository interface {
	Create(req *model.GenerationRequest) error
	Get(id uint) (*model.GenerationRequest, error)
	Save(req *model.GenerationRequest) error
	GetBySessionID(sessionID string) ([]model.GenerationRequest, error)
	GetByUserID(userID uint) ([]model.GenerationRequest, error)
	GetRecent(limit int) ([]model.GenerationRequest, error)
}

// generationRequestRepository 实现
type generationRequestRepository struct {
	db *gorm.DB
}

// NewGenerationRequestRepository 创建 Repository 实例
func NewGenerationRequestRepository(db *gorm.DB) GenerationRequestRepository {
	return &generationRequestRepository{db: db}
}

// Create 创建生成请求
func (r *generationRequestRepository) Create(req *model.GenerationRequest) error {
	return r.db.Create(req).Error
}

// Get 根据ID获取生成请求
func (r *generationRequestRepository) Get(id uint) (*model.GenerationRequest, error) {
	var req model.GenerationRequest
	result := r.db.First(&req, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &req, nil
}

// Save 保存生成请求
func (r *generationRequestRepository) Save(req *model.GenerationRequest) error {
	return r.db.Save(req).Error
}

// GetBySessionID 获取会话的全部生成请求
func (r *generationRequestRepository) GetBySessionID(sessionID string) ([]model.GenerationRequest, error) {
	var reqs []model.GenerationRequest
	result := r.db.Where("session_id = ?", sessionID).
		Order("id DESC").
		Find(&reqs)
	return reqs, result.Error
}

// GetByUserID 获取用户的全部生成请求
func (r *generationRequestRepository) GetByUserID(userID uint) ([]model.GenerationRequest, error) {
	var reqs []model.GenerationRequest
	result := r.db.Where("user_id = ?", userID).
		Order("id DESC").
		Find(&reqs)
	return reqs, result.Error
}

// GetRecent 获取最近的生成请求
func (r *generationRequestRepository) GetRecent(limit int) ([]model.GenerationRequest, error) {
	var reqs []model.GenerationRequest
	result := r.db.Order("id DESC").Limit(limit).Find(&reqs)
	return reqs, result.Error
}
