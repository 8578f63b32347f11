package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/docassembler/backend/internal/model"
	"github.com/docassembler/backend/internal/repository"
)

var ErrSnippetNotFound = errors.New("snippet not found")

// SnippetDTO 内容片段数据传输对象
type SnippetDTO struct {
	ID         uint   `json:"id"`
	CategoryID uint   `json:"category_id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}

// CreateSnippetRequest 创建片段请求
type CreateSnippetRequest struct {
	CategoryID uint   `json:"category_id" binding:"required"`
	Title      string `json:"title" binding:"required,min=1,max=100"`
	Body       string `json:"body" binding:"required"`
}

// UpdateSnippetRequest 更新片段请求
type UpdateSnippetRequest struct {
	Title string `json:"title" binding:"required,min=1,max=100"`
	Body  string `json:"body" binding:"required"`
}

// SnippetService 内容片段服务接口
type SnippetService interface {
	List(ctx context.Context, categoryID uint) ([]*SnippetDTO, error)
	GetByID(ctx context.Context, id uint) (*SnippetDTO, error)
	Create(ctx context.Context, req CreateSnippetRequest) (*SnippetDTO, error)
	Update(ctx context.Context, id uint, req UpdateSnippetRequest) (*SnippetDTO, error)
	Delete(ctx context.Context, id uint) error
}

// snippetService 实现
type snippetService struct {
	snippetRepo  repository.SnippetRepository
	categoryRepo repository.CategoryRepository
}

// NewSnippetService 创建服务实例
func NewSnippetService(snippetRepo repository.SnippetRepository, categoryRepo repository.CategoryRepository) SnippetService {
	return &snippetService{
		snippetRepo:  snippetRepo,
		categoryRepo: categoryRepo,
	}
}

// List 获取片段列表，categoryID 为 0 时返回全部
func (s *snippetService) List(ctx context.Context, categoryID uint) ([]*SnippetDTO, error) {
	var snippets []model.ContentSnippet
	var err error
	if categoryID == 0 {
		snippets, err = s.snippetRepo.List()
	} else {
		snippets, err = s.snippetRepo.GetByCategoryID(categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list snippets: %w", err)
	}

	dtos := make([]*SnippetDTO, 0, len(snippets))
	for i := range snippets {
		dtos = append(dtos, toSnippetDTO(&snippets[i]))
	}
	return dtos, nil
}

// GetByID 获取片段
func (s *snippetService) GetByID(ctx context.Context, id uint) (*SnippetDTO, error) {
	snippet, err := s.snippetRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSnippetNotFound
		}
		return nil, fmt.Errorf("failed to get snippet: %w", err)
	}
	return toSnippetDTO(snippet), nil
}

// Create 创建片段
func (s *snippetService) Create(ctx context.Context, req CreateSnippetRequest) (*SnippetDTO, error) {
	// 验证分类存在
	_, err := s.categoryRepo.GetByID(req.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	snippet := &model.ContentSnippet{
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Body:       req.Body,
	}
	if err := s.snippetRepo.Create(snippet); err != nil {
		return nil, fmt.Errorf("failed to create snippet: %w", err)
	}
	return toSnippetDTO(snippet), nil
}

// Update 更新片段
func (s *snippetService) Update(ctx context.Context, id uint, req UpdateSnippetRequest) (*SnippetDTO, error) {
	snippet, err := s.snippetRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSnippetNotFound
		}
		return nil, fmt.Errorf("failed to get snippet: %w", err)
	}

	snippet.Title = req.Title
	snippet.Body = req.Body
	if err := s.snippetRepo.Update(snippet); err != nil {
		return nil, fmt.Errorf("failed to update snippet: %w", err)
	}
	return toSnippetDTO(snippet), nil
}

// Delete 删除片段
func (s *snippetService) Delete(ctx context.Context, id uint) error {
	_, err := s.snippetRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSnippetNotFound
		}
		return fmt.Errorf("failed to get snippet: %w", err)
	}

	if err := s.snippetRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete snippet: %w", err)
	}
	return nil
}

// toSnippetDTO 转换为 DTO
func toSnippetDTO(s *model.ContentSnippet) *SnippetDTO {
	return &SnippetDTO{
		ID:         s.ID,
		CategoryID: s.CategoryID,
		Title:      s.Title,
		Body:       s.Body,
	}
}
