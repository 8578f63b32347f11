package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/docassembler/backend/internal/model"
	"github.com/docassembler/backend/internal/repository"
	"github.com/docassembler/backend/internal/session"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrSystemTemplate   = errors.New("cannot delete system template")
)

// TemplateDTO 模板数据传输对象
type TemplateDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsSystem    bool   `json:"is_system"`
	SortOrder   int    `json:"sort_order"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// SectionDTO 分节数据传输对象
type SectionDTO struct {
	ID        uint     `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	SortOrder int      `json:"sort_order"`
}

// TemplateDetailDTO 模板详情（含分节）
type TemplateDetailDTO struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	IsSystem    bool         `json:"is_system"`
	SortOrder   int          `json:"sort_order"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Sections    []SectionDTO `json:"sections"`
}

// CreateSectionRequest 创建分节请求
type CreateSectionRequest struct {
	Title     string `json:"title" binding:"required,min=1,max=100"`
	Content   string `json:"content"`
	SortOrder int    `json:"sort_order"`
}

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	Name        string                 `json:"name" binding:"required,min=1,max=100"`
	Description string                 `json:"description" binding:"max=500"`
	SortOrder   int                    `json:"sort_order"`
	Sections    []CreateSectionRequest `json:"sections" binding:"required,min=1,dive"`
}

// TemplateService 模板服务接口
type TemplateService interface {
	List(ctx context.Context) ([]*TemplateDTO, error)
	GetByID(ctx context.Context, id uint) (*TemplateDetailDTO, error)
	Create(ctx context.Context, req CreateTemplateRequest) (*TemplateDetailDTO, error)
	Delete(ctx context.Context, id uint) error
	View(ctx context.Context, id uint) (*session.TemplateView, error)
}

// templateService 实现
type templateService struct {
	repo repository.TemplateRepository
}

// NewTemplateService 创建服务实例
func NewTemplateService(repo repository.TemplateRepository) TemplateService {
	return &templateService{repo: repo}
}

// List 获取模板列表
func (s *templateService) List(ctx context.Context) ([]*TemplateDTO, error) {
	templates, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	dtos := make([]*TemplateDTO, 0, len(templates))
	for i := range templates {
		dtos = append(dtos, toTemplateDTO(&templates[i]))
	}
	return dtos, nil
}

// GetByID 获取模板详情
func (s *templateService) GetByID(ctx context.Context, id uint) (*TemplateDetailDTO, error) {
	tpl, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return toTemplateDetailDTO(tpl), nil
}

// Create 创建模板，入库时从分节正文提取 <<tag>> 占位符
func (s *templateService) Create(ctx context.Context, req CreateTemplateRequest) (*TemplateDetailDTO, error) {
	tpl := &model.Template{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}
	for _, sec := range req.Sections {
		tpl.Sections = append(tpl.Sections, model.TemplateSection{
			Title:     sec.Title,
			Content:   sec.Content,
			Tags:      strings.Join(ExtractTags(sec.Content), ","),
			SortOrder: sec.SortOrder,
		})
	}

	if err := s.repo.Create(tpl); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return toTemplateDetailDTO(tpl), nil
}

// Delete 删除模板，系统预置模板不可删除
func (s *templateService) Delete(ctx context.Context, id uint) error {
	tpl, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to get template: %w", err)
	}
	if tpl.IsSystem {
		return ErrSystemTemplate
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// View 构造会话使用的模板视图
func (s *templateService) View(ctx context.Context, id uint) (*session.TemplateView, error) {
	tpl, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	view := &session.TemplateView{
		ID:   tpl.ID,
		Name: tpl.Name,
	}
	for i := range tpl.Sections {
		sec := &tpl.Sections[i]
		view.Sections = append(view.Sections, session.SectionView{
			ID:    sec.ID,
			Title: sec.Title,
			Tags:  sec.TagList(),
		})
	}
	return view, nil
}

// toTemplateDTO 转换为 DTO
func toTemplateDTO(t *model.Template) *TemplateDTO {
	return &TemplateDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IsSystem:    t.IsSystem,
		SortOrder:   t.SortOrder,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

// toTemplateDetailDTO 转换为详情 DTO
func toTemplateDetailDTO(t *model.Template) *TemplateDetailDTO {
	dto := &TemplateDetailDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IsSystem:    t.IsSystem,
		SortOrder:   t.SortOrder,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	for i := range t.Sections {
		sec := &t.Sections[i]
		dto.Sections = append(dto.Sections, SectionDTO{
			ID:        sec.ID,
			Title:     sec.Title,
			Content:   sec.Content,
			Tags:      sec.TagList(),
			SortOrder: sec.SortOrder,
		})
	}
	return dto
}
