package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/docassembler/backend/internal/model"
	"github.com/docassembler/backend/internal/pkg/generator"
	"github.com/docassembler/backend/internal/repository"
	"github.com/docassembler/backend/internal/service/statemachine"
	"github.com/docassembler/backend/internal/session"
	"k8s.io/klog/v2"
)

var ErrGenerationNotFound = errors.New("generation request not found")

// GenerationDTO 生成请求数据传输对象
type GenerationDTO struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"-"`
	SessionID  string `json:"session_id"`
	TemplateID uint   `json:"template_id"`
	Status     string `json:"status"`
	ResultURL  string `json:"result_url,omitempty"`
	Error      string `json:"error,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// GeneratorClient 文档生成服务客户端接口
type GeneratorClient interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Response, error)
}

// GenerationService 生成请求服务接口
type GenerationService interface {
	CreateFromSession(ctx context.Context, sess *session.Session) (*GenerationDTO, error)
	Submit(ctx context.Context, requestID uint) (*GenerationDTO, error)
	Get(ctx context.Context, id uint) (*GenerationDTO, error)
	ListByUser(ctx context.Context, userID uint) ([]*GenerationDTO, error)
}

// generationService 实现
type generationService struct {
	repo   repository.GenerationRequestRepository
	client GeneratorClient
	sm     *statemachine.GenerationStateMachine
}

// NewGenerationService 创建服务实例
func NewGenerationService(repo repository.GenerationRequestRepository, client GeneratorClient) GenerationService {
	return &generationService{
		repo:   repo,
		client: client,
		sm:     statemachine.NewGenerationStateMachine(),
	}
}

// CreateFromSession 从会话状态落库一条 pending 生成请求
// 调用方已通过生成门控，会话此时必有模板且映射表非空
func (s *generationService) CreateFromSession(ctx context.Context, sess *session.Session) (*GenerationDTO, error) {
	if sess.Template == nil {
		return nil, fmt.Errorf("session %s has no template", sess.ID)
	}

	order := make([]uint, len(sess.SectionOrder))
	copy(order, sess.SectionOrder)

	payload := generator.Request{
		TemplateID:   sess.Template.ID,
		TemplateName: sess.Template.Name,
		Mappings:     sess.MappingList(),
		SectionOrder: order,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req := &model.GenerationRequest{
		SessionID:  sess.ID,
		UserID:     sess.UserID,
		TemplateID: sess.Template.ID,
		Payload:    string(data),
		Status:     string(statemachine.GenerationStatusPending),
	}
	if err := s.repo.Create(req); err != nil {
		return nil, fmt.Errorf("failed to create generation request: %w", err)
	}

	klog.V(6).Infof("创建生成请求: requestID=%d, sessionID=%s, template=%d", req.ID, sess.ID, sess.Template.ID)
	return toGenerationDTO(req), nil
}

// Submit 将 pending 请求提交给外部生成服务并记录结果
// 生成失败记录为 failed 状态，不作为错误返回
func (s *generationService) Submit(ctx context.Context, requestID uint) (*GenerationDTO, error) {
	req, err := s.repo.Get(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGenerationNotFound
		}
		return nil, fmt.Errorf("failed to get generation request: %w", err)
	}

	from := statemachine.GenerationStatus(req.Status)
	if err := s.sm.Transition(from, statemachine.GenerationStatusSubmitted, req.ID); err != nil {
		return nil, err
	}
	req.Status = string(statemachine.GenerationStatusSubmitted)
	if err := s.repo.Save(req); err != nil {
		return nil, fmt.Errorf("failed to save generation request: %w", err)
	}

	var payload generator.Request
	if err := json.Unmarshal([]byte(req.Payload), &payload); err != nil {
		return s.markFailed(req, fmt.Errorf("unmarshal payload: %w", err))
	}

	resp, err := s.client.Generate(ctx, payload)
	if err != nil {
		return s.markFailed(req, err)
	}

	if err := s.sm.Transition(statemachine.GenerationStatusSubmitted, statemachine.GenerationStatusCompleted, req.ID); err != nil {
		return nil, err
	}
	req.Status = string(statemachine.GenerationStatusCompleted)
	req.ResultURL = resp.DocumentURL
	if err := s.repo.Save(req); err != nil {
		return nil, fmt.Errorf("failed to save generation request: %w", err)
	}
	return toGenerationDTO(req), nil
}

// Get 获取生成请求
func (s *generationService) Get(ctx context.Context, id uint) (*GenerationDTO, error) {
	req, err := s.repo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGenerationNotFound
		}
		return nil, fmt.Errorf("failed to get generation request: %w", err)
	}
	return toGenerationDTO(req), nil
}

// ListByUser 获取用户的全部生成请求
func (s *generationService) ListByUser(ctx context.Context, userID uint) ([]*GenerationDTO, error) {
	reqs, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list generation requests: %w", err)
	}

	dtos := make([]*GenerationDTO, 0, len(reqs))
	for i := range reqs {
		dtos = append(dtos, toGenerationDTO(&reqs[i]))
	}
	return dtos, nil
}

// markFailed 记录失败状态
func (s *generationService) markFailed(req *model.GenerationRequest, cause error) (*GenerationDTO, error) {
	klog.Errorf("生成请求失败: requestID=%d, error=%v", req.ID, cause)

	if err := s.sm.Transition(statemachine.GenerationStatus(req.Status), statemachine.GenerationStatusFailed, req.ID); err != nil {
		return nil, err
	}
	req.Status = string(statemachine.GenerationStatusFailed)
	req.Error = cause.Error()
	if err := s.repo.Save(req); err != nil {
		return nil, fmt.Errorf("failed to save generation request: %w", err)
	}
	return toGenerationDTO(req), nil
}

// toGenerationDTO 转换为 DTO
func toGenerationDTO(req *model.GenerationRequest) *GenerationDTO {
	return &GenerationDTO{
		ID:         req.ID,
		UserID:     req.UserID,
		SessionID:  req.SessionID,
		TemplateID: req.TemplateID,
		Status:     req.Status,
		ResultURL:  req.ResultURL,
		Error:      req.Error,
		CreatedAt:  req.CreatedAt.Format(time.RFC3339),
	}
}
