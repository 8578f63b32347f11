package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docassembler/backend/internal/eventbus"
	"github.com/docassembler/backend/internal/service/statemachine"
	"github.com/docassembler/backend/internal/session"
	"k8s.io/klog/v2"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionDTO 会话状态快照
type SessionDTO struct {
	ID           string                        `json:"id"`
	Status       statemachine.SessionStatus    `json:"status"`
	Template     *session.TemplateView         `json:"template,omitempty"`
	SelectedTag  string                        `json:"selected_tag,omitempty"`
	Mappings     map[string]session.TagMapping `json:"mappings"`
	SectionOrder []uint                        `json:"section_order"`
	ActivePanel  session.Panel                 `json:"active_panel"`
	UpdatedAt    string                        `json:"updated_at"`
}

// SessionService 会话服务接口
// 一个用户同一时刻只有一个编辑会话，全部操作按用户寻址
type SessionService interface {
	Open(ctx context.Context, userID uint) (*SessionDTO, error)
	Get(ctx context.Context, userID uint) (*SessionDTO, error)
	LoadTemplate(ctx context.Context, userID uint, templateID uint) (session.OpResult, *SessionDTO, error)
	ReorderSections(ctx context.Context, userID uint, order []uint) (session.OpResult, *SessionDTO, error)
	SelectTag(ctx context.Context, userID uint, tag string) (session.OpResult, *SessionDTO, error)
	MapSnippet(ctx context.Context, userID uint, snippetID uint) (session.OpResult, *SessionDTO, error)
	SetCustomContent(ctx context.Context, userID uint, tag, text string) (session.OpResult, *SessionDTO, error)
	RemoveMapping(ctx context.Context, userID uint, tag string) (session.OpResult, *SessionDTO, error)
	SetActivePanel(ctx context.Context, userID uint, panel session.Panel) (session.OpResult, *SessionDTO, error)
	RequestGenerate(ctx context.Context, userID uint) (session.OpResult, *GenerationDTO, error)
	Teardown(ctx context.Context, userID uint) error
}

// sessionService 实现
type sessionService struct {
	manager    *session.Manager
	templates  TemplateService
	snippets   SnippetService
	generation GenerationService
	bus        *eventbus.SessionEventBus
	sm         *statemachine.SessionStateMachine
}

// NewSessionService 创建服务实例
func NewSessionService(
	manager *session.Manager,
	templates TemplateService,
	snippets SnippetService,
	generation GenerationService,
	bus *eventbus.SessionEventBus,
) SessionService {
	return &sessionService{
		manager:    manager,
		templates:  templates,
		snippets:   snippets,
		generation: generation,
		bus:        bus,
		sm:         statemachine.NewSessionStateMachine(),
	}
}

// Open 获取或创建当前用户的会话
func (s *sessionService) Open(ctx context.Context, userID uint) (*SessionDTO, error) {
	sess := s.manager.GetOrCreate(userID)
	sess.Lock()
	defer sess.Unlock()
	return toSessionDTO(sess), nil
}

// Get 获取当前用户的会话快照
func (s *sessionService) Get(ctx context.Context, userID uint) (*SessionDTO, error) {
	sess, ok := s.manager.GetByUser(userID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.Lock()
	defer sess.Unlock()
	return toSessionDTO(sess), nil
}

// LoadTemplate 载入（或替换）模板
func (s *sessionService) LoadTemplate(ctx context.Context, userID uint, templateID uint) (session.OpResult, *SessionDTO, error) {
	sess, ok := s.manager.GetByUser(userID)
	if !ok {
		return session.OpResult{}, nil, ErrSessionNotFound
	}

	view, err := s.templates.View(ctx, templateID)
	if err != nil {
		return session.OpResult{}, nil, err
	}

	sess.Lock()
	// idle -> editing 仅在首次载入时发生，替换模板不改变粗粒度状态
	if sess.Status == statemachine.SessionStatusIdle {
		if err := s.sm.Transition(sess.Status, statemachine.SessionStatusEditing, sess.ID); err != nil {
			sess.Unlock()
			return session.OpResult{}, nil, err
		}
	}
	res := sess.LoadTemplate(view)
	dto := toSessionDTO(sess)
	sess.Unlock()

	s.publish(ctx, eventbus.SessionEvent{
		Type:       eventbus.SessionEventTemplateLoaded,
		SessionID:  sess.ID,
		UserID:     userID,
		TemplateID: templateID,
	})
	return res, dto, nil
}

// ReorderSections 整体替换分节顺序
// 前置条件（不校验）：order 是当前分节ID的一个排列
func (s *sessionService) ReorderSections(ctx context.Context, userID uint, order []uint) (session.OpResult, *SessionDTO, error) {
	return s.apply(userID, func(sess *session.Session) session.OpResult {
		return sess.ReorderSections(order)
	})
}

// SelectTag 设置当前选中标签
func (s *sessionService) SelectTag(ctx context.Context, userID uint, tag string) (session.OpResult, *SessionDTO, error) {
	return s.apply(userID, func(sess *session.Session) session.OpResult {
		return sess.SelectTag(tag)
	})
}

// MapSnippet 将当前选中标签映射到内容片段
// 片段ID先经内容库校验，悬空引用不允许进入映射表
func (s *sessionService) MapSnippet(ctx context.Context, userID uint, snippetID uint) (session.OpResult, *SessionDTO, error) {
	if _, ok := s.manager.GetByUser(userID); !ok {
		return session.OpResult{}, nil, ErrSessionNotFound
	}
	if _, err := s.snippets.GetByID(ctx, snippetID); err != nil {
		return session.OpResult{}, nil, err
	}
	return s.apply(userID, func(sess *session.Session) session.OpResult {
		return sess.MapSnippet(snippetID)
	})
}

// SetCustomContent 将指定标签映射到自定义文本
func (s *sessionService) SetCustomContent(ctx context.Context, userID uint, tag, text string) (session.OpResult, *SessionDTO, error) {
	return s.apply(userID, func(sess *session.Session) session.OpResult {
		return sess.SetCustomContent(tag, text)
	})
}

// RemoveMapping 删除标签映射
func (s *sessionService) RemoveMapping(ctx context.Context, userID uint, tag string) (session.OpResult, *SessionDTO, error) {
	return s.apply(userID, func(sess *session.Session) session.OpResult {
		return sess.RemoveMapping(tag)
	})
}

// SetActivePanel 切换移动端激活面板
func (s *sessionService) SetActivePanel(ctx context.Context, userID uint, panel session.Panel) (session.OpResult, *SessionDTO, error) {
	return s.apply(userID, func(sess *session.Session) session.OpResult {
		return sess.SetActivePanel(panel)
	})
}

// RequestGenerate 发起文档生成
// 门控通过后创建生成请求并发布一次性信号，由订阅方提交生成服务
func (s *sessionService) RequestGenerate(ctx context.Context, userID uint) (session.OpResult, *GenerationDTO, error) {
	sess, ok := s.manager.GetByUser(userID)
	if !ok {
		return session.OpResult{}, nil, ErrSessionNotFound
	}

	sess.Lock()
	res := sess.RequestGenerate()
	if !res.Applied {
		sess.Unlock()
		return res, nil, nil
	}

	dto, err := s.generation.CreateFromSession(ctx, sess)
	if err != nil {
		sess.Unlock()
		return session.OpResult{}, nil, fmt.Errorf("failed to create generation request: %w", err)
	}
	templateID := sess.Template.ID
	sess.Unlock()

	s.publish(ctx, eventbus.SessionEvent{
		Type:       eventbus.SessionEventGenerateRequested,
		SessionID:  sess.ID,
		UserID:     userID,
		TemplateID: templateID,
		RequestID:  dto.ID,
	})
	return res, dto, nil
}

// Teardown 销毁当前用户的会话（登出时调用），无会话时为 no-op
func (s *sessionService) Teardown(ctx context.Context, userID uint) error {
	sess, ok := s.manager.RemoveByUser(userID)
	if !ok {
		return nil
	}

	sess.Lock()
	if sess.Status == statemachine.SessionStatusEditing {
		if err := s.sm.Transition(sess.Status, statemachine.SessionStatusIdle, sess.ID); err != nil {
			sess.Unlock()
			return err
		}
	}
	sess.Clear()
	sess.Unlock()

	s.publish(ctx, eventbus.SessionEvent{
		Type:      eventbus.SessionEventTornDown,
		SessionID: sess.ID,
		UserID:    userID,
	})
	return nil
}

// apply 在用户当前会话上执行一个操作并返回快照
// 操作与快照在同一临界区内完成，并发请求按到达顺序串行生效
func (s *sessionService) apply(userID uint, op func(*session.Session) session.OpResult) (session.OpResult, *SessionDTO, error) {
	sess, ok := s.manager.GetByUser(userID)
	if !ok {
		return session.OpResult{}, nil, ErrSessionNotFound
	}
	sess.Lock()
	defer sess.Unlock()
	res := op(sess)
	return res, toSessionDTO(sess), nil
}

// publish 发布会话事件，订阅方出错只记录日志，不影响操作本身
func (s *sessionService) publish(ctx context.Context, event eventbus.SessionEvent) {
	if err := s.bus.Publish(ctx, event.Type, event); err != nil {
		klog.Errorf("会话事件发布失败: type=%s, sessionID=%s, error=%v", event.Type, event.SessionID, err)
	}
}

// toSessionDTO 转换为快照 DTO
func toSessionDTO(sess *session.Session) *SessionDTO {
	mappings := make(map[string]session.TagMapping, len(sess.Mappings))
	for k, v := range sess.Mappings {
		mappings[k] = v
	}
	order := make([]uint, len(sess.SectionOrder))
	copy(order, sess.SectionOrder)

	return &SessionDTO{
		ID:           sess.ID,
		Status:       sess.Status,
		Template:     sess.Template,
		SelectedTag:  sess.SelectedTag,
		Mappings:     mappings,
		SectionOrder: order,
		ActivePanel:  sess.ActivePanel,
		UpdatedAt:    sess.UpdatedAt.Format(time.RFC3339),
	}
}
