package subscriber

import (
	"context"
	"time"

	"github.com/docassembler/backend/internal/eventbus"
	"github.com/docassembler/backend/internal/notifier"
	"github.com/docassembler/backend/internal/service"
	"k8s.io/klog/v2"
)

// SessionEventSubscriber 会话事件订阅器
// 把一次性信号分发给文档生成服务与 WebSocket 推送中心
type SessionEventSubscriber struct {
	bus        *eventbus.SessionEventBus
	generation service.GenerationService
	hub        *notifier.Hub

	submitTimeout time.Duration
}

// NewSessionEventSubscriber 创建订阅器
func NewSessionEventSubscriber(
	bus *eventbus.SessionEventBus,
	generation service.GenerationService,
	hub *notifier.Hub,
) *SessionEventSubscriber {
	return &SessionEventSubscriber{
		bus:           bus,
		generation:    generation,
		hub:           hub,
		submitTimeout: 3 * time.Minute,
	}
}

// Register 注册全部订阅
func (s *SessionEventSubscriber) Register() {
	s.bus.Subscribe(eventbus.SessionEventTemplateLoaded, s.onTemplateLoaded)
	s.bus.Subscribe(eventbus.SessionEventGenerateRequested, s.onGenerateRequested)
	s.bus.Subscribe(eventbus.SessionEventTornDown, s.onTornDown)
}

// onTemplateLoaded 模板载入通知
func (s *SessionEventSubscriber) onTemplateLoaded(ctx context.Context, event eventbus.SessionEvent) error {
	s.hub.Broadcast(event.SessionID, notifier.Message{
		Type:       "template_loaded",
		SessionID:  event.SessionID,
		TemplateID: event.TemplateID,
	})
	return nil
}

// onGenerateRequested 生成信号：先推送，再异步提交生成服务
// 会话操作本身是同步的，不能被外部服务的耗时阻塞
func (s *SessionEventSubscriber) onGenerateRequested(ctx context.Context, event eventbus.SessionEvent) error {
	s.hub.Broadcast(event.SessionID, notifier.Message{
		Type:      "generate_requested",
		SessionID: event.SessionID,
		RequestID: event.RequestID,
	})

	go func() {
		submitCtx, cancel := context.WithTimeout(context.Background(), s.submitTimeout)
		defer cancel()

		dto, err := s.generation.Submit(submitCtx, event.RequestID)
		if err != nil {
			klog.Errorf("生成请求提交失败: requestID=%d, error=%v", event.RequestID, err)
			return
		}
		s.hub.Broadcast(event.SessionID, notifier.Message{
			Type:      "generation_finished",
			SessionID: event.SessionID,
			RequestID: dto.ID,
			Status:    dto.Status,
			ResultURL: dto.ResultURL,
		})
	}()
	return nil
}

// onTornDown 会话销毁通知
func (s *SessionEventSubscriber) onTornDown(ctx context.Context, event eventbus.SessionEvent) error {
	s.hub.Broadcast(event.SessionID, notifier.Message{
		Type:      "session_torn_down",
		SessionID: event.SessionID,
	})
	return nil
}
