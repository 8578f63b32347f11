package statemachine

import (
	"fmt"

	"k8s.io/klog/v2"
)

// SessionStatus 定义编辑会话的所有可能状态
type SessionStatus string

const (
	SessionStatusIdle    SessionStatus = "idle"    // 未载入模板
	SessionStatusEditing SessionStatus = "editing" // 已载入模板，可编辑映射
)

// SessionTransition 定义会话状态迁移
type SessionTransition struct {
	From SessionStatus
	To   SessionStatus
}

// SessionStateMachine 会话状态机
type SessionStateMachine struct {
	// 定义所有合法的状态迁移
	allowedTransitions map[SessionTransition]bool
}

// NewSessionStateMachine 创建新的会话状态机
func NewSessionStateMachine() *SessionStateMachine {
	sm := &SessionStateMachine{
		allowedTransitions: make(map[SessionTransition]bool),
	}

	// 定义合法的状态迁移路径
	// idle -> editing（载入模板）
	// editing -> idle（登出销毁会话）
	// 模板替换不改变粗粒度状态，editing 状态下重新载入模板是就地重置
	transitions := []SessionTransition{
		{SessionStatusIdle, SessionStatusEditing},
		{SessionStatusEditing, SessionStatusIdle},
	}

	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

// CanTransition 检查状态迁移是否合法
func (sm *SessionStateMachine) CanTransition(from, to SessionStatus) bool {
	if from == to {
		return false // 不允许状态不变
	}
	return sm.allowedTransitions[SessionTransition{From: from, To: to}]
}

// ValidateTransition 验证状态迁移并返回错误
func (sm *SessionStateMachine) ValidateTransition(from, to SessionStatus) error {
	if !sm.CanTransition(from, to) {
		return &InvalidSessionStateTransitionError{
			From: string(from),
			To:   string(to),
		}
	}
	return nil
}

// Transition 执行状态迁移（带日志）
func (sm *SessionStateMachine) Transition(from, to SessionStatus, sessionID string) error {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("会话状态迁移被拒绝: sessionID=%s, %s -> %s, error=%v",
			sessionID, from, to, err)
		return err
	}

	klog.V(6).Infof("会话状态迁移成功: sessionID=%s, %s -> %s", sessionID, from, to)
	return nil
}

// InvalidSessionStateTransitionError 无效的会话状态迁移错误
type InvalidSessionStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidSessionStateTransitionError) Error() string {
	return fmt.Sprintf("invalid session state transition: %s -> %s", e.From, e.To)
}
