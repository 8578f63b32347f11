package statemachine

import (
	"fmt"

	"k8s.io/klog/v2"
)

// GenerationStatus 定义生成请求的所有可能状态
type GenerationStatus string

const (
	GenerationStatusPending   GenerationStatus = "pending"   // 已创建，尚未提交给生成服务
	GenerationStatusSubmitted GenerationStatus = "submitted" // 已提交，等待生成服务响应
	GenerationStatusCompleted GenerationStatus = "completed" // 生成成功
	GenerationStatusFailed    GenerationStatus = "failed"    // 提交或生成失败
)

// GenerationTransition 定义生成请求状态迁移
type GenerationTransition struct {
	From GenerationStatus
	To   GenerationStatus
}

// GenerationStateMachine 生成请求状态机
type GenerationStateMachine struct {
	// 定义所有合法的状态迁移
	allowedTransitions map[GenerationTransition]bool
}

// NewGenerationStateMachine 创建新的生成请求状态机
func NewGenerationStateMachine() *GenerationStateMachine {
	sm := &GenerationStateMachine{
		allowedTransitions: make(map[GenerationTransition]bool),
	}

	// 定义合法的状态迁移路径
	// pending -> submitted -> completed/failed
	// failed -> pending（重试）
	transitions := []GenerationTransition{
		{GenerationStatusPending, GenerationStatusSubmitted},
		{GenerationStatusSubmitted, GenerationStatusCompleted},
		{GenerationStatusSubmitted, GenerationStatusFailed},
		{GenerationStatusPending, GenerationStatusFailed}, // 提交前构造请求失败
		{GenerationStatusFailed, GenerationStatusPending},
	}

	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

// CanTransition 检查状态迁移是否合法
func (sm *GenerationStateMachine) CanTransition(from, to GenerationStatus) bool {
	if from == to {
		return false // 不允许状态不变
	}
	return sm.allowedTransitions[GenerationTransition{From: from, To: to}]
}

// ValidateTransition 验证状态迁移并返回错误
func (sm *GenerationStateMachine) ValidateTransition(from, to GenerationStatus) error {
	if !sm.CanTransition(from, to) {
		return &InvalidGenerationStateTransitionError{
			From: string(from),
			To:   string(to),
		}
	}
	return nil
}

// Transition 执行状态迁移（带日志）
func (sm *GenerationStateMachine) Transition(from, to GenerationStatus, requestID uint) error {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("生成请求状态迁移被拒绝: requestID=%d, %s -> %s, error=%v",
			requestID, from, to, err)
		return err
	}

	klog.V(6).Infof("生成请求状态迁移成功: requestID=%d, %s -> %s", requestID, from, to)
	return nil
}

// InvalidGenerationStateTransitionError 无效的生成请求状态迁移错误
type InvalidGenerationStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidGenerationStateTransitionError) Error() string {
	return fmt.Sprintf("invalid generation state transition: %s -> %s", e.From, e.To)
}

// IsGenerationTerminal 判断生成请求状态是否为终止态
func IsGenerationTerminal(status GenerationStatus) bool {
	return status == GenerationStatusCompleted || status == GenerationStatusFailed
}
