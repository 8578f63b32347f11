package session

import (
	"sync"

	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// Manager 活跃会话注册中心
// 一个用户同一时刻只有一个编辑会话
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session // sessionID -> Session
	byUser   map[uint]string     // userID -> sessionID
}

// NewManager 创建 Manager 实例
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		byUser:   make(map[uint]string),
	}
}

// GetOrCreate 获取用户的当前会话，不存在时创建
func (m *Manager) GetOrCreate(userID uint) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.byUser[userID]; ok {
		if sess, ok := m.sessions[id]; ok {
			return sess
		}
	}

	sess := New(uuid.NewString(), userID)
	m.sessions[sess.ID] = sess
	m.byUser[userID] = sess.ID
	klog.V(6).Infof("创建编辑会话: sessionID=%s, userID=%d", sess.ID, userID)
	return sess
}

// Get 根据会话ID获取会话
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// GetByUser 获取用户的当前会话
func (m *Manager) GetByUser(userID uint) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byUser[userID]
	if !ok {
		return nil, false
	}
	sess, ok := m.sessions[id]
	return sess, ok
}

// RemoveByUser 销毁用户的当前会话，返回被销毁的会话
func (m *Manager) RemoveByUser(userID uint) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byUser[userID]
	if !ok {
		return nil, false
	}
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	delete(m.byUser, userID)
	if ok {
		klog.V(6).Infof("销毁编辑会话: sessionID=%s, userID=%d", id, userID)
	}
	return sess, ok
}

// Count 返回活跃会话数
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
