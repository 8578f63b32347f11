package notifier

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub 会话事件推送中心
// 按会话ID分组维护 WebSocket 连接，生成对话框通过它观察一次性信号
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*websocket.Conn]struct{} // sessionID -> connections
}

// Message 推送给客户端的事件消息
type Message struct {
	Type       string `json:"type"`
	SessionID  string `json:"session_id"`
	TemplateID uint   `json:"template_id,omitempty"`
	RequestID  uint   `json:"request_id,omitempty"`
	Status     string `json:"status,omitempty"`
	ResultURL  string `json:"result_url,omitempty"`
}

// NewHub 创建 Hub 实例
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*websocket.Conn]struct{}),
	}
}

// Add 注册会话的连接
func (h *Hub) Add(sessionID string, ws *websocket.Conn) {
	h.mu.Lock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = make(map[*websocket.Conn]struct{})
	}
	h.clients[sessionID][ws] = struct{}{}
	h.mu.Unlock()
}

// Remove 注销会话的连接
func (h *Hub) Remove(sessionID string, ws *websocket.Conn) {
	h.mu.Lock()
	if conns, ok := h.clients[sessionID]; ok {
		delete(conns, ws)
		if len(conns) == 0 {
			delete(h.clients, sessionID)
		}
	}
	h.mu.Unlock()
	_ = ws.Close()
}

// Broadcast 向会话的所有连接推送消息，写失败的连接就地剔除
func (h *Hub) Broadcast(sessionID string, msg Message) {
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.clients[sessionID]
	for ws := range conns {
		if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = ws.Close()
			delete(conns, ws)
		}
	}
	if len(conns) == 0 {
		delete(h.clients, sessionID)
	}
}

// Count 返回会话的连接数
func (h *Hub) Count(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[sessionID])
}
