package notifier

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"k8s.io/klog/v2"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 跨域策略由路由层 CORS 统一控制
		return true
	},
}

// WSHandler 会话事件 WebSocket 入口
// 客户端携带 session_id 连接，之后只接收服务端推送
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Query("session_id")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			klog.Errorf("WebSocket 升级失败: %v", err)
			return
		}

		hub.Add(sessionID, ws)
		klog.V(6).Infof("WebSocket 连接建立: sessionID=%s", sessionID)

		// 读循环仅用于感知断开，忽略客户端消息
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.Remove(sessionID, ws)
		klog.V(6).Infof("WebSocket 连接断开: sessionID=%s", sessionID)
	}
}
