package middleware

import (
	"net/http"
	"strings"

	"github.com/docassembler/backend/internal/pkg/token"
	"github.com/gin-gonic/gin"
)

const (
	// ContextUserID 认证通过后写入 gin.Context 的用户ID键
	ContextUserID = "userID"
	// ContextUserEmail 认证通过后写入 gin.Context 的邮箱键
	ContextUserEmail = "userEmail"
	// TokenCookie 浏览器端令牌 Cookie 名
	TokenCookie = "docassembler_token"
)

// AuthMiddleware 登录校验
// 令牌优先取 Authorization Bearer 头，浏览器端回退到 Cookie
func AuthMiddleware(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			if cookie, err := c.Cookie(TokenCookie); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// 设置信息传递，后面才能从ctx中获取到用户信息
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}

// UserID 从 gin.Context 取出当前用户ID
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
