package handler

import (
	"net/http"

	"github.com/docassembler/backend/internal/middleware"
	"github.com/docassembler/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const oauthStateCookie = "oauth_state"

// AuthHandler 认证 Handler
type AuthHandler struct {
	authService    service.AuthService
	sessionService service.SessionService
	tokenTTL       int // Cookie 有效期（秒）
}

// NewAuthHandler 创建 Handler
func NewAuthHandler(authService service.AuthService, sessionService service.SessionService, tokenTTLSeconds int) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
		tokenTTL:       tokenTTLSeconds,
	}
}

// GoogleLogin 重定向到 Google 授权页
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.authService.GoogleLoginURL(state))
}

// GoogleCallback 处理 Google 授权回调
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	user, token, err := h.authService.HandleGoogleCallback(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"data": user, "token": token})
}

// Register 本地注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		if err == service.ErrEmailExists {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"data": user, "token": token})
}

// Login 本地登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"data": user, "token": token})
}

// Logout 登出，销毁当前编辑会话
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.sessionService.Teardown(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me 获取当前登录用户
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if err == service.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.TokenCookie, token, h.tokenTTL, "/", "", false, true)
}
