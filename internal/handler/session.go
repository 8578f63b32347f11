package handler

import (
	"net/http"

	"github.com/docassembler/backend/internal/middleware"
	"github.com/docassembler/backend/internal/service"
	"github.com/docassembler/backend/internal/session"
	"github.com/gin-gonic/gin"
)

// SessionHandler 编辑会话 Handler
// 软前置条件失败不是错误：响应体里的 result 标明 applied 与原因
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler 创建 Handler
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// LoadTemplateRequest 载入模板请求
type LoadTemplateRequest struct {
	TemplateID uint `json:"template_id" binding:"required"`
}

// ReorderRequest 分节排序请求
type ReorderRequest struct {
	Order []uint `json:"order" binding:"required"`
}

// SelectTagRequest 选中标签请求
type SelectTagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// MapSnippetRequest 映射片段请求
type MapSnippetRequest struct {
	SnippetID uint `json:"snippet_id" binding:"required"`
}

// CustomContentRequest 自定义文本请求，text 允许为空串
type CustomContentRequest struct {
	Tag  string `json:"tag" binding:"required"`
	Text string `json:"text"`
}

// PanelRequest 切换面板请求
type PanelRequest struct {
	Panel session.Panel `json:"panel" binding:"required"`
}

// Open 获取或创建当前用户的会话
func (h *SessionHandler) Open(c *gin.Context) {
	dto, err := h.sessionService.Open(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto})
}

// Get 获取会话快照
func (h *SessionHandler) Get(c *gin.Context) {
	dto, err := h.sessionService.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if err == service.ErrSessionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto})
}

// LoadTemplate 载入（或替换）模板
func (h *SessionHandler) LoadTemplate(c *gin.Context) {
	var req LoadTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, dto, err := h.sessionService.LoadTemplate(c.Request.Context(), middleware.UserID(c), req.TemplateID)
	h.respond(c, res, dto, err)
}

// Reorder 整体替换分节顺序
func (h *SessionHandler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, dto, err := h.sessionService.ReorderSections(c.Request.Context(), middleware.UserID(c), req.Order)
	h.respond(c, res, dto, err)
}

// SelectTag 设置当前选中标签
func (h *SessionHandler) SelectTag(c *gin.Context) {
	var req SelectTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, dto, err := h.sessionService.SelectTag(c.Request.Context(), middleware.UserID(c), req.Tag)
	h.respond(c, res, dto, err)
}

// MapSnippet 将当前选中标签映射到内容片段
func (h *SessionHandler) MapSnippet(c *gin.Context) {
	var req MapSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, dto, err := h.sessionService.MapSnippet(c.Request.Context(), middleware.UserID(c), req.SnippetID)
	h.respond(c, res, dto, err)
}

// SetCustomContent 将指定标签映射到自定义文本
func (h *SessionHandler) SetCustomContent(c *gin.Context) {
	var req CustomContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, dto, err := h.sessionService.SetCustomContent(c.Request.Context(), middleware.UserID(c), req.Tag, req.Text)
	h.respond(c, res, dto, err)
}

// RemoveMapping 删除标签映射
func (h *SessionHandler) RemoveMapping(c *gin.Context) {
	tag := c.Param("tag")
	if tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tag is required"})
		return
	}

	res, dto, err := h.sessionService.RemoveMapping(c.Request.Context(), middleware.UserID(c), tag)
	h.respond(c, res, dto, err)
}

// SetPanel 切换移动端激活面板
func (h *SessionHandler) SetPanel(c *gin.Context) {
	var req PanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, dto, err := h.sessionService.SetActivePanel(c.Request.Context(), middleware.UserID(c), req.Panel)
	h.respond(c, res, dto, err)
}

// Generate 发起文档生成
func (h *SessionHandler) Generate(c *gin.Context) {
	res, dto, err := h.sessionService.RequestGenerate(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if err == service.ErrSessionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": res, "data": dto})
}

// Teardown 销毁会话
func (h *SessionHandler) Teardown(c *gin.Context) {
	if err := h.sessionService.Teardown(c.Request.Context(), middleware.UserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "torn down"})
}

// respond 统一输出操作结果与会话快照
func (h *SessionHandler) respond(c *gin.Context, res session.OpResult, dto *service.SessionDTO, err error) {
	if err != nil {
		if err == service.ErrSessionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		if err == service.ErrTemplateNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		if err == service.ErrSnippetNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "snippet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": res, "data": dto})
}
