package handler

import (
	"net/http"
	"strconv"

	"github.com/docassembler/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// SnippetHandler 内容片段 Handler
type SnippetHandler struct {
	snippetService service.SnippetService
}

// NewSnippetHandler 创建 Handler
func NewSnippetHandler(snippetService service.SnippetService) *SnippetHandler {
	return &SnippetHandler{snippetService: snippetService}
}

// List 获取片段列表，支持 ?category_id= 过滤
func (h *SnippetHandler) List(c *gin.Context) {
	var categoryID uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		categoryID = uint(parsed)
	}

	snippets, err := h.snippetService.List(c.Request.Context(), categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snippets})
}

// Get 获取片段
func (h *SnippetHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	snippet, err := h.snippetService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if err == service.ErrSnippetNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "snippet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snippet})
}

// Create 创建片段
func (h *SnippetHandler) Create(c *gin.Context) {
	var req service.CreateSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snippet, err := h.snippetService.Create(c.Request.Context(), req)
	if err != nil {
		if err == service.ErrCategoryNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": snippet})
}

// Update 更新片段
func (h *SnippetHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req service.UpdateSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snippet, err := h.snippetService.Update(c.Request.Context(), uint(id), req)
	if err != nil {
		if err == service.ErrSnippetNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "snippet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snippet})
}

// Delete 删除片段
func (h *SnippetHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.snippetService.Delete(c.Request.Context(), uint(id)); err != nil {
		if err == service.ErrSnippetNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "snippet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
