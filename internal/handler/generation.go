package handler

import (
	"net/http"
	"strconv"

	"github.com/docassembler/backend/internal/middleware"
	"github.com/docassembler/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// GenerationHandler 生成请求 Handler
type GenerationHandler struct {
	generationService service.GenerationService
}

// NewGenerationHandler 创建 Handler
func NewGenerationHandler(generationService service.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

// List 获取当前用户的生成请求列表
func (h *GenerationHandler) List(c *gin.Context) {
	requests, err := h.generationService.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": requests})
}

// Get 获取生成请求详情（轮询生成进度用）
func (h *GenerationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	request, err := h.generationService.Get(c.Request.Context(), uint(id))
	if err != nil {
		if err == service.ErrGenerationNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "generation request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	// 只能查看自己的请求
	if request.UserID != middleware.UserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "generation request not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": request})
}
