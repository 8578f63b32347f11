package router

import (
	"github.com/docassembler/backend/config"
	"github.com/docassembler/backend/internal/handler"
	"github.com/docassembler/backend/internal/middleware"
	"github.com/docassembler/backend/internal/notifier"
	"github.com/docassembler/backend/internal/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func Setup(
	cfg *config.Config,
	tokens *token.Service,
	hub *notifier.Hub,
	authHandler *handler.AuthHandler,
	templateHandler *handler.TemplateHandler,
	snippetHandler *handler.SnippetHandler,
	categoryHandler *handler.CategoryHandler,
	sessionHandler *handler.SessionHandler,
	generationHandler *handler.GenerationHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 认证路由，无需登录
	auth := r.Group("/auth")
	{
		auth.GET("/google", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// 业务路由，未登录一律 401（内容数据在用户出现前不可见）
	api := r.Group("/api", middleware.AuthMiddleware(tokens))
	{
		api.GET("/me", authHandler.Me)
		api.POST("/logout", authHandler.Logout)

		templates := api.Group("/templates")
		{
			templates.GET("", templateHandler.List)
			templates.GET("/:id", templateHandler.Get)
			templates.POST("", templateHandler.Create)
			templates.DELETE("/:id", templateHandler.Delete)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.DELETE("/:id", categoryHandler.Delete)
		}

		snippets := api.Group("/snippets")
		{
			snippets.GET("", snippetHandler.List)
			snippets.GET("/:id", snippetHandler.Get)
			snippets.POST("", snippetHandler.Create)
			snippets.PUT("/:id", snippetHandler.Update)
			snippets.DELETE("/:id", snippetHandler.Delete)
		}

		session := api.Group("/session")
		{
			session.POST("", sessionHandler.Open)
			session.GET("", sessionHandler.Get)
			session.DELETE("", sessionHandler.Teardown)
			session.POST("/template", sessionHandler.LoadTemplate)
			session.POST("/order", sessionHandler.Reorder)
			session.POST("/select", sessionHandler.SelectTag)
			session.POST("/map-snippet", sessionHandler.MapSnippet)
			session.POST("/custom-content", sessionHandler.SetCustomContent)
			session.DELETE("/mappings/:tag", sessionHandler.RemoveMapping)
			session.POST("/panel", sessionHandler.SetPanel)
			session.POST("/generate", sessionHandler.Generate)
		}

		generations := api.Group("/generations")
		{
			generations.GET("", generationHandler.List)
			generations.GET("/:id", generationHandler.Get)
		}

		api.GET("/ws", notifier.WSHandler(hub))
	}

	return r
}
