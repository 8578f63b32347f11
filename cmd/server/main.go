package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/docassembler/backend/config"
	"github.com/docassembler/backend/internal/eventbus"
	"github.com/docassembler/backend/internal/handler"
	"github.com/docassembler/backend/internal/notifier"
	"github.com/docassembler/backend/internal/pkg/database"
	"github.com/docassembler/backend/internal/pkg/generator"
	"github.com/docassembler/backend/internal/pkg/token"
	"github.com/docassembler/backend/internal/repository"
	"github.com/docassembler/backend/internal/router"
	"github.com/docassembler/backend/internal/service"
	"github.com/docassembler/backend/internal/session"
	"github.com/docassembler/backend/internal/subscriber"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	snippetRepo := repository.NewSnippetRepository(db)
	generationRepo := repository.NewGenerationRequestRepository(db)

	// 预置系统模板与片段库
	if err := service.InitDefaultTemplates(db); err != nil {
		log.Fatalf("Failed to init default templates: %v", err)
	}
	if err := service.InitDefaultLibrary(db); err != nil {
		log.Fatalf("Failed to init default library: %v", err)
	}

	// 初始化 Service
	tokens := token.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	bus := eventbus.NewSessionEventBus()
	manager := session.NewManager()

	templateService := service.NewTemplateService(templateRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	snippetService := service.NewSnippetService(snippetRepo, categoryRepo)
	generationService := service.NewGenerationService(generationRepo, generator.NewClient(cfg))
	sessionService := service.NewSessionService(manager, templateService, snippetService, generationService, bus)
	authService := service.NewAuthService(cfg, userRepo, tokens)

	// 事件订阅：生成提交与 WebSocket 推送
	hub := notifier.NewHub()
	subscriber.NewSessionEventSubscriber(bus, generationService, hub).Register()

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService, sessionService, int(cfg.Auth.TokenTTL.Seconds()))
	templateHandler := handler.NewTemplateHandler(templateService)
	snippetHandler := handler.NewSnippetHandler(snippetService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	generationHandler := handler.NewGenerationHandler(generationService)

	// 设置路由
	r := router.Setup(cfg, tokens, hub,
		authHandler, templateHandler, snippetHandler,
		categoryHandler, sessionHandler, generationHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
