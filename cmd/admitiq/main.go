package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"admitiq/internal/api"
	"admitiq/internal/api/handlers"
	"admitiq/internal/repository"
	"admitiq/internal/service"
	"admitiq/pkg/auth"
	"admitiq/pkg/config"
	"admitiq/pkg/logger"
	"admitiq/pkg/metrics"

	"go.uber.org/zap"
)

// @title AdmitIQ Assistant API
// @version 1.0
// @description University assistant that answers free-text questions from a curated knowledge base

// @contact.name API Support
// @contact.email support@admitiq.edu

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting AdmitIQ assistant")

	// A broken corpus must stop the process before it serves anything.
	knowledgeRepo, err := repository.LoadKnowledgeRepository(cfg.Knowledge.Path, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load knowledge base", zap.Error(err))
	}
	sessionRepo := repository.NewSessionRepository(appLogger)

	appMetrics := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)

	matchService := service.NewMatchService(knowledgeRepo, appMetrics, appLogger)
	chatService := service.NewChatService(matchService, sessionRepo, appMetrics, cfg.Assistant.SupportEmail, appLogger)
	sessionService := service.NewSessionService(sessionRepo, jwtManager, chatService, appMetrics, appLogger)

	sessionHandler := handlers.NewSessionHandler(sessionService, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, appLogger)
	knowledgeHandler := handlers.NewKnowledgeHandler(matchService, knowledgeRepo.Count(), appLogger)

	app := api.SetupRouter(sessionHandler, chatHandler, knowledgeHandler, jwtManager, appLogger,
		api.RouterConfig{
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			RequestLogging: true,
		})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessionService.RunSweeper(ctx, cfg.Session.SweepInterval, cfg.Session.TTL)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	cancel()
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
