package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"admitiq/internal/models"
	"admitiq/internal/repository"
	"admitiq/internal/service"
	"admitiq/pkg/config"
	"admitiq/pkg/logger"

	"go.uber.org/zap"
)

// ask is a terminal client for the assistant. It runs the same chat service
// as the HTTP server against a single local session.
func main() {
	role := flag.String("role", "student", "role to ask as (student, alumni, admin)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.NewConsole(cfg.Logger.Level)
	defer func() { _ = appLogger.Sync() }()

	knowledgeRepo, err := repository.LoadKnowledgeRepository(cfg.Knowledge.Path, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load knowledge base", zap.Error(err))
	}

	sessionRepo := repository.NewSessionRepository(appLogger)
	matchService := service.NewMatchService(knowledgeRepo, nil, appLogger)
	chatService := service.NewChatService(matchService, sessionRepo, nil, cfg.Assistant.SupportEmail, appLogger)
	session := sessionRepo.Create(models.Role(*role))

	fmt.Printf("[bot] %s\n\n", chatService.Welcome().Text)
	for _, q := range chatService.QuickReplies() {
		fmt.Printf("  > %s\n", q)
	}
	fmt.Println()

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("[you] ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			continue
		case "exit", "quit":
			return
		}

		resp, err := chatService.Reply(ctx, session.ID, *role, line)
		if err != nil {
			appLogger.Error("Reply failed", zap.Error(err))
			continue
		}
		fmt.Printf("[bot] %s\n", resp.Text)
		if resp.RelatedQuestion != "" {
			fmt.Printf("      (related: %s)\n", resp.RelatedQuestion)
		}
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		appLogger.Error("Failed to read input", zap.Error(err))
		os.Exit(1)
	}
}
