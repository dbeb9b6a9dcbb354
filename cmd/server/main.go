package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatrelay-backend/internal/ai"
	"chatrelay-backend/internal/config"
	"chatrelay-backend/internal/database"
	"chatrelay-backend/internal/handlers"
	"chatrelay-backend/internal/middleware"
	"chatrelay-backend/internal/repository"
	"chatrelay-backend/internal/router"
	"chatrelay-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting ChatRelay Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Step 4: Initialize AI Provider Client ────
	ctx := context.Background()
	provider, err := ai.NewProvider(ctx, cfg)
	if err != nil {
		log.Fatalf("✗ AI provider initialization failed: %v", err)
	}
	defer provider.Close()
	log.Printf("✓ AI provider initialized (%s, model %s)", cfg.Provider, cfg.Model)

	aiService := ai.NewService(provider, ai.NewRetryPolicy())

	// ──── Step 5: Start History Writer ────
	messageRepo := repository.NewMessageRepo(pool)
	historyWriter := worker.NewHistoryWriter(messageRepo, 2, 64)
	historyWriter.Start()
	log.Println("✓ History writer started")

	// ──── Step 6: Chat Rate Limiter ────
	var chatLimiter func(http.Handler) http.Handler
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		chatLimiter = middleware.NewRedisRateLimiter(redisClient, cfg.ChatRateLimit, time.Minute).Middleware
		log.Println("✓ Redis connected (shared rate limit window)")
	} else {
		chatLimiter = middleware.NewRateLimiter(cfg.ChatRateLimit, time.Minute).Middleware
		log.Println("✓ In-memory rate limiter (set REDIS_URL to share the window)")
	}

	// ──── Step 7: Start HTTP Server ────
	chatHandler := handlers.NewChatHandler(aiService, historyWriter, messageRepo)
	r := router.New(chatHandler, chatLimiter, cfg.FrontendURL, cfg.StaticDir)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)

		historyWriter.Stop()
	}()

	log.Printf("✓ ChatRelay Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  Chat:    POST http://localhost:%s/api/chat", cfg.Port)
	log.Printf("  History: GET  http://localhost:%s/api/chat/history", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
