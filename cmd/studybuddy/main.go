package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/studybuddy-ai/studybuddy/internal/api"
	"github.com/studybuddy-ai/studybuddy/internal/config"
	"github.com/studybuddy-ai/studybuddy/internal/repository"
	"github.com/studybuddy-ai/studybuddy/internal/service"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Optional .env for local development
	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	sessionRepo := repository.NewSessionRepository(db)

	// Retrieval and generation are delegated to rago; without it the
	// service still runs and answers with a placeholder.
	retrieverSvc, err := service.NewRetrieverService(cfg)
	if err != nil {
		logger.Warn("Failed to initialize retriever, running without RAG", zap.Error(err))
		retrieverSvc = nil
	}

	materialsService := service.NewMaterialsService(cfg.Materials.Path, logger)
	chatService := service.NewChatService(cfg, sessionRepo, materialsService, retrieverSvc, logger)
	ingestService := service.NewIngestService(cfg, retrieverSvc, logger)

	router := api.SetupRouter(chatService, materialsService, ingestService, sessionRepo, api.RouterConfig{
		APIKey:       cfg.Admin.APIKey,
		AllowOrigins: []string{"*"},
	})

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting Study Buddy server",
			zap.String("address", cfg.Address()),
			zap.String("base_url", cfg.Server.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Janitor: expire idle sessions the way the original store's
	// lifecycle rule did.
	janitorDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(12 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().Add(-cfg.SessionMaxAge())
				if n, err := sessionRepo.DeleteExpired(cutoff); err != nil {
					logger.Error("Session pruning failed", zap.Error(err))
				} else if n > 0 {
					logger.Info("Pruned expired sessions", zap.Int64("count", n))
				}
			case <-janitorDone:
				return
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	close(janitorDone)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if retrieverSvc != nil {
		retrieverSvc.Close()
	}

	logger.Info("Server exited")
}
