package api

import (
	"github.com/gin-gonic/gin"
	"github.com/studybuddy-ai/studybuddy/internal/api/admin"
	"github.com/studybuddy-ai/studybuddy/internal/api/chat"
	"github.com/studybuddy-ai/studybuddy/internal/api/middleware"
	"github.com/studybuddy-ai/studybuddy/internal/repository"
	"github.com/studybuddy-ai/studybuddy/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	APIKey       string
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	chatService *service.ChatService,
	materialsService *service.MaterialsService,
	ingestService *service.IngestService,
	sessionRepo *repository.SessionRepository,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public chat API, shape fixed by the frontend
	chatHandler := chat.NewHandler(chatService, materialsService)
	chatHandler.RegisterRoutes(&r.RouterGroup)

	// Admin API (requires API key)
	adminHandler := admin.NewHandler(ingestService, materialsService, sessionRepo)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.Auth(cfg.APIKey))
	adminHandler.RegisterRoutes(adminGroup)

	return r
}
