package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studybuddy-ai/studybuddy/internal/domain"
	"github.com/studybuddy-ai/studybuddy/internal/repository"
	"github.com/studybuddy-ai/studybuddy/internal/service"
)

// Handler handles admin API requests
type Handler struct {
	ingestService    *service.IngestService
	materialsService *service.MaterialsService
	sessionRepo      *repository.SessionRepository
}

// NewHandler creates a new admin handler
func NewHandler(
	ingestService *service.IngestService,
	materialsService *service.MaterialsService,
	sessionRepo *repository.SessionRepository,
) *Handler {
	return &Handler{
		ingestService:    ingestService,
		materialsService: materialsService,
		sessionRepo:      sessionRepo,
	}
}

// RegisterRoutes registers admin routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	documents := r.Group("/documents")
	{
		documents.POST("", h.UploadDocument)
		documents.GET("", h.ListDocuments)
		documents.DELETE("/:id", h.DeleteDocument)
	}

	r.POST("/sessions/prune", h.PruneSessions)
	r.GET("/stats", h.GetStats)
}

// UploadDocument accepts a study document and ingests it into the
// knowledge base.
func (h *Handler) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	document, err := h.ingestService.UploadDocument(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, document)
}

func (h *Handler) ListDocuments(c *gin.Context) {
	documents, err := h.ingestService.ListDocuments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": documents})
}

func (h *Handler) DeleteDocument(c *gin.Context) {
	if err := h.ingestService.DeleteDocument(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

type pruneRequest struct {
	MaxAgeDays int `json:"max_age_days"`
}

// PruneSessions removes sessions idle past the given age in days
// (default 30, matching the automatic janitor).
func (h *Handler) PruneSessions(c *gin.Context) {
	req := pruneRequest{MaxAgeDays: 30}
	c.ShouldBindJSON(&req)
	if req.MaxAgeDays <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_age_days must be positive"})
		return
	}

	cutoff := time.Now().Add(-time.Duration(req.MaxAgeDays) * 24 * time.Hour)
	n, err := h.sessionRepo.DeleteExpired(cutoff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pruned": n})
}

func (h *Handler) GetStats(c *gin.Context) {
	sessions, err := h.sessionRepo.CountSessions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	chats, err := h.sessionRepo.CountChats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, domain.Stats{
		TotalSessions: sessions,
		TotalChats:    chats,
		TotalTopics:   len(h.materialsService.Materials().Topics),
	})
}
