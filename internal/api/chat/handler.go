package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studybuddy-ai/studybuddy/internal/domain"
	"github.com/studybuddy-ai/studybuddy/internal/service"
)

// Handler handles the public chat API
type Handler struct {
	chatService      *service.ChatService
	materialsService *service.MaterialsService
}

// NewHandler creates a new chat handler
func NewHandler(chatService *service.ChatService, materialsService *service.MaterialsService) *Handler {
	return &Handler{
		chatService:      chatService,
		materialsService: materialsService,
	}
}

// RegisterRoutes registers the public routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/chat", h.Chat)
	r.GET("/materials", h.Materials)
	r.GET("/sessions/:id/messages", h.Messages)
}

// Chat handles one tutoring turn
func (h *Handler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	resp, err := h.chatService.Chat(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Materials returns the full study materials set. Load failures were
// already absorbed at startup, so this always succeeds.
func (h *Handler) Materials(c *gin.Context) {
	c.JSON(http.StatusOK, h.materialsService.Materials())
}

// Messages returns the transcript for a session
func (h *Handler) Messages(c *gin.Context) {
	messages, err := h.chatService.GetMessages(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
