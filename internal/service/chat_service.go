package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/studybuddy-ai/studybuddy/internal/config"
	"github.com/studybuddy-ai/studybuddy/internal/domain"
	"github.com/studybuddy-ai/studybuddy/internal/repository"
	"go.uber.org/zap"
)

// retriever is the slice of RetrieverService the chat flow needs
type retriever interface {
	Ask(ctx context.Context, prompt string, topK int) (string, []domain.Source, error)
}

// ChatService handles one tutoring turn: session bookkeeping, prompt
// assembly, the retrieval-augmented model call, and parsing of the
// structured reply.
type ChatService struct {
	cfg         *config.Config
	sessionRepo *repository.SessionRepository
	materials   *MaterialsService
	retriever   retriever
	logger      *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	cfg *config.Config,
	sessionRepo *repository.SessionRepository,
	materials *MaterialsService,
	retriever *RetrieverService,
	logger *zap.Logger,
) *ChatService {
	s := &ChatService{
		cfg:         cfg,
		sessionRepo: sessionRepo,
		materials:   materials,
		logger:      logger,
	}
	if retriever != nil {
		s.retriever = retriever
	}
	return s
}

// Chat processes one student message and returns the tutor's answer
func (s *ChatService) Chat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		session := &domain.Session{}
		if err := s.sessionRepo.Create(session); err != nil {
			return nil, err
		}
		sessionID = session.ID
	} else if existing, err := s.sessionRepo.Get(sessionID); err != nil {
		return nil, err
	} else if existing == nil {
		// Unknown ids are accepted as new sessions so a client may
		// bring its own identifier, as the original service did.
		if err := s.sessionRepo.Create(&domain.Session{ID: sessionID}); err != nil {
			return nil, err
		}
	}

	history, err := s.sessionRepo.GetRecentMessages(sessionID, s.cfg.Sessions.WindowSize)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.Message{
		SessionID: sessionID,
		Role:      "user",
		Content:   req.Message,
	}
	if err := s.sessionRepo.CreateMessage(userMsg); err != nil {
		return nil, err
	}

	resp := s.answer(ctx, history, req.Message)
	resp.SessionID = sessionID

	assistantMsg := &domain.Message{
		SessionID: sessionID,
		Role:      "assistant",
		Content:   resp.Response,
		Sources:   resp.Sources,
	}
	if err := s.sessionRepo.CreateMessage(assistantMsg); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Touch(sessionID); err != nil {
		return nil, err
	}

	return resp, nil
}

// GetMessages returns the full transcript for a session
func (s *ChatService) GetMessages(sessionID string) ([]*domain.Message, error) {
	session, err := s.sessionRepo.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return s.sessionRepo.GetMessages(sessionID)
}

func (s *ChatService) answer(ctx context.Context, history []*domain.Message, message string) *domain.ChatResponse {
	if s.retriever == nil {
		return &domain.ChatResponse{
			Response: "The tutor is not configured yet. Your question was: " + message,
		}
	}

	prompt := buildPrompt(s.materials.TopicIDs(), history, message)

	raw, sources, err := s.retriever.Ask(ctx, prompt, s.cfg.RAG.TopK)
	if err != nil {
		s.logger.Error("model call failed", zap.Error(err))
		return &domain.ChatResponse{
			Response: "Sorry, I ran into a problem answering that. Please try again.",
		}
	}

	answer, materialID := parseStructuredReply(raw)

	return &domain.ChatResponse{
		Response:           answer,
		Sources:            filterSources(sources),
		RelevantMaterialID: s.materials.ValidateMaterialID(materialID),
	}
}

// structuredReply is the JSON shape the tutor prompt asks the model
// to produce.
type structuredReply struct {
	Response           string `json:"response"`
	RelevantMaterialID string `json:"relevant_material_id"`
}

// parseStructuredReply extracts the response text and material id
// from a model answer. Models do not always honor the JSON contract,
// so anything that fails to decode is taken verbatim as the response
// with no material id.
func parseStructuredReply(raw string) (response, materialID string) {
	trimmed := strings.TrimSpace(raw)

	// Tolerate fenced output around the JSON object
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	if strings.HasPrefix(trimmed, "{") {
		var reply structuredReply
		if err := json.Unmarshal([]byte(trimmed), &reply); err == nil && reply.Response != "" {
			return reply.Response, reply.RelevantMaterialID
		}
	}

	return raw, ""
}

// filterSources drops retrieval hits that point back at the materials
// index itself; the index is reference data for the frontend, not a
// citable excerpt.
func filterSources(sources []domain.Source) []domain.Source {
	filtered := make([]domain.Source, 0, len(sources))
	for _, src := range sources {
		if strings.Contains(strings.ToLower(src.DocumentName), "materials.json") {
			continue
		}
		filtered = append(filtered, src)
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}
