package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/studybuddy-ai/studybuddy/internal/config"
	"github.com/studybuddy-ai/studybuddy/internal/domain"
	"github.com/studybuddy-ai/studybuddy/internal/repository"
	"go.uber.org/zap"
)

type fakeRetriever struct {
	answer  string
	sources []domain.Source
	prompts []string
}

func (f *fakeRetriever) Ask(ctx context.Context, prompt string, topK int) (string, []domain.Source, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.sources, nil
}

func newChatFixture(t *testing.T, fake *fakeRetriever) *ChatService {
	t.Helper()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("NewDB() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Sessions.WindowSize = 20
	cfg.RAG.TopK = 5

	materials := NewMaterialsService(writeFixture(t, materialsFixture), zap.NewNop())

	svc := NewChatService(cfg, repository.NewSessionRepository(db), materials, nil, zap.NewNop())
	svc.retriever = fake
	return svc
}

func TestChatTurn(t *testing.T) {
	fake := &fakeRetriever{
		answer: `{"response":"Mitosis is how cells divide.","relevant_material_id":"mitosis"}`,
		sources: []domain.Source{
			{Content: "chunk", Score: 0.9, Source: "doc-1", DocumentName: "biology.pdf"},
			{Content: "index", Score: 0.5, Source: "doc-2", DocumentName: "materials.json"},
		},
	}
	svc := newChatFixture(t, fake)

	resp, err := svc.Chat(context.Background(), &domain.ChatRequest{Message: "What is mitosis?"})
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}

	if resp.SessionID == "" {
		t.Error("no session id assigned")
	}
	if resp.Response != "Mitosis is how cells divide." {
		t.Errorf("response = %q", resp.Response)
	}
	if resp.RelevantMaterialID != "mitosis" {
		t.Errorf("relevant material = %q, want mitosis", resp.RelevantMaterialID)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].DocumentName != "biology.pdf" {
		t.Errorf("materials.json not filtered from sources: %+v", resp.Sources)
	}

	// Both turns must be in the transcript
	messages, err := svc.GetMessages(resp.SessionID)
	if err != nil {
		t.Fatalf("GetMessages() error: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(messages))
	}
	if messages[0].Role != "user" || messages[1].Role != "assistant" {
		t.Errorf("transcript roles = %q, %q", messages[0].Role, messages[1].Role)
	}
}

func TestChatCarriesHistoryIntoPrompt(t *testing.T) {
	fake := &fakeRetriever{answer: `{"response":"ok"}`}
	svc := newChatFixture(t, fake)

	first, err := svc.Chat(context.Background(), &domain.ChatRequest{Message: "first question"})
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}

	if _, err := svc.Chat(context.Background(), &domain.ChatRequest{
		Message:   "second question",
		SessionID: first.SessionID,
	}); err != nil {
		t.Fatalf("Chat() error: %v", err)
	}

	if len(fake.prompts) != 2 {
		t.Fatalf("model called %d times, want 2", len(fake.prompts))
	}
	second := fake.prompts[1]
	for _, want := range []string{"first question", "Student: second question"} {
		if !strings.Contains(second, want) {
			t.Errorf("second prompt missing %q", want)
		}
	}
}

func TestChatAcceptsClientSessionID(t *testing.T) {
	fake := &fakeRetriever{answer: "plain answer"}
	svc := newChatFixture(t, fake)

	resp, err := svc.Chat(context.Background(), &domain.ChatRequest{
		Message:   "hello",
		SessionID: "client-chosen-id",
	})
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}
	if resp.SessionID != "client-chosen-id" {
		t.Errorf("session id = %q, want the client's id", resp.SessionID)
	}
	if resp.Response != "plain answer" {
		t.Errorf("plain-text reply mangled: %q", resp.Response)
	}
}
