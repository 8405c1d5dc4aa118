package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/studybuddy-ai/studybuddy/internal/domain"
)

func newTestRepo(t *testing.T) *SessionRepository {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewSessionRepository(db)
}

func TestSessionCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)

	session := &domain.Session{}
	if err := repo.Create(session); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if session.ID == "" {
		t.Fatal("Create() did not assign an ID")
	}

	got, err := repo.Get(session.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got == nil || got.ID != session.ID {
		t.Errorf("Get() = %+v, want ID %q", got, session.ID)
	}
}

func TestSessionGetMissing(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.Get("no-such-session")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != nil {
		t.Errorf("Get(missing) = %+v, want nil", got)
	}
}

func TestMessageRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	session := &domain.Session{}
	if err := repo.Create(session); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	msg := &domain.Message{
		SessionID: session.ID,
		Role:      "assistant",
		Content:   "Photosynthesis happens in chloroplasts.",
		Sources: []domain.Source{
			{Content: "chunk text", Score: 0.87, Source: "doc-1", DocumentName: "biology.pdf"},
		},
	}
	if err := repo.CreateMessage(msg); err != nil {
		t.Fatalf("CreateMessage() error: %v", err)
	}

	messages, err := repo.GetMessages(session.ID)
	if err != nil {
		t.Fatalf("GetMessages() error: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("len(messages) = %d, want 1", len(messages))
	}
	if len(messages[0].Sources) != 1 || messages[0].Sources[0].DocumentName != "biology.pdf" {
		t.Errorf("sources not preserved: %+v", messages[0].Sources)
	}
}

func TestRecentMessagesWindow(t *testing.T) {
	repo := newTestRepo(t)

	session := &domain.Session{}
	if err := repo.Create(session); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	contents := []string{"first", "second", "third", "fourth", "fifth"}
	for _, c := range contents {
		msg := &domain.Message{SessionID: session.ID, Role: "user", Content: c}
		if err := repo.CreateMessage(msg); err != nil {
			t.Fatalf("CreateMessage(%q) error: %v", c, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	window, err := repo.GetRecentMessages(session.ID, 3)
	if err != nil {
		t.Fatalf("GetRecentMessages() error: %v", err)
	}
	if len(window) != 3 {
		t.Fatalf("window size = %d, want 3", len(window))
	}
	for i, want := range []string{"third", "fourth", "fifth"} {
		if window[i].Content != want {
			t.Errorf("window[%d] = %q, want %q", i, window[i].Content, want)
		}
	}
}

func TestDeleteExpired(t *testing.T) {
	repo := newTestRepo(t)

	old := &domain.Session{}
	fresh := &domain.Session{}
	if err := repo.Create(old); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := repo.Create(fresh); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Age the first session past the cutoff
	if _, err := repo.db.Exec(`UPDATE sessions SET updated_at = ? WHERE id = ?`,
		time.Now().Add(-31*24*time.Hour), old.ID); err != nil {
		t.Fatalf("aging session: %v", err)
	}

	n, err := repo.DeleteExpired(time.Now().Add(-30 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("DeleteExpired() error: %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteExpired() = %d, want 1", n)
	}

	if got, _ := repo.Get(old.ID); got != nil {
		t.Error("expired session still present")
	}
	if got, _ := repo.Get(fresh.ID); got == nil {
		t.Error("fresh session was deleted")
	}
}

func TestCounts(t *testing.T) {
	repo := newTestRepo(t)

	session := &domain.Session{}
	if err := repo.Create(session); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	for _, role := range []string{"user", "assistant", "user"} {
		msg := &domain.Message{SessionID: session.ID, Role: role, Content: "x"}
		if err := repo.CreateMessage(msg); err != nil {
			t.Fatalf("CreateMessage() error: %v", err)
		}
	}

	if n, _ := repo.CountSessions(); n != 1 {
		t.Errorf("CountSessions() = %d, want 1", n)
	}
	if n, _ := repo.CountChats(); n != 2 {
		t.Errorf("CountChats() = %d, want 2", n)
	}
}
