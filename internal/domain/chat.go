package domain

import "time"

// Session represents one student's conversation with the tutor
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message represents a chat message
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	Sources   []Source  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Source is one retrieved excerpt backing an assistant answer.
// Field names follow the wire format the chat frontend consumes.
type Source struct {
	Content      string  `json:"content"`
	Score        float64 `json:"score"`
	Source       string  `json:"source"`
	DocumentName string  `json:"documentName"`
}

// ChatRequest is the request to send a chat message
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId,omitempty"`
}

// ChatResponse is the response from a chat message
type ChatResponse struct {
	Response           string   `json:"response"`
	SessionID          string   `json:"sessionId,omitempty"`
	Sources            []Source `json:"sources,omitempty"`
	RelevantMaterialID string   `json:"relevantMaterialId,omitempty"`
}

// Stats represents system statistics
type Stats struct {
	TotalSessions int `json:"total_sessions"`
	TotalChats    int `json:"total_chats"`
	TotalTopics   int `json:"total_topics"`
}
