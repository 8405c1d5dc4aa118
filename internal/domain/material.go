package domain

import "time"

// StudyTopic is one curriculum record from the study materials set.
// It also appears embedded in retrieved source content, which is why
// the classifier decodes into it.
type StudyTopic struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Category       string   `json:"category"`
	Content        string   `json:"content"`
	KeyConcepts    []string `json:"key_concepts"`
	StudyQuestions []string `json:"study_questions"`
}

// MaterialMetadata describes the material set as a whole
type MaterialMetadata struct {
	Course      string `json:"course"`
	Level       string `json:"level"`
	LastUpdated string `json:"last_updated"`
	TotalTopics int    `json:"total_topics"`
}

// MaterialSet is the full study materials payload served by GET /materials
type MaterialSet struct {
	Topics   []StudyTopic     `json:"topics"`
	Metadata MaterialMetadata `json:"metadata"`
}

// Document status constants (stored in rago metadata)
const (
	DocumentStatusPending = "pending"
	DocumentStatusReady   = "ready"
	DocumentStatusFailed  = "failed"
)

// Metadata keys stored in rago's document metadata
const (
	MetadataKeyFilename   = "filename"
	MetadataKeyFileType   = "file_type"
	MetadataKeyStatus     = "status"
	MetadataKeyChunkCount = "chunk_count"
	MetadataKeyError      = "error"
)

// Document represents an ingested knowledge-base document (API response
// type, backed by rago storage)
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	Status     string    `json:"status"`
	ChunkCount int       `json:"chunk_count"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
