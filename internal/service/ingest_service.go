package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/studybuddy-ai/studybuddy/internal/config"
	"github.com/studybuddy-ai/studybuddy/internal/domain"
	"go.uber.org/zap"
)

// IngestService loads study documents into the knowledge base
type IngestService struct {
	cfg       *config.Config
	retriever *RetrieverService
	logger    *zap.Logger
}

// NewIngestService creates a new ingest service
func NewIngestService(cfg *config.Config, retriever *RetrieverService, logger *zap.Logger) *IngestService {
	return &IngestService{cfg: cfg, retriever: retriever, logger: logger}
}

// FileType constants
const (
	FileTypePDF = "pdf"
	FileTypeMD  = "md"
	FileTypeTXT = "txt"
)

// DetectFileType detects file type from filename
func DetectFileType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return FileTypePDF
	case ".md", ".markdown":
		return FileTypeMD
	case ".txt":
		return FileTypeTXT
	case "":
		return ""
	default:
		return ext[1:]
	}
}

// IsSupported checks if file type is supported
func IsSupported(fileType string) bool {
	switch fileType {
	case FileTypePDF, FileTypeMD, FileTypeTXT:
		return true
	}
	return false
}

// UploadDocument stores an uploaded study document and queues it for
// ingestion into the knowledge base.
func (s *IngestService) UploadDocument(ctx context.Context, file *multipart.FileHeader) (*domain.Document, error) {
	fileType := DetectFileType(file.Filename)
	if !IsSupported(fileType) {
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}

	if err := os.MkdirAll(s.cfg.Storage.Documents, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	docID := uuid.New().String()
	storagePath := filepath.Join(s.cfg.Storage.Documents, docID+filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	document := &domain.Document{
		ID:       docID,
		Filename: file.Filename,
		FileType: fileType,
		Status:   domain.DocumentStatusPending,
	}

	go s.ingestDocument(context.Background(), document, storagePath)

	return document, nil
}

func (s *IngestService) ingestDocument(ctx context.Context, document *domain.Document, storagePath string) {
	if s.retriever == nil {
		return
	}

	metadata := map[string]any{
		domain.MetadataKeyFilename: document.Filename,
		domain.MetadataKeyFileType: document.FileType,
		domain.MetadataKeyStatus:   domain.DocumentStatusReady,
	}

	resp, err := s.retriever.IngestFile(ctx, storagePath, metadata)
	if err != nil {
		s.logger.Error("document ingestion failed",
			zap.String("filename", document.Filename), zap.Error(err))
		document.Status = domain.DocumentStatusFailed
		document.Error = err.Error()
		return
	}

	document.ID = resp.DocumentID
	document.Status = domain.DocumentStatusReady
	document.ChunkCount = resp.ChunkCount

	s.retriever.UpdateDocumentMetadata(ctx, document.ID, map[string]any{
		domain.MetadataKeyChunkCount: resp.ChunkCount,
	})

	s.logger.Info("document ingested",
		zap.String("filename", document.Filename),
		zap.Int("chunks", resp.ChunkCount))
}

// ListDocuments lists ingested documents
func (s *IngestService) ListDocuments(ctx context.Context) ([]*domain.Document, error) {
	if s.retriever == nil {
		return nil, fmt.Errorf("retriever not available")
	}
	return s.retriever.ListDocuments(ctx)
}

// DeleteDocument removes a document from the knowledge base and disk
func (s *IngestService) DeleteDocument(ctx context.Context, id string) error {
	if s.retriever == nil {
		return fmt.Errorf("retriever not available")
	}

	if err := s.retriever.DeleteDocument(ctx, id); err != nil {
		return err
	}

	matches, _ := filepath.Glob(filepath.Join(s.cfg.Storage.Documents, id+".*"))
	for _, m := range matches {
		os.Remove(m)
	}
	return nil
}
