package service

import (
	"context"
	"fmt"
	"strings"

	ragoconfig "github.com/liliang-cn/rago/v2/pkg/config"
	ragodomain "github.com/liliang-cn/rago/v2/pkg/domain"
	"github.com/liliang-cn/rago/v2/pkg/providers"
	"github.com/liliang-cn/rago/v2/pkg/rag"
	ragstore "github.com/liliang-cn/rago/v2/pkg/rag/store"
	"github.com/studybuddy-ai/studybuddy/internal/config"
	"github.com/studybuddy-ai/studybuddy/internal/domain"
)

// RetrieverService wraps the rago RAG stack: embeddings, vector
// retrieval, chunking and generation are all delegated to it. This
// service only translates between the app's domain types and rago's.
type RetrieverService struct {
	cfg       *config.Config
	ragClient *rag.Client

	embedder      ragodomain.EmbedderProvider
	generator     ragodomain.Generator
	documentStore *ragstore.DocumentStore
	sqliteStore   *ragstore.SQLiteStore
}

// NewRetrieverService creates the rago client from app configuration
func NewRetrieverService(cfg *config.Config) (*RetrieverService, error) {
	ragoCfg := &ragoconfig.Config{
		Sqvect: ragoconfig.SqvectConfig{
			DBPath:    cfg.RAG.DBPath,
			IndexType: cfg.RAG.IndexType,
		},
		Chunker: ragoconfig.ChunkerConfig{
			ChunkSize: cfg.RAG.ChunkSize,
			Overlap:   cfg.RAG.ChunkOverlap,
		},
		Ingest: ragoconfig.IngestConfig{
			MetadataExtraction: ragoconfig.MetadataExtractionConfig{
				Enable: false,
			},
		},
	}

	factory := providers.NewFactory()

	providerCfg := &ragodomain.OpenAIProviderConfig{
		BaseURL:        cfg.LLM.BaseURL,
		APIKey:         cfg.LLM.APIKey,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
		LLMModel:       cfg.LLM.LLMModel,
	}

	ctx := context.Background()

	embedder, err := factory.CreateEmbedderProvider(ctx, providerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	llmProvider, err := factory.CreateLLMProvider(ctx, providerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	ragClient, err := rag.NewClient(ragoCfg, embedder, llmProvider, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create RAG client: %w", err)
	}

	sqliteStore, err := ragstore.NewSQLiteStore(cfg.RAG.DBPath, cfg.RAG.IndexType)
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite store: %w", err)
	}
	documentStore := ragstore.NewDocumentStore(sqliteStore.GetSqvectStore())

	return &RetrieverService{
		cfg:           cfg,
		ragClient:     ragClient,
		embedder:      embedder,
		generator:     llmProvider,
		documentStore: documentStore,
		sqliteStore:   sqliteStore,
	}, nil
}

// Ask runs one retrieval-augmented generation turn: the prompt is
// answered by the model with the top-k retrieved chunks as context.
// Returns the raw model answer and the sources that grounded it.
func (s *RetrieverService) Ask(ctx context.Context, prompt string, topK int) (string, []domain.Source, error) {
	opts := &rag.QueryOptions{
		TopK:        topK,
		Temperature: s.cfg.LLM.Temperature,
		MaxTokens:   s.cfg.LLM.MaxTokens,
		ShowSources: true,
	}

	resp, err := s.ragClient.Query(ctx, prompt, opts)
	if err != nil {
		return "", nil, fmt.Errorf("rag query failed: %w", err)
	}

	sources := make([]domain.Source, len(resp.Sources))
	for i, src := range resp.Sources {
		sources[i] = domain.Source{
			Content: src.Content,
			Score:   src.Score,
			Source:  src.DocumentID,
		}
		if src.Metadata != nil {
			if filename, ok := src.Metadata[domain.MetadataKeyFilename].(string); ok {
				sources[i].DocumentName = filename
			}
		}
		if sources[i].DocumentName == "" {
			sources[i].DocumentName = documentNameFromURI(sources[i].Source)
		}
	}

	return resp.Answer, sources, nil
}

// IngestFile ingests a file into the knowledge base
func (s *RetrieverService) IngestFile(ctx context.Context, filePath string, metadata map[string]any) (*ragodomain.IngestResponse, error) {
	opts := &rag.IngestOptions{
		ChunkSize: s.cfg.RAG.ChunkSize,
		Overlap:   s.cfg.RAG.ChunkOverlap,
		Metadata:  metadata,
	}
	return s.ragClient.IngestFile(ctx, filePath, opts)
}

// IngestText ingests text content into the knowledge base
func (s *RetrieverService) IngestText(ctx context.Context, text, source string, metadata map[string]any) (*ragodomain.IngestResponse, error) {
	opts := &rag.IngestOptions{
		ChunkSize: s.cfg.RAG.ChunkSize,
		Overlap:   s.cfg.RAG.ChunkOverlap,
		Metadata:  metadata,
	}
	return s.ragClient.IngestText(ctx, text, source, opts)
}

// ListDocuments lists ingested knowledge-base documents
func (s *RetrieverService) ListDocuments(ctx context.Context) ([]*domain.Document, error) {
	docs, err := s.documentStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	result := make([]*domain.Document, len(docs))
	for i, doc := range docs {
		result[i] = ragoDocToDocument(doc)
	}
	return result, nil
}

// DeleteDocument deletes a document from the knowledge base
func (s *RetrieverService) DeleteDocument(ctx context.Context, id string) error {
	return s.documentStore.Delete(ctx, id)
}

// UpdateDocumentMetadata merges metadata into a stored document
func (s *RetrieverService) UpdateDocumentMetadata(ctx context.Context, id string, metadata map[string]any) error {
	doc, err := s.documentStore.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]interface{})
	}
	for k, v := range metadata {
		doc.Metadata[k] = v
	}

	return s.documentStore.Store(ctx, doc)
}

// Close releases the underlying stores
func (s *RetrieverService) Close() error {
	if s.sqliteStore != nil {
		return s.sqliteStore.Close()
	}
	return nil
}

func ragoDocToDocument(doc ragodomain.Document) *domain.Document {
	result := &domain.Document{
		ID:        doc.ID,
		CreatedAt: doc.Created,
	}

	if doc.Metadata != nil {
		if v, ok := doc.Metadata[domain.MetadataKeyFilename].(string); ok {
			result.Filename = v
		}
		if v, ok := doc.Metadata[domain.MetadataKeyFileType].(string); ok {
			result.FileType = v
		}
		if v, ok := doc.Metadata[domain.MetadataKeyStatus].(string); ok {
			result.Status = v
		}
		if v, ok := doc.Metadata[domain.MetadataKeyChunkCount].(int); ok {
			result.ChunkCount = v
		} else if v, ok := doc.Metadata[domain.MetadataKeyChunkCount].(float64); ok {
			result.ChunkCount = int(v)
		}
		if v, ok := doc.Metadata[domain.MetadataKeyError].(string); ok {
			result.Error = v
		}
	}

	if result.Status == "" {
		result.Status = domain.DocumentStatusReady
	}

	return result
}

// documentNameFromURI derives a display label from a source URI: the
// last path segment, or the URI itself when it has no path.
func documentNameFromURI(uri string) string {
	if idx := strings.LastIndex(uri, "/"); idx >= 0 && idx < len(uri)-1 {
		return uri[idx+1:]
	}
	return uri
}
