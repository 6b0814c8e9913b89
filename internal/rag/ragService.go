package rag

import (
	"context"
	"iter"
	"strings"
	"time"

	"github.com/akolanti/ProductChat/internal/adapter/utils"
	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/domain/chatModel"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
	"github.com/akolanti/ProductChat/internal/domain/jobModel"
	"github.com/akolanti/ProductChat/internal/metrics"
	"github.com/akolanti/ProductChat/internal/rag/embedding"
	"github.com/akolanti/ProductChat/internal/rag/ingest"
	"github.com/akolanti/ProductChat/internal/rag/intent"
	"github.com/akolanti/ProductChat/internal/rag/llm"
	"github.com/akolanti/ProductChat/internal/rag/vectorDB"
	"github.com/akolanti/ProductChat/pkg/logger_i"
)

// RetrievalContext is what a retrieval attempt produced for one request.
// When Cached is set the answer was served from the semantic cache and no
// generation is needed.
type RetrievalContext struct {
	ContextBlock string
	Sources      []commonModels.Source
	QueryVector  []float32
	Cached       *vectorDB.CachedAnswer
}

// Service is the public contract of the pipeline. The chat handler and the
// ingest worker only ever talk to this interface, never to the clients below
// it, so both can be tested against mocks.
type Service interface {
	ExtractSearchTerms(ctx context.Context, project commonModels.Project, userMessage string) []string
	FetchContext(ctx context.Context, projectId string, searchTerms []string) (RetrievalContext, error)
	StreamAnswer(ctx context.Context, contextBlock string, messages []chatModel.ChatMessage) iter.Seq2[string, error]
	CacheAnswer(ctx context.Context, productId string, queryVector []float32, answer vectorDB.CachedAnswer)

	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
	ReindexDocument(ctx context.Context, job jobModel.Job) jobModel.Job

	//RemoveDocumentIndex drops a document's chunks from the vector store,
	//used when the document itself is deleted.
	RemoveDocumentIndex(ctx context.Context, documentId string) error

	SummarizeProject(ctx context.Context, projectId string) (string, error)
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	extractor   *intent.Extractor
	documents   commonModels.DocumentStore
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(vector vectorDB.DataProcessor, llm llm.Provider, em embedding.Embedder, docs commonModels.DocumentStore) Service {
	return &service{
		vectorDB:    vector,
		llmProvider: llm,
		embedder:    em,
		extractor:   intent.NewExtractor(llm),
		documents:   docs,
		logger:      logger_i.NewLogger("RAG Service :"),
	}
}

func (s *service) ExtractSearchTerms(ctx context.Context, project commonModels.Project, userMessage string) []string {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extraction", time.Since(start)) }()

	extractCtx, cancel := context.WithTimeout(ctx, config.RetrievalTimeout)
	defer cancel()

	return s.extractor.Extract(extractCtx, project.Name, project.Description, userMessage)
}

// FetchContext runs embed -> cache probe -> similarity search -> assembly.
// The caller treats any returned error as "answer without context".
func (s *service) FetchContext(ctx context.Context, projectId string, searchTerms []string) (RetrievalContext, error) {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "projectId", projectId)

	fetchCtx, cancel := context.WithTimeout(ctx, config.RetrievalTimeout)
	defer cancel()

	query := strings.Join(searchTerms, " ")

	queryVector, err := s.executeEmbeddingStep(fetchCtx, inMethodLogger, query)
	if err != nil {
		return RetrievalContext{}, err
	}

	if cached, found := s.executeCacheCheckStep(fetchCtx, inMethodLogger, projectId, queryVector); found {
		return RetrievalContext{QueryVector: queryVector, Cached: &cached}, nil
	}

	chunks, err := s.executeVectorSearchStep(fetchCtx, inMethodLogger, projectId, queryVector)
	if err != nil {
		return RetrievalContext{}, err
	}

	contextBlock, sources := BuildContext(chunks)
	return RetrievalContext{
		ContextBlock: contextBlock,
		Sources:      sources,
		QueryVector:  queryVector,
	}, nil
}

func (s *service) StreamAnswer(ctx context.Context, contextBlock string, messages []chatModel.ChatMessage) iter.Seq2[string, error] {
	start := time.Now()
	systemInstruction := BuildSystemInstruction(contextBlock)

	upstream := s.llmProvider.GenerateStream(ctx, systemInstruction, messages)
	return func(yield func(string, error) bool) {
		defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()
		for fragment, err := range upstream {
			if !yield(fragment, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

// CacheAnswer stores a finished grounded answer keyed by its query embedding.
// Best effort - a failed save only costs a future cache hit.
func (s *service) CacheAnswer(ctx context.Context, productId string, queryVector []float32, answer vectorDB.CachedAnswer) {
	if len(queryVector) == 0 || answer.Answer == "" {
		return
	}
	if err := s.vectorDB.SaveToCache(ctx, productId, utils.GetNewUUID(), queryVector, answer); err != nil {
		s.logger.Error("Failed to save answer to cache", "error", err)
	}
}

func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()
	return ingest.ProcessDocumentIngestion(ctx, job, s.embedder, s.vectorDB, s.documents)
}

func (s *service) ReindexDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_reindex", time.Since(start)) }()
	return ingest.ProcessDocumentReindex(ctx, job, s.embedder, s.vectorDB, s.documents)
}

func (s *service) RemoveDocumentIndex(ctx context.Context, documentId string) error {
	return s.vectorDB.DeleteByDocument(ctx, documentId)
}

// SummarizeProject produces a one-sentence product description from all the
// project's documentation.
func (s *service) SummarizeProject(ctx context.Context, projectId string) (string, error) {
	docs, err := s.documents.ListDocuments(ctx, projectId)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, d := range docs {
		if full, ok := s.documents.GetDocument(ctx, d.Id); ok && full.Content != "" {
			parts = append(parts, "["+full.Name+"]\n"+full.Content)
		}
	}
	documentation := strings.Join(parts, chunkSeparator)
	if strings.TrimSpace(documentation) == "" {
		return "", ErrNoDocumentation
	}
	if len(documentation) > config.SummaryInputCharLimit {
		documentation = documentation[:config.SummaryInputCharLimit]
	}

	return s.llmProvider.Generate(ctx, "", SummaryPrompt+"\n\n---\n\n"+documentation)
}
