package rag

import (
	"context"
	"errors"
	"time"

	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
	"github.com/akolanti/ProductChat/internal/metrics"
	"github.com/akolanti/ProductChat/internal/rag/vectorDB"
	"github.com/akolanti/ProductChat/pkg/logger_i"
)

// ErrNoDocumentation means a summary was requested for a project that has no
// stored document content yet.
var ErrNoDocumentation = errors.New("no documentation content")

func (s *service) executeEmbeddingStep(ctx context.Context, log *logger_i.Logger, query string) ([]float32, error) {
	log.Debug("FetchContext", "step", "embedding")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.Embed(ctx, query)
}

func (s *service) executeCacheCheckStep(ctx context.Context, log *logger_i.Logger, projectId string, emb []float32) (vectorDB.CachedAnswer, bool) {
	log.Debug("FetchContext", "step", "cache lookup")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	cached, found, _ := s.vectorDB.GetCachedAnswer(ctx, projectId, emb)
	return cached, found
}

func (s *service) executeVectorSearchStep(ctx context.Context, log *logger_i.Logger, projectId string, emb []float32) ([]commonModels.SearchResult, error) {
	log.Debug("FetchContext", "step", "vector search")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.vectorDB.Search(ctx, projectId, emb, config.SearchChunkLimit)
}
