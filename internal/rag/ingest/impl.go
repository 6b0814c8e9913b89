package ingest

import (
	"context"
	"fmt"

	"github.com/akolanti/ProductChat/internal/adapter/utils"
	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
	"github.com/akolanti/ProductChat/internal/domain/jobModel"
	"github.com/akolanti/ProductChat/internal/rag/chunker"
	"github.com/akolanti/ProductChat/internal/rag/embedding"
	"github.com/akolanti/ProductChat/internal/rag/vectorDB"
)

const embeddingBatchSize = 100

func prepareChunks(doc commonModels.Document, text string) []commonModels.DocChunk {
	var chunks []commonModels.DocChunk
	for _, window := range chunker.Chunk(text, config.ChunkSize, config.ChunkOverlap) {
		chunks = append(chunks, commonModels.DocChunk{
			ChunkId:      utils.GetNewUUID(),
			DocumentId:   doc.Id,
			DocumentName: doc.Name,
			ProjectId:    doc.ProjectId,
			Content:      window,
		})
	}
	return chunks
}

func batchIngest(ctx context.Context, job *jobModel.Job, chunks []commonModels.DocChunk, vectorDatabase vectorDB.DataProcessor, embedder embedding.Embedder) error {
	for i := 0; i < len(chunks); i += embeddingBatchSize {
		end := min(i+embeddingBatchSize, len(chunks))
		currentBatch := chunks[i:end]

		texts := make([]string, 0, len(currentBatch))
		for _, c := range currentBatch {
			texts = append(texts, c.Content)
		}

		job.CurrentStep = jobModel.EmbeddingAPICall
		logger.Debug("Starting embedding call", "batch length", len(currentBatch))
		vectors, err := embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}

		job.CurrentStep = jobModel.VectorDBUpsert
		if err := vectorDatabase.UpsertChunks(ctx, currentBatch, vectors); err != nil {
			return fmt.Errorf("upserting to qdrant failed: %w", err)
		}
	}
	return nil
}
