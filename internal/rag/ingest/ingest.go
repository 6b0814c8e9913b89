package ingest

import (
	"context"
	"os"
	"time"

	"github.com/akolanti/ProductChat/internal/adapter/utils"
	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
	"github.com/akolanti/ProductChat/internal/domain/jobModel"
	"github.com/akolanti/ProductChat/internal/rag/embedding"
	"github.com/akolanti/ProductChat/internal/rag/vectorDB"
	"github.com/akolanti/ProductChat/pkg/logger_i"
)

var logger *logger_i.Logger

// ProcessDocumentIngestion runs the full indexing pipeline for a freshly
// uploaded file: extract text, persist the document, chunk, embed in batches,
// upsert the vectors, then delete the temp upload.
func ProcessDocumentIngestion(ctx context.Context, job jobModel.Job, e embedding.Embedder, vectorDatabase vectorDB.DataProcessor, docs commonModels.DocumentStore) jobModel.Job {
	logger = logger_i.NewLogger("Document Ingestion ")
	if traceId, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		logger = logger.With("traceId", traceId)
	}

	docName := job.JobPayload.IngestFileName
	docPath := job.JobPayload.IngestURL
	logger.Debug("Processing document", "filename", docName, "path", docPath)

	job.CurrentStep = jobModel.IngestExtracting
	text, err := ExtractText(docPath)
	if err != nil {
		logger.Error("Error extracting document content", "error", err)
		return failJob(job, "Error extracting document content")
	}

	doc := commonModels.Document{
		Id:        utils.GetNewUUID(),
		ProjectId: job.JobPayload.ProjectId,
		Name:      docName,
		FileName:  docName,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	}
	if err := docs.SaveDocument(ctx, doc); err != nil {
		logger.Error("Error saving document", "error", err)
		return failJob(job, "Error saving document")
	}
	job.JobPayload.DocumentId = doc.Id

	job.CurrentStep = jobModel.IngestChunking
	chunks := prepareChunks(doc, text)
	logger.Debug("Processing document", "chunks", len(chunks))

	if err := batchIngest(ctx, &job, chunks, vectorDatabase, e); err != nil {
		logger.Error("Error indexing document", "error", err)
		return failJob(job, "Error indexing document")
	}

	if err := os.Remove(docPath); err != nil {
		logger.Error("Error removing temp file", "error", err)
	}

	job.JobPayload.ChunkCount = len(chunks)
	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	job.EndTime = time.Now().UTC()
	return job
}

// ProcessDocumentReindex rebuilds the chunk set of an existing document after
// its content was edited. Old chunks are dropped first so a successful run
// fully replaces them.
func ProcessDocumentReindex(ctx context.Context, job jobModel.Job, e embedding.Embedder, vectorDatabase vectorDB.DataProcessor, docs commonModels.DocumentStore) jobModel.Job {
	logger = logger_i.NewLogger("Document Reindex ")
	if traceId, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		logger = logger.With("traceId", traceId)
	}

	doc, ok := docs.GetDocument(ctx, job.JobPayload.DocumentId)
	if !ok {
		return failJob(job, "Document not found")
	}

	job.CurrentStep = jobModel.ReindexDelete
	if err := vectorDatabase.DeleteByDocument(ctx, doc.Id); err != nil {
		logger.Error("Error deleting stale chunks", "error", err)
		return failJob(job, "Error deleting stale chunks")
	}

	job.CurrentStep = jobModel.IngestChunking
	chunks := prepareChunks(doc, doc.Content)

	if err := batchIngest(ctx, &job, chunks, vectorDatabase, e); err != nil {
		logger.Error("Error re-indexing document", "error", err)
		return failJob(job, "Error re-indexing document")
	}

	job.JobPayload.ChunkCount = len(chunks)
	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	job.EndTime = time.Now().UTC()
	return job
}

func failJob(job jobModel.Job, message string) jobModel.Job {
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	job.Error.Message = message
	job.EndTime = time.Now().UTC()
	return job
}
