package jobModel

import (
	"context"
	"time"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	IngestInit       InternalStatus = "IngestInit"
	IngestExtracting InternalStatus = "IngestExtracting"
	IngestChunking   InternalStatus = "IngestChunking"
	EmbeddingAPICall InternalStatus = "EmbeddingAPI"
	VectorDBUpsert   InternalStatus = "VectorDBUpsert"
	ReindexDelete    InternalStatus = "ReindexDelete"
	Error            InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	//ingest indexes a freshly uploaded file, reindex rebuilds the chunk set
	//of an existing document after its content was edited
	JobTypeIngest  JobType = "Ingest"
	JobTypeReindex JobType = "Reindex"
)

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	ProjectId  string `json:"project_id,omitempty"`
	DocumentId string `json:"document_id,omitempty"`

	//ingest only - where the uploaded file was parked
	IngestFileName string `json:"ingest_file_name,omitempty"`
	IngestURL      string `json:"ingest_url,omitempty"`

	ChunkCount int `json:"chunk_count,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
