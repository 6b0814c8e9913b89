package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akolanti/ProductChat/internal/config"
	jobmodel "github.com/akolanti/ProductChat/internal/domain/jobModel"
	"github.com/akolanti/ProductChat/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()

	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, jobExecutionTimeout)
	defer cancel()
	logger.Debug("Processing job", "jobId", job.Id, "type", job.JobType, "traceId", job.TraceId)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	switch job.JobType {
	case jobmodel.JobTypeIngest:
		job = _ragService.IngestDocument(ctx, job)
	case jobmodel.JobTypeReindex:
		job = _ragService.ReindexDocument(ctx, job)
	default:
		logger.Error("Unknown job type", "jobId", job.Id, "type", job.JobType)
		job.Status = jobmodel.JobStatusError
		job.Error.Message = "unknown job type"
	}

	saveJobState(ctx, job, job.Status)
	metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job status", "err", err)
	}
}
