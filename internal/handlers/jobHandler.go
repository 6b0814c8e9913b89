package handlers

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/ProductChat/internal/adapter"
	"github.com/akolanti/ProductChat/internal/adapter/utils"
	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
	"github.com/akolanti/ProductChat/internal/domain/jobModel"
	"github.com/akolanti/ProductChat/internal/job"
	"github.com/akolanti/ProductChat/internal/metrics"
	"github.com/akolanti/ProductChat/internal/rag"
	"github.com/akolanti/ProductChat/pkg/logger_i"
)

var (
	handlerInstance *handlerRegistry //private singleton
	once            sync.Once
	logJH           = logger_i.NewLogger("JobHandler")
	logRH           = logger_i.NewLogger("RequestHandler")
)

// handlerRegistry holds everything the HTTP layer talks to. Handlers stay
// plain functions, dependencies live here.
type handlerRegistry struct {
	jobs      *job.Service
	rag       rag.Service
	projects  commonModels.ProjectStore
	documents commonModels.DocumentStore
	events    commonModels.EventStore
}

type Deps struct {
	Jobs      *job.Service
	Rag       rag.Service
	Projects  commonModels.ProjectStore
	Documents commonModels.DocumentStore
	Events    commonModels.EventStore
}

func InitHandlers(deps Deps) {
	once.Do(func() {
		handlerInstance = &handlerRegistry{
			jobs:      deps.Jobs,
			rag:       deps.Rag,
			projects:  deps.Projects,
			documents: deps.Documents,
			events:    deps.Events,
		}

		logJH.Info("Handlers initialized")
	})
}

type newJobData struct {
	jobType    jobModel.JobType
	traceId    string
	projectId  string
	documentId string
	fileName   string
	filePath   string
}

// enqueueJob parks a QUEUED job record, pushes it onto the buffered channel
// and signals the dispatcher. Ingest style jobs always get a worker nudge
// since they involve slow external calls.
func enqueueJob(data newJobData) jobModel.Job {
	newJob := jobModel.Job{
		Id:          utils.GetNewUUID(),
		TraceId:     data.traceId,
		JobType:     data.jobType,
		CreatedTime: time.Now().UTC(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.IngestInit,
		JobPayload: jobModel.JobPayload{
			ProjectId:      data.projectId,
			DocumentId:     data.documentId,
			IngestFileName: data.fileName,
			IngestURL:      data.filePath,
		},
	}

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, data.traceId)
	if err := handlerInstance.jobs.JobStore.SaveJob(ctx, newJob); err != nil {
		logJH.Error("Failed to save queued job", "error", err)
	}

	metrics.IncrementJobsInQueue()
	handlerInstance.jobs.JobChannel <- newJob //blocking send keeps backpressure on uploads

	accurateCount := atomic.AddInt64(&handlerInstance.jobs.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || newJob.JobType == jobModel.JobTypeIngest || newJob.JobType == jobModel.JobTypeReindex {
		metrics.StartDispatcherSignalCount()
		handlerInstance.jobs.DispatcherChannel <- true
	}

	logJH.Info("Created new job", "jobId", newJob.Id, "type", newJob.JobType)
	return newJob
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.jobs.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of an ingestion or re-index job.
// @Tags         Jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /jobs/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	traceId, _ := r.Context().Value(config.TRACE_ID_KEY).(string)
	result, isFound := GetJobStatus(idString, traceId)
	if idString == "" || !isFound {
		WriteErrorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
