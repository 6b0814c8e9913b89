// @title           ProductChat API
// @version         1.0
// @description     Backend for an embeddable product documentation chat widget. Retrieval augmented answers stream over SSE, documents are indexed by background jobs.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/data/store"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
	jobmodel "github.com/akolanti/ProductChat/internal/domain/jobModel"
	"github.com/akolanti/ProductChat/internal/handlers"
	"github.com/akolanti/ProductChat/internal/job"
	"github.com/akolanti/ProductChat/internal/rag"
	"github.com/akolanti/ProductChat/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/ProductChat/internal/rag/llm/gemini"
	"github.com/akolanti/ProductChat/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/ProductChat/internal/server"
	"github.com/akolanti/ProductChat/internal/worker"
	"github.com/akolanti/ProductChat/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//stores - redis when reachable, in-memory otherwise
	var (
		jobStore      jobmodel.JobStore
		projectStore  commonModels.ProjectStore
		documentStore commonModels.DocumentStore
		eventStore    commonModels.EventStore
	)
	redisJobs := store.GetRedisJobStore(serviceContext)
	redisProjects := store.GetRedisProjectStore(serviceContext)
	redisDocs := store.GetRedisDocumentStore(serviceContext)
	redisEvents := store.GetRedisEventStore(serviceContext)
	if redisJobs == nil || redisProjects == nil || redisDocs == nil || redisEvents == nil {
		logger.Error("Redis is offline, falling back to in-memory stores")
		jobStore = store.InitInMemoryJobStore()
		projectStore = store.InitInMemoryProjectStore()
		documentStore = store.InitInMemoryDocumentStore()
		eventStore = store.InitInMemoryEventStore()
	} else {
		jobStore = redisJobs
		projectStore = redisProjects
		documentStore = redisDocs
		eventStore = redisEvents
	}

	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
	}
	logger.Info("Starting job service")
	service := job.InitJobService(serviceConfig)

	vectorDB := qdrantDB.GetQuadrantClient(serviceContext)
	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleAPIKey())
	llmProvider := gemini.GetGeminiClient(serviceContext, config.GeminiModelName, config.GoogleAPIKey())

	if vectorDB == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDB != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	ragService := rag.NewService(vectorDB, llmProvider, embeddingService, documentStore)

	handlers.InitHandlers(handlers.Deps{
		Jobs:      service,
		Rag:       ragService,
		Projects:  projectStore,
		Documents: documentStore,
		Events:    eventStore,
	})

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
