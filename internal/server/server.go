package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/ProductChat/internal/adapter/utils"
	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/middleware"
	"github.com/akolanti/ProductChat/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string) {
	_logger = logger_i.NewLogger("Server")

	r := utils.GetRouter()

	r.Router.Get("/health", middleware.GetHandler)

	//widget surface
	r.Router.Post("/chat", middleware.ChatHandler)
	r.Router.Options("/chat", middleware.ChatHandler)
	r.Router.Post("/events", middleware.PushEventHandler)
	r.Router.Options("/events", middleware.PushEventHandler)

	//admin surface
	r.Router.Get("/projects", middleware.ListProjectsHandler)
	r.Router.Post("/projects", middleware.CreateProjectHandler)
	r.Router.Get("/projects/{id}", middleware.GetProjectHandler)
	r.Router.Patch("/projects/{id}", middleware.UpdateProjectHandler)
	r.Router.Delete("/projects/{id}", middleware.DeleteProjectHandler)
	r.Router.Post("/projects/{id}/generate-description", middleware.GenerateDescriptionHandler)

	r.Router.Get("/projects/{id}/documents", middleware.ListDocumentsHandler)
	r.Router.Post("/projects/{id}/documents", middleware.UploadDocumentHandler)
	r.Router.Get("/documents/{id}/content", middleware.GetDocumentContentHandler)
	r.Router.Put("/documents/{id}/content", middleware.UpdateDocumentContentHandler)
	r.Router.Delete("/documents/{id}", middleware.DeleteDocumentHandler)

	r.Router.Get("/events", middleware.ListEventsHandler)
	r.Router.Get("/jobs/{id}", middleware.GetStatusHandler)

	server = &http.Server{
		Addr:        listenAddr,
		Handler:     r.Router,
		ReadTimeout: config.ReadTimeout,
		//generous write deadline - chat answers stream well past a normal
		//response cycle
		WriteTimeout: config.StreamWriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	println("\nServer is shutting down", state)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully: %s", err)
		}

		//close workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully is shutting down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
