package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/ProductChat/internal/handlers"
	"github.com/akolanti/ProductChat/internal/metrics"
	"github.com/akolanti/ProductChat/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	handled    bool
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

// Widget-facing endpoints: trace, CORS and per-IP rate limiting, no auth.
var (
	GetHandler        = WrapPublic(handlers.GetHandler)
	ChatHandler       = WrapPublic(handlers.ChatHandler)
	PushEventHandler  = WrapPublic(handlers.PushEventHandler)
	GetProjectHandler = WrapPublic(handlers.GetProjectHandler)
)

// Admin endpoints: trace and bearer auth.
var (
	ListProjectsHandler          = WrapProtected(handlers.ListProjectsHandler)
	CreateProjectHandler         = WrapProtected(handlers.CreateProjectHandler)
	UpdateProjectHandler         = WrapProtected(handlers.UpdateProjectHandler)
	DeleteProjectHandler         = WrapProtected(handlers.DeleteProjectHandler)
	GenerateDescriptionHandler   = WrapProtected(handlers.GenerateDescriptionHandler)
	ListDocumentsHandler         = WrapProtected(handlers.ListDocumentsHandler)
	UploadDocumentHandler        = WrapProtected(handlers.UploadDocumentHandler)
	GetDocumentContentHandler    = WrapProtected(handlers.GetDocumentContentHandler)
	UpdateDocumentContentHandler = WrapProtected(handlers.UpdateDocumentContentHandler)
	DeleteDocumentHandler        = WrapProtected(handlers.DeleteDocumentHandler)
	ListEventsHandler            = WrapProtected(handlers.ListEventsHandler)
	GetStatusHandler             = WrapProtected(handlers.GetStatusHandler)
)

func WrapPublic(next http.HandlerFunc) http.HandlerFunc {
	return wrap(next, injectTrace, corsHeaders, rateLimiter)
}

func WrapProtected(next http.HandlerFunc) http.HandlerFunc {
	return wrap(next, injectTrace, authenticate)
}

func wrap(next http.HandlerFunc, steps ...func(requestResponseStruct) requestResponseStruct) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := requestResponseStruct{req: r, writer: rec, logger: logger_i.NewLogger("middleware")}

		for _, step := range steps {
			re = step(re)
			if re.handled {
				return
			}
			if re.badRequest.isBadRequest {
				handleBadRequest(re)
				return
			}
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}
