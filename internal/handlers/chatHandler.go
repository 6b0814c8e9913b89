package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/akolanti/ProductChat/internal/api"
	"github.com/akolanti/ProductChat/internal/domain/chatModel"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
	"github.com/akolanti/ProductChat/internal/metrics"
	"github.com/akolanti/ProductChat/internal/rag/vectorDB"
)

const (
	statusSearching = "Searching documentation..."
	statusReading   = "Reading documentation..."
	statusThinking  = "Thinking..."

	answerUnavailable = "Sorry, I ran into a problem generating an answer. Please try again."
)

// ChatHandler godoc
// @Summary      Stream a chat answer
// @Description  Runs retrieval over the product's documentation and streams the generated answer as server-sent events. The stream always terminates with a done frame; failures degrade to an answer without context or to an apology frame.
// @Tags         Chat
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body  api.ChatRequest  true  "Product ID and full conversation history"
// @Success      200  {string}  string  "SSE stream of status, search, content, sources and done frames"
// @Failure      400  {object}  api.ErrorResponse
// @Router       /chat [post]
func ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}

	var requestData api.ChatRequest
	if !decodeBody(w, r, &requestData) {
		return
	}

	userMessage, hasUserMessage := lastUserMessage(requestData.Messages)

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteErrorResponse(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	project, projectFound := resolveProject(r, requestData.ProductId)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	stream := &sseStream{w: w, flusher: flusher}

	start := time.Now()
	outcome := "ok"
	defer func() { metrics.CaptureChatRequestMetrics(outcome, time.Since(start)) }()

	if hasUserMessage {
		pushChatEvent(r, project, requestData.ProductId, commonModels.EventMessageSent, userMessage)
	}

	// Retrieval. Every stage is allowed to fail without killing the stream -
	// the worst case is answering without documentation context. With no user
	// message in the history there is nothing to search for, so retrieval is
	// skipped entirely and the model answers from the raw conversation.
	ctx := r.Context()
	retrieval := vectorDBRetrieval{}
	if projectFound && hasUserMessage {
		stream.writeFrame(chatModel.StreamFrame{Type: chatModel.FrameStatus, Message: statusSearching})

		terms := handlerInstance.rag.ExtractSearchTerms(ctx, project, userMessage)
		if len(terms) > 0 {
			stream.writeFrame(chatModel.StreamFrame{Type: chatModel.FrameSearch, SearchTerms: terms})
			pushChatEvent(r, project, requestData.ProductId, commonModels.EventSearch, terms)

			stream.writeFrame(chatModel.StreamFrame{Type: chatModel.FrameStatus, Message: statusReading})
			fetched, err := handlerInstance.rag.FetchContext(ctx, project.Id, terms)
			if err != nil {
				logRH.Warn("Retrieval degraded, answering without context", "error", err)
			} else {
				retrieval.contextBlock = fetched.ContextBlock
				retrieval.sources = fetched.Sources
				retrieval.queryVector = fetched.QueryVector
				retrieval.cached = fetched.Cached
			}
		}
	}

	if retrieval.cached != nil {
		stream.writeFrame(chatModel.StreamFrame{Type: chatModel.FrameContent, Content: retrieval.cached.Answer})
		stream.writeFrame(chatModel.SourcesFrame{Type: chatModel.FrameSources, Sources: emptyIfNil(retrieval.cached.Sources)})
		stream.writeFrame(chatModel.StreamFrame{Type: chatModel.FrameDone})
		pushChatEvent(r, project, requestData.ProductId, commonModels.EventMessageReceived, retrieval.cached.Answer)
		return
	}

	stream.writeFrame(chatModel.StreamFrame{Type: chatModel.FrameStatus, Message: statusThinking})

	var fullAnswer []byte
	streamFailed := false
	for fragment, err := range handlerInstance.rag.StreamAnswer(ctx, retrieval.contextBlock, requestData.Messages) {
		if err != nil {
			logRH.Error("Generation stream failed", "error", err)
			streamFailed = true
			break
		}
		if fragment == "" {
			continue
		}
		fullAnswer = append(fullAnswer, fragment...)
		if !stream.writeFrame(chatModel.StreamFrame{Type: chatModel.FrameContent, Content: fragment}) {
			//client went away, nothing left to deliver
			outcome = "disconnected"
			pushChatEvent(r, project, requestData.ProductId, commonModels.EventClose, nil)
			return
		}
	}

	// A broken generation still ends the stream in done: the error is
	// surfaced as content, never as a dropped connection.
	if streamFailed {
		outcome = "error"
		stream.writeFrame(chatModel.StreamFrame{Type: chatModel.FrameContent, Content: answerUnavailable})
		stream.writeFrame(chatModel.SourcesFrame{Type: chatModel.FrameSources, Sources: []commonModels.Source{}})
		stream.writeFrame(chatModel.StreamFrame{Type: chatModel.FrameDone})
		pushChatEvent(r, project, requestData.ProductId, commonModels.EventError, "generation failed")
		return
	}

	stream.writeFrame(chatModel.SourcesFrame{Type: chatModel.FrameSources, Sources: emptyIfNil(retrieval.sources)})
	stream.writeFrame(chatModel.StreamFrame{Type: chatModel.FrameDone})
	pushChatEvent(r, project, requestData.ProductId, commonModels.EventMessageReceived, string(fullAnswer))

	if projectFound {
		handlerInstance.rag.CacheAnswer(ctx, project.Id, retrieval.queryVector, vectorDB.CachedAnswer{
			Answer:  string(fullAnswer),
			Sources: retrieval.sources,
		})
	}
}

type vectorDBRetrieval struct {
	contextBlock string
	sources      []commonModels.Source
	queryVector  []float32
	cached       *vectorDB.CachedAnswer
}

type sseStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// writeFrame serializes one frame as a `data:` line and flushes it out.
// Returns false once the client connection is gone.
func (s *sseStream) writeFrame(frame any) bool {
	payload, err := json.Marshal(frame)
	if err != nil {
		logRH.Error("Error marshalling stream frame", "error", err)
		return true
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return false
	}
	s.flusher.Flush()
	return true
}

func lastUserMessage(messages []chatModel.ChatMessage) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == string(chatModel.RoleUser) && messages[i].Content != "" {
			return messages[i].Content, true
		}
	}
	return "", false
}

// resolveProject accepts either a project id or a slug - the widget embeds
// whichever it was configured with.
func resolveProject(r *http.Request, productId string) (commonModels.Project, bool) {
	if productId == "" {
		return commonModels.Project{}, false
	}
	if p, found := handlerInstance.projects.GetProject(r.Context(), productId); found {
		return p, true
	}
	return handlerInstance.projects.GetProjectBySlug(r.Context(), productId)
}

// pushChatEvent records a widget lifecycle event. When the product lookup
// failed, the caller's raw product id is kept so the event stays attributable.
func pushChatEvent(r *http.Request, project commonModels.Project, rawProductId string, eventType string, payload any) {
	productId := project.Id
	if productId == "" {
		productId = rawProductId
	}
	handlerInstance.events.PushEvent(r.Context(), commonModels.ChatEvent{
		ProductId:   productId,
		ProductName: project.Name,
		Type:        eventType,
		Payload:     payload,
		Time:        time.Now().UTC().Format(time.RFC3339),
	})
}

func emptyIfNil(sources []commonModels.Source) []commonModels.Source {
	if sources == nil {
		return []commonModels.Source{}
	}
	return sources
}
