package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akolanti/ProductChat/internal/api"
	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
)

// ListEventsHandler godoc
// @Summary      List chat events
// @Description  Returns recent widget events, newest first. Optionally filtered by product.
// @Tags         Events
// @Produce      json
// @Param        product_id  query    string  false  "Filter by product"
// @Param        limit       query    int     false  "Max events to return"
// @Success      200  {array}  commonModels.ChatEvent
// @Router       /events [get]
func ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	limit := config.EventListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	events := handlerInstance.events.ListEvents(r.Context(), r.URL.Query().Get("product_id"), limit)
	writeJsonResponse(w, http.StatusOK, events)
}

// PushEventHandler godoc
// @Summary      Record a widget event
// @Description  Accepts open/close and other lifecycle events straight from the embedded widget.
// @Tags         Events
// @Accept       json
// @Param        request  body  api.PushEventRequest  true  "Event"
// @Success      204  "Recorded"
// @Failure      400  {object}  api.ErrorResponse
// @Router       /events [post]
func PushEventHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	var requestData api.PushEventRequest
	if !decodeBody(w, r, &requestData) {
		return
	}
	if requestData.Type == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "type is required")
		return
	}

	productName := requestData.ProductName
	if productName == "" && requestData.ProductId != "" {
		if p, found := handlerInstance.projects.GetProject(r.Context(), requestData.ProductId); found {
			productName = p.Name
		}
	}

	handlerInstance.events.PushEvent(r.Context(), commonModels.ChatEvent{
		ProductId:   requestData.ProductId,
		ProductName: productName,
		Type:        requestData.Type,
		Payload:     requestData.Payload,
		Time:        time.Now().UTC().Format(time.RFC3339),
	})
	w.WriteHeader(http.StatusNoContent)
}
