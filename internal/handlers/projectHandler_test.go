package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akolanti/ProductChat/internal/api"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
)

func doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)
	return rec
}

func TestProjectLifecycle(t *testing.T) {
	setupHandlers(t)

	var created api.ProjectResponse
	t.Run("create", func(t *testing.T) {
		rec := doJSON(t, http.MethodPost, "/projects", api.CreateProjectRequest{Name: "Acme Widgets", Description: "widget maker"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatal(err)
		}
		if created.Slug != "acme-widgets" {
			t.Errorf("slug: %q", created.Slug)
		}
		if created.Id == "" {
			t.Error("id must be assigned")
		}
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		rec := doJSON(t, http.MethodPost, "/projects", api.CreateProjectRequest{Name: "Acme  Widgets!"})
		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("get by slug", func(t *testing.T) {
		rec := doJSON(t, http.MethodGet, "/projects/acme-widgets", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var got api.ProjectResponse
		json.Unmarshal(rec.Body.Bytes(), &got)
		if got.Id != created.Id {
			t.Errorf("slug lookup mismatch: %+v", got)
		}
	})

	t.Run("update description", func(t *testing.T) {
		rec := doJSON(t, http.MethodPatch, "/projects/"+created.Id, api.UpdateProjectRequest{Description: "new words"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var got api.ProjectResponse
		json.Unmarshal(rec.Body.Bytes(), &got)
		if got.Description != "new words" {
			t.Errorf("description not updated: %+v", got)
		}
	})

	t.Run("cascade delete", func(t *testing.T) {
		doc := commonModels.Document{Id: "cascade-doc", ProjectId: created.Id, Name: "Doc", CreatedAt: time.Now().UTC()}
		if err := testDocs.SaveDocument(context.Background(), doc); err != nil {
			t.Fatal(err)
		}

		rec := doJSON(t, http.MethodDelete, "/projects/"+created.Id, nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if _, found := testProjects.GetProject(context.Background(), created.Id); found {
			t.Error("project survived delete")
		}
		if _, found := testDocs.GetDocument(context.Background(), "cascade-doc"); found {
			t.Error("document survived cascade delete")
		}
		if len(testRag.RemovedIndexes) == 0 || testRag.RemovedIndexes[0] != "cascade-doc" {
			t.Errorf("vector index not dropped: %v", testRag.RemovedIndexes)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		rec := doJSON(t, http.MethodPost, "/projects", api.CreateProjectRequest{Name: "   "})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGenerateDescription(t *testing.T) {
	setupHandlers(t)
	p := seedProject(t, "gen-p1", "Summarize Me", "summarize-me")

	t.Run("no documentation", func(t *testing.T) {
		rec := doJSON(t, http.MethodPost, "/projects/"+p.Id+"/generate-description", nil)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("summary saved on the project", func(t *testing.T) {
		testRag.OnSummarize = func(ctx context.Context, projectId string) (string, error) {
			return "A product that summarizes itself.", nil
		}
		rec := doJSON(t, http.MethodPost, "/projects/"+p.Id+"/generate-description", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var got api.GeneratedDescriptionResponse
		json.Unmarshal(rec.Body.Bytes(), &got)
		if got.Description != "A product that summarizes itself." {
			t.Errorf("body: %+v", got)
		}
		saved, _ := testProjects.GetProject(context.Background(), p.Id)
		if saved.Description != got.Description {
			t.Errorf("description not persisted: %+v", saved)
		}
	})
}

func TestDocumentContentEndpoints(t *testing.T) {
	setupHandlers(t)
	seedProject(t, "doc-p1", "Docs Inc", "docs-inc")
	doc := commonModels.Document{
		Id: "doc-1", ProjectId: "doc-p1", Name: "Guide", FileName: "guide.txt",
		Content: "original text", CreatedAt: time.Now().UTC(),
	}
	if err := testDocs.SaveDocument(context.Background(), doc); err != nil {
		t.Fatal(err)
	}

	t.Run("get content", func(t *testing.T) {
		rec := doJSON(t, http.MethodGet, "/documents/doc-1/content", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var got api.DocumentContentResponse
		json.Unmarshal(rec.Body.Bytes(), &got)
		if got.Content != "original text" || got.Name != "Guide" {
			t.Errorf("body: %+v", got)
		}
	})

	t.Run("update content queues reindex", func(t *testing.T) {
		rec := doJSON(t, http.MethodPut, "/documents/doc-1/content", api.UpdateDocumentContentRequest{Content: "edited text"})
		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
		}
		var initResp api.InitJobResponse
		json.Unmarshal(rec.Body.Bytes(), &initResp)
		if initResp.Id == "" {
			t.Fatal("expected a job id")
		}

		saved, _ := testDocs.GetDocument(context.Background(), "doc-1")
		if saved.Content != "edited text" {
			t.Errorf("content not saved: %q", saved.Content)
		}

		queued := <-testJobs.JobChannel
		if queued.JobType != "Reindex" || queued.JobPayload.DocumentId != "doc-1" {
			t.Errorf("queued job wrong: %+v", queued)
		}

		statusRec := doJSON(t, http.MethodGet, "/jobs/"+initResp.Id, nil)
		if statusRec.Code != http.StatusOK {
			t.Errorf("job status lookup failed: %d", statusRec.Code)
		}
	})

	t.Run("empty content rejected", func(t *testing.T) {
		rec := doJSON(t, http.MethodPut, "/documents/doc-1/content", api.UpdateDocumentContentRequest{Content: "  "})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("delete document drops index", func(t *testing.T) {
		rec := doJSON(t, http.MethodDelete, "/documents/doc-1", nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		found := false
		for _, id := range testRag.RemovedIndexes {
			if id == "doc-1" {
				found = true
			}
		}
		if !found {
			t.Errorf("vector index not dropped: %v", testRag.RemovedIndexes)
		}
	})

	t.Run("missing document 404s", func(t *testing.T) {
		rec := doJSON(t, http.MethodGet, "/documents/ghost/content", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestEventEndpoints(t *testing.T) {
	setupHandlers(t)
	seedProject(t, "ev-p1", "Eventful", "eventful")

	rec := doJSON(t, http.MethodPost, "/events", api.PushEventRequest{
		ProductId: "ev-p1",
		Type:      commonModels.EventOpen,
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, http.MethodPost, "/events", api.PushEventRequest{ProductId: "ev-p1"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing type should 400, got %d", rec.Code)
	}

	listRec := doJSON(t, http.MethodGet, "/events?product_id=ev-p1", nil)
	if listRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", listRec.Code)
	}
	var events []commonModels.ChatEvent
	json.Unmarshal(listRec.Body.Bytes(), &events)
	if len(events) == 0 || events[0].Type != commonModels.EventOpen {
		t.Errorf("events: %+v", events)
	}
	if events[0].ProductName != "Eventful" {
		t.Errorf("product name should be resolved: %+v", events[0])
	}
	if _, err := time.Parse(time.RFC3339, events[0].Time); err != nil {
		t.Errorf("event time not RFC3339: %q", events[0].Time)
	}
}
