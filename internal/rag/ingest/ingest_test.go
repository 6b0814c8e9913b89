package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/akolanti/ProductChat/internal/domain/commonModels"
	"github.com/akolanti/ProductChat/internal/domain/jobModel"
	"github.com/akolanti/ProductChat/internal/rag/vectorDB"
	"github.com/akolanti/ProductChat/pkg/logger_i"
)

func init() {
	logger = logger_i.NewLogger("Ingest Test ")
}

// --- Mocks ---

type mockEmbedder struct {
	batchFunc func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := m.batchFunc(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return m.batchFunc(ctx, texts)
}

type mockVectorDB struct {
	upsertFunc func(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error
	deleteFunc func(ctx context.Context, documentId string) error
}

func (m *mockVectorDB) Search(ctx context.Context, projectId string, v []float32, k int) ([]commonModels.SearchResult, error) {
	return nil, nil
}
func (m *mockVectorDB) GetCachedAnswer(ctx context.Context, productId string, v []float32) (vectorDB.CachedAnswer, bool, error) {
	return vectorDB.CachedAnswer{}, false, nil
}
func (m *mockVectorDB) SaveToCache(ctx context.Context, productId, id string, v []float32, a vectorDB.CachedAnswer) error {
	return nil
}
func (m *mockVectorDB) UpsertChunks(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	return m.upsertFunc(ctx, chunks, vectors)
}
func (m *mockVectorDB) DeleteByDocument(ctx context.Context, documentId string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, documentId)
	}
	return nil
}

type mockDocStore struct {
	docs  map[string]commonModels.Document
	saved []commonModels.Document
}

func newMockDocStore() *mockDocStore {
	return &mockDocStore{docs: make(map[string]commonModels.Document)}
}
func (m *mockDocStore) ListDocuments(ctx context.Context, projectId string) ([]commonModels.Document, error) {
	var out []commonModels.Document
	for _, d := range m.docs {
		if d.ProjectId == projectId {
			out = append(out, d)
		}
	}
	return out, nil
}
func (m *mockDocStore) SaveDocument(ctx context.Context, doc commonModels.Document) error {
	m.docs[doc.Id] = doc
	m.saved = append(m.saved, doc)
	return nil
}
func (m *mockDocStore) GetDocument(ctx context.Context, id string) (commonModels.Document, bool) {
	d, ok := m.docs[id]
	return d, ok
}
func (m *mockDocStore) DeleteDocument(ctx context.Context, id string) bool {
	_, ok := m.docs[id]
	delete(m.docs, id)
	return ok
}

// --- Unit Tests ---

func TestExtractText_Plaintext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello from a file"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := ExtractText(path)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "hello from a file" {
		t.Errorf("got %q", text)
	}
}

func TestExtractText_Unsupported(t *testing.T) {
	if _, err := ExtractText("image.png"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestPrepareChunks(t *testing.T) {
	doc := commonModels.Document{Id: "doc-1", ProjectId: "proj-1", Name: "Guide"}
	chunks := prepareChunks(doc, "one two three")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	c := chunks[0]
	if c.DocumentId != "doc-1" || c.ProjectId != "proj-1" || c.DocumentName != "Guide" {
		t.Errorf("metadata mismatch: %+v", c)
	}
	if c.ChunkId == "" {
		t.Error("chunk id should be assigned")
	}
}

func TestBatchIngest_Batches(t *testing.T) {
	chunks := make([]commonModels.DocChunk, 150) //two batches, 100 + 50
	for i := range chunks {
		chunks[i] = commonModels.DocChunk{Content: "test content"}
	}

	upserts := 0
	vDB := &mockVectorDB{
		upsertFunc: func(ctx context.Context, c []commonModels.DocChunk, v [][]float32) error {
			upserts++
			if len(c) != len(v) {
				t.Errorf("chunk/vector count mismatch: %d vs %d", len(c), len(v))
			}
			return nil
		},
	}
	emb := &mockEmbedder{
		batchFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return make([][]float32, len(texts)), nil
		},
	}

	job := jobModel.Job{}
	if err := batchIngest(context.Background(), &job, chunks, vDB, emb); err != nil {
		t.Fatalf("batchIngest failed: %v", err)
	}
	if upserts != 2 {
		t.Errorf("expected 2 batches to be upserted, got %d", upserts)
	}
}

func TestBatchIngest_UpsertError(t *testing.T) {
	vDB := &mockVectorDB{
		upsertFunc: func(ctx context.Context, c []commonModels.DocChunk, v [][]float32) error {
			return errors.New("upsert failed")
		},
	}
	emb := &mockEmbedder{
		batchFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return make([][]float32, len(texts)), nil
		},
	}

	job := jobModel.Job{}
	err := batchIngest(context.Background(), &job, []commonModels.DocChunk{{Content: "hi"}}, vDB, emb)
	if err == nil {
		t.Error("expected error from batchIngest, got nil")
	}
}

func TestProcessDocumentIngestion_Plaintext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guide.txt")
	if err := os.WriteFile(path, []byte("alpha beta gamma"), 0o644); err != nil {
		t.Fatal(err)
	}

	var upserted []commonModels.DocChunk
	vDB := &mockVectorDB{
		upsertFunc: func(ctx context.Context, c []commonModels.DocChunk, v [][]float32) error {
			upserted = append(upserted, c...)
			return nil
		},
	}
	emb := &mockEmbedder{
		batchFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return make([][]float32, len(texts)), nil
		},
	}
	docs := newMockDocStore()

	job := jobModel.Job{
		Id:      "job-1",
		JobType: jobModel.JobTypeIngest,
		JobPayload: jobModel.JobPayload{
			ProjectId:      "proj-1",
			IngestFileName: "guide.txt",
			IngestURL:      path,
		},
	}

	done := ProcessDocumentIngestion(context.Background(), job, emb, vDB, docs)

	if done.Status != jobModel.JobStatusComplete {
		t.Fatalf("expected COMPLETE, got %s (%s)", done.Status, done.Error.Message)
	}
	if done.JobPayload.DocumentId == "" {
		t.Error("expected document id on the finished job")
	}
	if len(docs.saved) != 1 || docs.saved[0].Content != "alpha beta gamma" {
		t.Errorf("document not persisted correctly: %+v", docs.saved)
	}
	if len(upserted) == 0 {
		t.Error("expected chunks to be upserted")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("temp upload should be removed after ingestion")
	}
}

func TestProcessDocumentIngestion_ExtractFailure(t *testing.T) {
	vDB := &mockVectorDB{}
	emb := &mockEmbedder{}
	docs := newMockDocStore()

	job := jobModel.Job{
		JobPayload: jobModel.JobPayload{IngestFileName: "x.txt", IngestURL: "/nonexistent/x.txt"},
	}
	done := ProcessDocumentIngestion(context.Background(), job, emb, vDB, docs)

	if done.Status != jobModel.JobStatusError {
		t.Errorf("expected Error status, got %s", done.Status)
	}
	if len(docs.saved) != 0 {
		t.Error("nothing should be persisted when extraction fails")
	}
}

func TestProcessDocumentReindex_ReplacesChunks(t *testing.T) {
	docs := newMockDocStore()
	docs.docs["doc-1"] = commonModels.Document{
		Id: "doc-1", ProjectId: "proj-1", Name: "Guide", Content: "new content here",
	}

	deleted := ""
	var upserted []commonModels.DocChunk
	vDB := &mockVectorDB{
		deleteFunc: func(ctx context.Context, documentId string) error {
			deleted = documentId
			return nil
		},
		upsertFunc: func(ctx context.Context, c []commonModels.DocChunk, v [][]float32) error {
			if deleted == "" {
				t.Error("delete must happen before upsert")
			}
			upserted = append(upserted, c...)
			return nil
		},
	}
	emb := &mockEmbedder{
		batchFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return make([][]float32, len(texts)), nil
		},
	}

	job := jobModel.Job{
		JobType:    jobModel.JobTypeReindex,
		JobPayload: jobModel.JobPayload{ProjectId: "proj-1", DocumentId: "doc-1"},
	}
	done := ProcessDocumentReindex(context.Background(), job, emb, vDB, docs)

	if done.Status != jobModel.JobStatusComplete {
		t.Fatalf("expected COMPLETE, got %s (%s)", done.Status, done.Error.Message)
	}
	if deleted != "doc-1" {
		t.Errorf("expected chunks of doc-1 deleted, got %q", deleted)
	}
	if len(upserted) == 0 {
		t.Error("expected fresh chunks to be upserted")
	}
}

func TestProcessDocumentReindex_MissingDocument(t *testing.T) {
	done := ProcessDocumentReindex(context.Background(), jobModel.Job{
		JobPayload: jobModel.JobPayload{DocumentId: "ghost"},
	}, &mockEmbedder{}, &mockVectorDB{}, newMockDocStore())

	if done.Status != jobModel.JobStatusError {
		t.Errorf("expected Error status, got %s", done.Status)
	}
}
