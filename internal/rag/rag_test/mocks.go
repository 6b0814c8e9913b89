package rag_test

import (
	"context"
	"iter"

	"github.com/akolanti/ProductChat/internal/domain/chatModel"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
	"github.com/akolanti/ProductChat/internal/rag/vectorDB"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	OnSearch          func(ctx context.Context, projectId string, queryVector []float32, k int) ([]commonModels.SearchResult, error)
	OnUpsertChunks    func(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error
	OnDeleteByDoc     func(ctx context.Context, documentId string) error
	OnGetCachedAnswer func(ctx context.Context, productId string, queryVector []float32) (vectorDB.CachedAnswer, bool, error)
	OnSaveToCache     func(ctx context.Context, productId, id string, vector []float32, answer vectorDB.CachedAnswer) error
}

func (m *MockVectorDB) Search(ctx context.Context, projectId string, v []float32, k int) ([]commonModels.SearchResult, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, projectId, v, k)
	}
	return []commonModels.SearchResult{{Content: "default context", DocumentName: "Default Doc"}}, nil
}

func (m *MockVectorDB) UpsertChunks(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if m.OnUpsertChunks != nil {
		return m.OnUpsertChunks(ctx, chunks, vectors)
	}
	return nil
}

func (m *MockVectorDB) DeleteByDocument(ctx context.Context, documentId string) error {
	if m.OnDeleteByDoc != nil {
		return m.OnDeleteByDoc(ctx, documentId)
	}
	return nil
}

func (m *MockVectorDB) GetCachedAnswer(ctx context.Context, productId string, v []float32) (vectorDB.CachedAnswer, bool, error) {
	if m.OnGetCachedAnswer != nil {
		return m.OnGetCachedAnswer(ctx, productId, v)
	}
	return vectorDB.CachedAnswer{}, false, nil
}

func (m *MockVectorDB) SaveToCache(ctx context.Context, productId, id string, v []float32, a vectorDB.CachedAnswer) error {
	if m.OnSaveToCache != nil {
		return m.OnSaveToCache(ctx, productId, id, v, a)
	}
	return nil
}

// MockEmbedder implements embedding.Embedder
type MockEmbedder struct {
	OnEmbed      func(ctx context.Context, text string) ([]float32, error)
	OnEmbedBatch func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.OnEmbed != nil {
		return m.OnEmbed(ctx, text)
	}
	return []float32{0.1}, nil
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.OnEmbedBatch != nil {
		return m.OnEmbedBatch(ctx, texts)
	}
	return make([][]float32, len(texts)), nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate       func(ctx context.Context, systemInstruction, userPrompt string) (string, error)
	OnGenerateStream func(ctx context.Context, systemInstruction string, messages []chatModel.ChatMessage) iter.Seq2[string, error]
}

func (m *MockLLM) Generate(ctx context.Context, systemInstruction, userPrompt string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, systemInstruction, userPrompt)
	}
	return "mocked llm response", nil
}

func (m *MockLLM) GenerateStream(ctx context.Context, systemInstruction string, messages []chatModel.ChatMessage) iter.Seq2[string, error] {
	if m.OnGenerateStream != nil {
		return m.OnGenerateStream(ctx, systemInstruction, messages)
	}
	return func(yield func(string, error) bool) {
		yield("mocked ", nil)
		yield("stream", nil)
	}
}

// MockDocumentStore implements commonModels.DocumentStore
type MockDocumentStore struct {
	Docs map[string]commonModels.Document
}

func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{Docs: make(map[string]commonModels.Document)}
}

func (m *MockDocumentStore) ListDocuments(ctx context.Context, projectId string) ([]commonModels.Document, error) {
	var out []commonModels.Document
	for _, d := range m.Docs {
		if d.ProjectId == projectId {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MockDocumentStore) SaveDocument(ctx context.Context, doc commonModels.Document) error {
	m.Docs[doc.Id] = doc
	return nil
}

func (m *MockDocumentStore) GetDocument(ctx context.Context, id string) (commonModels.Document, bool) {
	d, ok := m.Docs[id]
	return d, ok
}

func (m *MockDocumentStore) DeleteDocument(ctx context.Context, id string) bool {
	_, ok := m.Docs[id]
	delete(m.Docs, id)
	return ok
}
