package store

import (
	"context"
	"sync"

	"github.com/akolanti/ProductChat/internal/domain/commonModels"
)

type InMemoryDocumentStore struct {
	mutex     *sync.RWMutex
	documents map[string]commonModels.Document
}

func InitInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		mutex:     new(sync.RWMutex),
		documents: make(map[string]commonModels.Document),
	}
}

func (store *InMemoryDocumentStore) ListDocuments(ctx context.Context, projectId string) ([]commonModels.Document, error) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	var out []commonModels.Document
	for _, d := range store.documents {
		if d.ProjectId == projectId {
			out = append(out, d)
		}
	}
	return out, nil
}

func (store *InMemoryDocumentStore) SaveDocument(ctx context.Context, doc commonModels.Document) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.documents[doc.Id] = doc
	return nil
}

func (store *InMemoryDocumentStore) GetDocument(ctx context.Context, id string) (commonModels.Document, bool) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	d, found := store.documents[id]
	return d, found
}

func (store *InMemoryDocumentStore) DeleteDocument(ctx context.Context, id string) bool {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	_, found := store.documents[id]
	delete(store.documents, id)
	return found
}
