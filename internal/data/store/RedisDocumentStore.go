package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/data/redisStore"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
	"github.com/akolanti/ProductChat/pkg/logger_i"
)

const (
	documentKeyPrefix = "document:"
	projectDocsPrefix = "project-docs:"
)

// RedisDocumentStore shares the project DB. Each document is one JSON value,
// with a per-project set carrying the ids for listing.
type RedisDocumentStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisDocumentStore(ctx context.Context) *RedisDocumentStore {
	redis := redisStore.GetRedisStore(ctx, config.RedisProjectStore)
	if redis == nil {
		return nil
	}
	return &RedisDocumentStore{
		store:  redis,
		logger: logger_i.NewLogger("DocumentStore"),
	}
}

func (s *RedisDocumentStore) ListDocuments(ctx context.Context, projectId string) ([]commonModels.Document, error) {
	ids, err := s.store.SetMembers(ctx, projectDocsPrefix+projectId)
	if err != nil {
		return nil, err
	}

	docs := make([]commonModels.Document, 0, len(ids))
	for _, id := range ids {
		if d, ok := s.GetDocument(ctx, id); ok {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

func (s *RedisDocumentStore) SaveDocument(ctx context.Context, doc commonModels.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, documentKeyPrefix+doc.Id, data, 0); err != nil {
		return err
	}
	return s.store.SetAdd(ctx, projectDocsPrefix+doc.ProjectId, doc.Id)
}

func (s *RedisDocumentStore) GetDocument(ctx context.Context, id string) (commonModels.Document, bool) {
	var doc commonModels.Document
	val, err := s.store.Get(ctx, documentKeyPrefix+id)
	if err != nil {
		return doc, false
	}
	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		s.logger.Error("Corrupt document record", "id", id, "error", err)
		return doc, false
	}
	return doc, true
}

func (s *RedisDocumentStore) DeleteDocument(ctx context.Context, id string) bool {
	doc, ok := s.GetDocument(ctx, id)
	if !ok {
		return false
	}

	if err := s.store.Del(ctx, documentKeyPrefix+id); err != nil {
		s.logger.Error("Error deleting document", "id", id, "error", err)
		return false
	}
	if err := s.store.SetRemove(ctx, projectDocsPrefix+doc.ProjectId, id); err != nil {
		s.logger.Error("Error removing document from project index", "id", id, "error", err)
	}
	return true
}

func TestDocumentStore(store *redisStore.Store) *RedisDocumentStore {
	return &RedisDocumentStore{
		store:  store,
		logger: logger_i.NewLogger("test document store"),
	}
}
