package store

import (
	"context"
	"sync"

	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
)

// InMemoryEventStore mirrors the redis event log: newest first, capped,
// filtered by product on read.
type InMemoryEventStore struct {
	mutex  *sync.RWMutex
	events []commonModels.ChatEvent
}

func InitInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		mutex: new(sync.RWMutex),
	}
}

func (store *InMemoryEventStore) PushEvent(ctx context.Context, event commonModels.ChatEvent) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.events = append([]commonModels.ChatEvent{event}, store.events...)
	if len(store.events) > config.MaxStoredEvents {
		store.events = store.events[:config.MaxStoredEvents]
	}
}

func (store *InMemoryEventStore) ListEvents(ctx context.Context, productId string, limit int) []commonModels.ChatEvent {
	if limit <= 0 || limit > config.EventListLimit {
		limit = config.EventListLimit
	}

	store.mutex.RLock()
	defer store.mutex.RUnlock()
	out := make([]commonModels.ChatEvent, 0, limit)
	for _, event := range store.events {
		if productId != "" && event.ProductId != productId {
			continue
		}
		out = append(out, event)
		if len(out) == limit {
			break
		}
	}
	return out
}
