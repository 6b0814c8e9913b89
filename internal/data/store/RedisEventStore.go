package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/data/redisStore"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
	"github.com/akolanti/ProductChat/pkg/logger_i"
)

const eventLogKey = "chat-events"

// RedisEventStore keeps one global event list, newest first, trimmed to the
// configured cap. Filtering by product happens on read.
type RedisEventStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisEventStore(ctx context.Context) *RedisEventStore {
	redis := redisStore.GetRedisStore(ctx, config.RedisEventStore)
	if redis == nil {
		return nil
	}
	return &RedisEventStore{
		store:  redis,
		logger: logger_i.NewLogger("EventStore"),
	}
}

// PushEvent is best effort. An analytics write never fails a chat request.
func (s *RedisEventStore) PushEvent(ctx context.Context, event commonModels.ChatEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Error marshalling event", "error", err)
		return
	}
	if err := s.store.ListPushFront(ctx, eventLogKey, data); err != nil {
		s.logger.Error("Error pushing event", "error", err)
		return
	}
	if err := s.store.ListTrim(ctx, eventLogKey, 0, config.MaxStoredEvents-1); err != nil {
		s.logger.Error("Error trimming event log", "error", err)
	}
}

func (s *RedisEventStore) ListEvents(ctx context.Context, productId string, limit int) []commonModels.ChatEvent {
	if limit <= 0 || limit > config.EventListLimit {
		limit = config.EventListLimit
	}

	raw, err := s.store.ListRange(ctx, eventLogKey, 0, config.MaxStoredEvents-1)
	if err != nil {
		s.logger.Error("Error reading event log", "error", err)
		return []commonModels.ChatEvent{}
	}

	events := make([]commonModels.ChatEvent, 0, limit)
	for _, entry := range raw {
		var event commonModels.ChatEvent
		if err := json.Unmarshal([]byte(entry), &event); err != nil {
			continue
		}
		if productId != "" && event.ProductId != productId {
			continue
		}
		events = append(events, event)
		if len(events) == limit {
			break
		}
	}
	return events
}

func TestEventStore(store *redisStore.Store) *RedisEventStore {
	return &RedisEventStore{
		store:  store,
		logger: logger_i.NewLogger("test event store"),
	}
}
