package redisStore

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

// One Store per redis logical DB. The project, event and job stores live in
// separate DBs (config.RedisProjectStore and friends) so a FLUSHDB on one
// cannot eat another's keys.
var (
	instances = make(map[int]*Store)
	mu        sync.RWMutex
	logger    *logger_i.Logger
	once      sync.Once
)

type Store struct {
	client *redis.Client
	DB     int
}

func GetRedisStore(ctx context.Context, db int) *Store {

	mu.RLock()
	instance, exists := instances[db]
	mu.RUnlock()

	if exists {
		return instance
	}

	mu.Lock()
	defer mu.Unlock()

	if instance, exists = instances[db]; exists {
		return instance
	}
	return createNewStore(ctx, db)

}

func initLogger() {
	if logger == nil {
		logger = logger_i.NewLogger("RedisStore")
	}
}

func closeRedisStores(ctx context.Context) {
	<-ctx.Done()
	logger.Info("Closing Redis stores")
	mu.Lock()
	defer mu.Unlock()
	for _, store := range instances {
		if err := store.client.Close(); err != nil {
			logger.Error("Error closing redis client", "db", store.DB, "error", err)
		}
	}
	logger.Info("Redis stores closed")
}

func createNewStore(ctx context.Context, db int) *Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = config.RedisAddr
	}
	newClient := redis.NewClient(&redis.Options{
		Addr:                  addr,
		Password:              config.RedisPassword,
		DB:                    db,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	initLogger()

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline", "db", strconv.Itoa(db), "error", err.Error())
		return nil
	}

	logger.Info("Redis store ready", "db", db)

	newStore := &Store{
		client: newClient,
		DB:     db,
	}

	instances[db] = newStore
	once.Do(func() {
		go closeRedisStores(ctx)
	})
	return newStore

}

// NewTestStore wraps a caller-owned client, typically miniredis.
func NewTestStore(client *redis.Client) *Store {
	return &Store{client: client}
}
