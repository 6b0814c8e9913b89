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
	projectKeyPrefix = "project:"
	slugKeyPrefix    = "project-slug:"
	projectIndexKey  = "projects"
)

// RedisProjectStore keeps projects as JSON values with a set index for
// listing and a slug key for lookup by URL name.
type RedisProjectStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisProjectStore(ctx context.Context) *RedisProjectStore {
	redis := redisStore.GetRedisStore(ctx, config.RedisProjectStore)
	if redis == nil {
		return nil
	}
	return &RedisProjectStore{
		store:  redis,
		logger: logger_i.NewLogger("ProjectStore"),
	}
}

func (s *RedisProjectStore) ListProjects(ctx context.Context) ([]commonModels.Project, error) {
	ids, err := s.store.SetMembers(ctx, projectIndexKey)
	if err != nil {
		return nil, err
	}

	projects := make([]commonModels.Project, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.GetProject(ctx, id); ok {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (s *RedisProjectStore) SaveProject(ctx context.Context, project commonModels.Project) error {
	data, err := json.Marshal(project)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, projectKeyPrefix+project.Id, data, 0); err != nil {
		return err
	}
	if err := s.store.Set(ctx, slugKeyPrefix+project.Slug, project.Id, 0); err != nil {
		return err
	}
	return s.store.SetAdd(ctx, projectIndexKey, project.Id)
}

func (s *RedisProjectStore) GetProject(ctx context.Context, id string) (commonModels.Project, bool) {
	var project commonModels.Project
	val, err := s.store.Get(ctx, projectKeyPrefix+id)
	if err != nil {
		return project, false
	}
	if err := json.Unmarshal([]byte(val), &project); err != nil {
		s.logger.Error("Corrupt project record", "id", id, "error", err)
		return project, false
	}
	return project, true
}

func (s *RedisProjectStore) GetProjectBySlug(ctx context.Context, slug string) (commonModels.Project, bool) {
	id, err := s.store.Get(ctx, slugKeyPrefix+slug)
	if err != nil {
		return commonModels.Project{}, false
	}
	return s.GetProject(ctx, id)
}

func (s *RedisProjectStore) DeleteProject(ctx context.Context, id string) bool {
	project, ok := s.GetProject(ctx, id)
	if !ok {
		return false
	}

	if err := s.store.Del(ctx, projectKeyPrefix+id, slugKeyPrefix+project.Slug); err != nil {
		s.logger.Error("Error deleting project keys", "id", id, "error", err)
		return false
	}
	if err := s.store.SetRemove(ctx, projectIndexKey, id); err != nil {
		s.logger.Error("Error removing project from index", "id", id, "error", err)
	}
	return true
}

func TestProjectStore(store *redisStore.Store) *RedisProjectStore {
	return &RedisProjectStore{
		store:  store,
		logger: logger_i.NewLogger("test project store"),
	}
}
