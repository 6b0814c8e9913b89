package store

import (
	"context"
	"sync"

	"github.com/akolanti/ProductChat/internal/domain/commonModels"
)

// InMemoryProjectStore is the fallback when redis is offline. Same contract,
// process lifetime only.
type InMemoryProjectStore struct {
	mutex    *sync.RWMutex
	projects map[string]commonModels.Project
	bySlug   map[string]string
}

func InitInMemoryProjectStore() *InMemoryProjectStore {
	return &InMemoryProjectStore{
		mutex:    new(sync.RWMutex),
		projects: make(map[string]commonModels.Project),
		bySlug:   make(map[string]string),
	}
}

func (store *InMemoryProjectStore) ListProjects(ctx context.Context) ([]commonModels.Project, error) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	out := make([]commonModels.Project, 0, len(store.projects))
	for _, p := range store.projects {
		out = append(out, p)
	}
	return out, nil
}

func (store *InMemoryProjectStore) SaveProject(ctx context.Context, project commonModels.Project) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.projects[project.Id] = project
	store.bySlug[project.Slug] = project.Id
	return nil
}

func (store *InMemoryProjectStore) GetProject(ctx context.Context, id string) (commonModels.Project, bool) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	p, found := store.projects[id]
	return p, found
}

func (store *InMemoryProjectStore) GetProjectBySlug(ctx context.Context, slug string) (commonModels.Project, bool) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	id, found := store.bySlug[slug]
	if !found {
		return commonModels.Project{}, false
	}
	p, found := store.projects[id]
	return p, found
}

func (store *InMemoryProjectStore) DeleteProject(ctx context.Context, id string) bool {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	p, found := store.projects[id]
	if !found {
		return false
	}
	delete(store.projects, id)
	delete(store.bySlug, p.Slug)
	return true
}
