package store

import (
	"context"
	"sync"

	"github.com/akolanti/ProductChat/internal/domain/jobModel"
)

// InMemoryJobStore is the fallback when redis is offline. Job status survives
// only as long as the process; acceptable since the jobs themselves do too.
type InMemoryJobStore struct {
	mutex  *sync.RWMutex
	jobMap map[string]jobModel.Job
}

func InitInMemoryJobStore() *InMemoryJobStore {
	return &InMemoryJobStore{
		mutex:  new(sync.RWMutex),
		jobMap: make(map[string]jobModel.Job),
	}
}

func (store *InMemoryJobStore) SaveJob(ctx context.Context, job jobModel.Job) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.jobMap[job.Id] = job
	return nil
}

func (store *InMemoryJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	result, found := store.jobMap[jobId]
	return result, found
}

func (store *InMemoryJobStore) DeleteJob(ctx context.Context, jobId string) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	delete(store.jobMap, jobId)
}
