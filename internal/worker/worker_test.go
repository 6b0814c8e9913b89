package worker

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/ProductChat/internal/config"
	"github.com/akolanti/ProductChat/internal/domain/chatModel"
	"github.com/akolanti/ProductChat/internal/domain/commonModels"
	"github.com/akolanti/ProductChat/internal/domain/jobModel"
	"github.com/akolanti/ProductChat/internal/job"
	"github.com/akolanti/ProductChat/internal/rag"
	"github.com/akolanti/ProductChat/internal/rag/vectorDB"
	"github.com/akolanti/ProductChat/pkg/logger_i"
)

// MockRagService tracks how many jobs reached the pipeline.
type MockRagService struct {
	IngestedCount  int32
	ReindexedCount int32
}

var _ rag.Service = (*MockRagService)(nil)

func (m *MockRagService) ExtractSearchTerms(ctx context.Context, project commonModels.Project, userMessage string) []string {
	return nil
}
func (m *MockRagService) FetchContext(ctx context.Context, projectId string, searchTerms []string) (rag.RetrievalContext, error) {
	return rag.RetrievalContext{}, nil
}
func (m *MockRagService) StreamAnswer(ctx context.Context, contextBlock string, messages []chatModel.ChatMessage) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {}
}
func (m *MockRagService) CacheAnswer(ctx context.Context, productId string, queryVector []float32, answer vectorDB.CachedAnswer) {
}
func (m *MockRagService) IngestDocument(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.IngestedCount, 1)
	j.Status = jobModel.JobStatusComplete
	return j
}
func (m *MockRagService) ReindexDocument(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.ReindexedCount, 1)
	j.Status = jobModel.JobStatusComplete
	return j
}
func (m *MockRagService) RemoveDocumentIndex(ctx context.Context, documentId string) error {
	return nil
}
func (m *MockRagService) SummarizeProject(ctx context.Context, projectId string) (string, error) {
	return "", nil
}

type MockJobStore struct {
	mu   sync.Mutex
	jobs map[string]jobModel.Job
}

func NewMockJobStore() *MockJobStore {
	return &MockJobStore{jobs: make(map[string]jobModel.Job)}
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobId]
	return j, ok
}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.Id] = j
	return nil
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.jobs, jobID)
}

func TestWorkerPool_Flow(t *testing.T) {
	jobStore := NewMockJobStore()
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          jobStore,
	}
	mockRag := &MockRagService{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockRag)
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		jobSvc.DispatcherChannel <- true

		// Give it a moment to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker runs an ingest job", func(t *testing.T) {
		jobSvc.JobChannel <- jobModel.Job{Id: "ingest-1", JobType: jobModel.JobTypeIngest}

		time.Sleep(50 * time.Millisecond)

		if processed := atomic.LoadInt32(&mockRag.IngestedCount); processed != 1 {
			t.Errorf("Expected 1 ingest processed, got %d", processed)
		}
		if saved, ok := jobStore.GetJob(context.Background(), "ingest-1"); !ok || saved.Status != jobModel.JobStatusComplete {
			t.Errorf("Final job state not persisted: %+v", saved)
		}
	})

	t.Run("Worker runs a reindex job", func(t *testing.T) {
		jobSvc.JobChannel <- jobModel.Job{Id: "reindex-1", JobType: jobModel.JobTypeReindex}

		time.Sleep(50 * time.Millisecond)

		if processed := atomic.LoadInt32(&mockRag.ReindexedCount); processed != 1 {
			t.Errorf("Expected 1 reindex processed, got %d", processed)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		close(stopChan)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("idle timeout test waits out the full idle window")
	}

	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 2) // retire path requires more than one
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
		JobStore:   NewMockJobStore(),
	}
	InitServices(jobSvc, &MockRagService{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Spawn 1 worker manually
	createWorker()
	time.Sleep(config.IdleWorkerTimeout)

	time.Sleep(100 * time.Millisecond)
	count := atomic.LoadInt64(&currentWorkerCount)
	if count != 0 {
		t.Errorf("Worker should have timed out and retired, but count is %d", count)
	}
}
