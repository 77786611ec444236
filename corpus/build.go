package corpus

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/scour"
	"github.com/poiesic/scour/storage"
)

// Builder constructs ready-to-search sessions for stored tasks.
// Sessions for many tasks are built concurrently on a shared worker pool.
type Builder struct {
	taskRepository storage.TaskRepository
	pool           *ants.Pool
	cfg            *config
}

// NewBuilder creates a builder reading from the given repository.
func NewBuilder(taskRepository storage.TaskRepository, opts ...Option) (*Builder, error) {
	if taskRepository == nil {
		return nil, ErrTaskRepositoryRequired
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(cfg.workers)
	if err != nil {
		return nil, err
	}

	return &Builder{taskRepository: taskRepository, pool: pool, cfg: cfg}, nil
}

// BuildResult holds the sessions built for a batch of tasks and the
// per-task errors for the tasks that failed.
type BuildResult struct {
	Sessions map[string]*scour.Session
	Failures map[string]error
}

// Build loads each task and indexes its context document into a session.
// Per-task failures are logged and collected in the result; they do not
// abort the batch.
func (b *Builder) Build(ctx context.Context, taskIDs ...string) (*BuildResult, error) {
	result := &BuildResult{
		Sessions: make(map[string]*scour.Session, len(taskIDs)),
		Failures: make(map[string]error),
	}

	tracker := NewProgressTracker(b.cfg.progressTo, len(taskIDs), b.cfg.progressEvery)
	tracker.Start()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, taskID := range taskIDs {
		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			defer tracker.Increment(1)

			session, err := b.buildOne(ctx, taskID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				b.cfg.logger.Error("error building session", "taskId", taskID, "err", err)
				result.Failures[taskID] = err
				return
			}
			result.Sessions[taskID] = session
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()
	tracker.Finish()

	return result, nil
}

// BuildAll builds a session for every stored task.
func (b *Builder) BuildAll(ctx context.Context) (*BuildResult, error) {
	records, err := b.taskRepository.GetAllTaskRecords(ctx)
	if err != nil {
		return nil, err
	}

	taskIDs := make([]string, len(records))
	for i, record := range records {
		taskIDs[i] = record.TaskID
	}
	return b.Build(ctx, taskIDs...)
}

func (b *Builder) buildOne(ctx context.Context, taskID string) (*scour.Session, error) {
	record, err := b.taskRepository.GetTaskRecordByTaskID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("loading task %s: %w", taskID, err)
	}
	return scour.NewSession(record.Context, b.cfg.sessionOpts...)
}

// Release releases the worker pool.
// The builder should not be used after calling Release.
func (b *Builder) Release() {
	b.pool.Release()
}
