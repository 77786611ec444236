package storage

import (
	"context"

	"github.com/poiesic/scour/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// TaskRepository provides operations for managing stored tasks.
type TaskRepository interface {
	Repository
	// AddTaskRecords adds one or more task records to storage.
	// Records with ID=0 get the content-based ID of their external task ID,
	// so importing the same task twice overwrites instead of duplicating.
	// Sets InsertedAt and UpdatedAt timestamps.
	// Returns the records with IDs and timestamps populated.
	AddTaskRecords(ctx context.Context, records ...*core.TaskRecord) ([]*core.TaskRecord, error)

	// UpdateTaskRecords updates existing task records.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateTaskRecords(ctx context.Context, records ...*core.TaskRecord) ([]*core.TaskRecord, error)

	// DeleteTaskRecords removes task records by their IDs.
	// Also removes associated indices. Stored answers are not touched.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteTaskRecords(ctx context.Context, ids ...core.ID) error

	// GetTaskRecord retrieves a single task record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetTaskRecord(ctx context.Context, id core.ID) (*core.TaskRecord, error)

	// GetTaskRecordByTaskID retrieves a task record by its external task ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetTaskRecordByTaskID(ctx context.Context, taskID string) (*core.TaskRecord, error)

	// GetTaskRecords retrieves multiple task records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetTaskRecords(ctx context.Context, ids ...core.ID) ([]*core.TaskRecord, error)

	// GetTaskRecordsByDomain retrieves the task records tagged with a domain,
	// ordered by ID.
	GetTaskRecordsByDomain(ctx context.Context, domain string) ([]*core.TaskRecord, error)

	// GetAllTaskRecords retrieves every stored task record.
	GetAllTaskRecords(ctx context.Context) ([]*core.TaskRecord, error)
}

// AnswerRepository provides operations for managing recorded answers.
type AnswerRepository interface {
	Repository
	// AddAnswers adds one or more answers to storage.
	// Generates new sequential IDs and sets timestamps.
	// Returns the answers with generated IDs and timestamps populated.
	AddAnswers(ctx context.Context, answers ...*core.Answer) ([]*core.Answer, error)

	// GetAnswer retrieves a single answer by ID.
	// Returns ErrNotFound if the answer doesn't exist.
	GetAnswer(ctx context.Context, id core.ID) (*core.Answer, error)

	// GetAnswersByTaskID retrieves the answers recorded for an external task
	// ID, oldest first.
	GetAnswersByTaskID(ctx context.Context, taskID string) ([]*core.Answer, error)

	// GetAllAnswers retrieves every stored answer.
	GetAllAnswers(ctx context.Context) ([]*core.Answer, error)

	// DeleteAnswers removes answers by their IDs.
	// Returns ErrNotFound if any answer doesn't exist.
	DeleteAnswers(ctx context.Context, ids ...core.ID) error
}
