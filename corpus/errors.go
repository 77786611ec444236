package corpus

import "errors"

var (
	// ErrTaskRepositoryRequired is returned when a task repository is not provided.
	ErrTaskRepositoryRequired = errors.New("task repository required")

	// ErrMissingTaskID is returned when a task file has no _id field.
	ErrMissingTaskID = errors.New("task file missing _id")
)
