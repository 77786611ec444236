package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/scour/core"
	"github.com/poiesic/scour/storage"
)

// TaskRepository implements storage.TaskRepository for BadgerDB.
type TaskRepository struct {
	backend *Backend
}

var _ storage.TaskRepository = (*TaskRepository)(nil)

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(backend *Backend) (*TaskRepository, error) {
	return &TaskRepository{
		backend: backend,
	}, nil
}

// Close releases resources. TaskRepository has no resources to release.
func (r *TaskRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *TaskRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddTaskRecords adds one or more task records to storage.
func (r *TaskRepository) AddTaskRecords(ctx context.Context, records ...*core.TaskRecord) ([]*core.TaskRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			// Use content-based ID if not set
			if record.Id == 0 {
				record.Id = core.TaskRecordID(record.TaskID)
			}

			// Set timestamps
			record.InsertedAt = time.Now().UTC()
			record.UpdatedAt = record.InsertedAt

			// Store primary record
			key := makeTaskRecordKey(record.Id)
			value := storage.MarshalTaskRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Store domain index
			domainKey := makeTaskDomainKey(record.Domain, record.Id)
			if err := tx.Set(domainKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// UpdateTaskRecords updates existing task records.
func (r *TaskRepository) UpdateTaskRecords(ctx context.Context, records ...*core.TaskRecord) ([]*core.TaskRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeTaskRecordKey(record.Id)

			// Read old record to detect changes
			old, err := readTaskRecord(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update timestamp
			record.UpdatedAt = time.Now().UTC()

			// Store updated record
			value := storage.MarshalTaskRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update domain index if domain changed
			if old.Domain != record.Domain {
				oldDomainKey := makeTaskDomainKey(old.Domain, old.Id)
				if err := tx.Delete(oldDomainKey); err != nil {
					return err
				}
				newDomainKey := makeTaskDomainKey(record.Domain, record.Id)
				if err := tx.Set(newDomainKey, storage.MarshalID(record.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// DeleteTaskRecords removes task records by their IDs.
func (r *TaskRepository) DeleteTaskRecords(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTaskRecordKey(id)

			// Read record to get metadata for index cleanup
			record, err := readTaskRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			// Delete from domain index
			domainKey := makeTaskDomainKey(record.Domain, record.Id)
			if err := tx.Delete(domainKey); err != nil {
				return err
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetTaskRecord retrieves a single task record by ID.
func (r *TaskRepository) GetTaskRecord(ctx context.Context, id core.ID) (*core.TaskRecord, error) {
	var result *core.TaskRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTaskRecordKey(id)
		var err error
		result, err = readTaskRecord(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetTaskRecordByTaskID retrieves a task record by its external task ID.
func (r *TaskRepository) GetTaskRecordByTaskID(ctx context.Context, taskID string) (*core.TaskRecord, error) {
	return r.GetTaskRecord(ctx, core.TaskRecordID(taskID))
}

// GetTaskRecords retrieves multiple task records by their IDs.
func (r *TaskRepository) GetTaskRecords(ctx context.Context, ids ...core.ID) ([]*core.TaskRecord, error) {
	var result []*core.TaskRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTaskRecordKey(id)
			record, err := readTaskRecord(tx, key)
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetTaskRecordsByDomain retrieves task records tagged with a domain, ordered by ID.
func (r *TaskRepository) GetTaskRecordsByDomain(ctx context.Context, domain string) ([]*core.TaskRecord, error) {
	var results []*core.TaskRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialTaskDomainKey(domain)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Check if key still has our domain prefix
			if !hasPrefix(key, startKey) {
				break
			}

			// Read the record ID from the index
			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			recordKey := makeTaskRecordKey(recordID)
			record, err := readTaskRecord(tx, recordKey)
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetAllTaskRecords retrieves all task records from storage.
func (r *TaskRepository) GetAllTaskRecords(ctx context.Context) ([]*core.TaskRecord, error) {
	var results []*core.TaskRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(taskRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			// Stop if we've moved past task record keys
			if !hasPrefix(key, prefix) {
				break
			}

			// Read the record
			var record *core.TaskRecord
			err := item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalTaskRecord(val)
				return err
			})
			if err != nil {
				return err
			}

			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// Helper methods

// hasPrefix checks if a byte slice has a given prefix
func hasPrefix(s, prefix []byte) bool {
	return len(s) >= len(prefix) && string(s[:len(prefix)]) == string(prefix)
}

// readTaskRecord reads a task record from the transaction.
func readTaskRecord(tx *badger.Txn, key []byte) (*core.TaskRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.TaskRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalTaskRecord(val)
		return unmarshalErr
	})
	return record, err
}
