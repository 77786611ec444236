package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/scour/core"
	"github.com/poiesic/scour/storage"
)

// AnswerRepository implements storage.AnswerRepository for BadgerDB.
type AnswerRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.AnswerRepository = (*AnswerRepository)(nil)

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(backend *Backend) (*AnswerRepository, error) {
	idSeq, err := backend.GetSequence(answerIDSeq)
	if err != nil {
		return nil, err
	}

	return &AnswerRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *AnswerRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *AnswerRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddAnswers adds one or more answers to storage.
func (r *AnswerRepository) AddAnswers(ctx context.Context, answers ...*core.Answer) ([]*core.Answer, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, answer := range answers {
			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			answer.Id = core.ID(nextID)

			answer.InsertedAt = time.Now().UTC()
			answer.UpdatedAt = answer.InsertedAt

			// Store primary record
			key := makeAnswerKey(answer.Id)
			value := storage.MarshalAnswer(answer)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update per-task index. Sequence IDs grow monotonically, so the
			// index orders a task's answers by insertion.
			taskKey := makeAnswerTaskKey(core.TaskRecordID(answer.TaskID), answer.Id)
			if err := tx.Set(taskKey, storage.MarshalID(answer.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return answers, err
}

// GetAnswer retrieves a single answer by ID.
func (r *AnswerRepository) GetAnswer(ctx context.Context, id core.ID) (*core.Answer, error) {
	var result *core.Answer
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeAnswerKey(id)
		var err error
		result, err = readAnswer(tx, key)
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

// GetAnswersByTaskID retrieves the answers recorded for an external task ID,
// oldest first.
func (r *AnswerRepository) GetAnswersByTaskID(ctx context.Context, taskID string) ([]*core.Answer, error) {
	var results []*core.Answer
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialAnswerTaskKey(core.TaskRecordID(taskID))
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Check if key still has our task prefix
			if !hasPrefix(key, startKey) {
				break
			}

			// Read the answer ID from the index
			var answerID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				answerID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full answer
			answerKey := makeAnswerKey(answerID)
			answer, err := readAnswer(tx, answerKey)
			if err != nil {
				return err
			}
			if answer != nil {
				results = append(results, answer)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetAllAnswers retrieves all answers from storage.
func (r *AnswerRepository) GetAllAnswers(ctx context.Context) ([]*core.Answer, error) {
	var results []*core.Answer
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(answerRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			// Stop if we've moved past answer keys
			if !hasPrefix(key, prefix) {
				break
			}

			// Read the answer
			var answer *core.Answer
			err := item.Value(func(val []byte) error {
				var err error
				answer, err = storage.UnmarshalAnswer(val)
				return err
			})
			if err != nil {
				return err
			}

			if answer != nil {
				results = append(results, answer)
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteAnswers removes answers by their IDs.
func (r *AnswerRepository) DeleteAnswers(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeAnswerKey(id)

			// Read answer to get metadata for index cleanup
			answer, err := readAnswer(tx, key)
			if err != nil {
				return err
			}
			if answer == nil {
				return storage.ErrNotFound
			}

			// Delete from per-task index
			taskKey := makeAnswerTaskKey(core.TaskRecordID(answer.TaskID), answer.Id)
			if err := tx.Delete(taskKey); err != nil {
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

// readAnswer reads an answer from the transaction.
func readAnswer(tx *badger.Txn, key []byte) (*core.Answer, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var answer *core.Answer
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		answer, unmarshalErr = storage.UnmarshalAnswer(val)
		return unmarshalErr
	})
	return answer, err
}
