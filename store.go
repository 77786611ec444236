// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package scour

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/scour/core"
	"github.com/poiesic/scour/storage"
	"github.com/poiesic/scour/storage/badger"
)

// Store bundles the task and answer repositories over one BadgerDB backend.
type Store struct {
	backend    *badger.Backend
	taskRepo   storage.TaskRepository
	answerRepo storage.AnswerRepository
	logger     *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	inMemory bool
	logger   *slog.Logger
}

// WithInMemoryStore keeps all records in memory instead of on disk.
// The file path passed to NewStore is ignored.
func WithInMemoryStore() StoreOption {
	return func(o *storeOptions) {
		o.inMemory = true
	}
}

// WithStoreLogger sets the logger used for lifecycle messages.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(o *storeOptions) {
		o.logger = logger
	}
}

func NewStore(filePath string, opts ...StoreOption) (*Store, error) {
	// Apply options
	options := &storeOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create task repository
	taskRepo, err := badger.NewTaskRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create answer repository
	answerRepo, err := badger.NewAnswerRepository(backend)
	if err != nil {
		taskRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Store{
		backend:    backend,
		taskRepo:   taskRepo,
		answerRepo: answerRepo,
		logger:     options.logger,
	}, nil
}

func (s *Store) Close() error {
	// Close repositories
	if err := s.answerRepo.Close(); err != nil {
		s.logger.Error("error closing answer repository", "err", err)
		return err
	}
	if err := s.taskRepo.Close(); err != nil {
		s.logger.Error("error closing task repository", "err", err)
		return err
	}

	// Close backend
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Store) TaskRepository() storage.TaskRepository {
	return s.taskRepo
}

func (s *Store) AnswerRepository() storage.AnswerRepository {
	return s.answerRepo
}

// OpenTaskSession loads a stored task by its external ID and builds a search
// session over the task's context document.
func (s *Store) OpenTaskSession(ctx context.Context, taskID string, opts ...Option) (*Session, *core.TaskRecord, error) {
	record, err := s.taskRepo.GetTaskRecordByTaskID(ctx, taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading task %s: %w", taskID, err)
	}

	session, err := NewSession(record.Context, opts...)
	if err != nil {
		return nil, nil, err
	}
	return session, record, nil
}
