package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/poiesic/scour/core"
	"github.com/poiesic/scour/storage"
)

// taskFile is the on-disk JSON shape of one benchmark task.
type taskFile struct {
	ID         string   `json:"_id"`
	Domain     string   `json:"domain"`
	SubDomain  string   `json:"sub_domain"`
	Difficulty string   `json:"difficulty"`
	Length     string   `json:"length"`
	Question   string   `json:"question"`
	Context    string   `json:"context"`
	Choices    []string `json:"choices"`
}

// Importer loads task JSON files from a directory into a task repository.
type Importer struct {
	taskRepository storage.TaskRepository
	cfg            *config
}

// NewImporter creates an importer writing to the given repository.
func NewImporter(taskRepository storage.TaskRepository, opts ...Option) (*Importer, error) {
	if taskRepository == nil {
		return nil, ErrTaskRepositoryRequired
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return &Importer{taskRepository: taskRepository, cfg: cfg}, nil
}

// ImportStats summarizes one import run.
type ImportStats struct {
	Imported int // Files parsed and stored
	Skipped  int // Files that could not be parsed
}

// Import parses every .json file in dir as a task and stores it. Files are
// processed concurrently with a bounded worker group. Unparseable files are
// logged and skipped; storage failures abort the import.
func (imp *Importer) Import(ctx context.Context, dir string) (*ImportStats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading task directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	tracker := NewProgressTracker(imp.cfg.progressTo, len(files), imp.cfg.progressEvery)
	tracker.Start()

	var imported, skipped atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(imp.cfg.workers)
	for _, path := range files {
		g.Go(func() error {
			defer tracker.Increment(1)

			record, err := readTaskFile(path)
			if err != nil {
				imp.cfg.logger.Warn("skipping task file", "path", path, "err", err)
				skipped.Add(1)
				return nil
			}

			if _, err := imp.taskRepository.AddTaskRecords(ctx, record); err != nil {
				return fmt.Errorf("storing task %s: %w", record.TaskID, err)
			}
			imported.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	tracker.Finish()

	return &ImportStats{
		Imported: int(imported.Load()),
		Skipped:  int(skipped.Load()),
	}, nil
}

// readTaskFile parses one task JSON file into a record ready for storage.
func readTaskFile(path string) (*core.TaskRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tf taskFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if tf.ID == "" {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrMissingTaskID)
	}

	return &core.TaskRecord{
		TaskID:     tf.ID,
		Domain:     tf.Domain,
		SubDomain:  tf.SubDomain,
		Difficulty: tf.Difficulty,
		Length:     tf.Length,
		Question:   tf.Question,
		Context:    tf.Context,
		Choices:    tf.Choices,
	}, nil
}
