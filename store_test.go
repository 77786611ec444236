package scour

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/scour/core"
	"github.com/poiesic/scour/search"
	"github.com/poiesic/scour/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("create new store", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		store, err := NewStore(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, store)
		defer store.Close()

		// Verify components are initialized
		assert.NotNil(t, store.TaskRepository())
		assert.NotNil(t, store.AnswerRepository())
		assert.NotNil(t, store.backend)
		assert.NotNil(t, store.logger)
	})

	t.Run("in-memory store", func(t *testing.T) {
		store, err := NewStore("", WithInMemoryStore())
		require.NoError(t, err)
		require.NotNil(t, store)
		defer store.Close()

		assert.NotNil(t, store.TaskRepository())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a store at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		store, err := NewStore(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, store)
	})
}

func TestStore_Close(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStore(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	err = store.Close()
	assert.NoError(t, err)
}

func TestStore_OpenTaskSession(t *testing.T) {
	store, err := NewStore("", WithInMemoryStore())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	_, err = store.TaskRepository().AddTaskRecords(ctx, &core.TaskRecord{
		TaskID:   "task-001",
		Question: "Where does the fox jump?",
		Context:  foxDoc,
	})
	require.NoError(t, err)

	t.Run("builds a session over the stored document", func(t *testing.T) {
		session, record, err := store.OpenTaskSession(ctx, "task-001")
		require.NoError(t, err)
		require.NotNil(t, session)
		require.NotNil(t, record)

		assert.Equal(t, foxDoc, session.Text())
		assert.Equal(t, "task-001", record.TaskID)

		results := session.SearchContext([]string{"quick", "fox"}, 0, 0)
		assert.NotEmpty(t, results)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, _, err := store.OpenTaskSession(ctx, "no-such-task")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("session options apply", func(t *testing.T) {
		cfg := search.NewConfig(search.WithPassageSize(40))
		session, _, err := store.OpenTaskSession(ctx, "task-001", WithConfig(cfg))
		require.NoError(t, err)
		assert.Greater(t, session.PassageCount(), 1)
	})
}
