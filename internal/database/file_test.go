package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"activity-hub/internal/config"
	"activity-hub/internal/utils"
)

func TestFileSnapshotStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")
	store := NewFileSnapshotStore(dir)

	_, err := store.Load(ctx, "activityhub-mocks")
	assert.True(t, IsNotFound(err))

	require.NoError(t, store.Save(ctx, "activityhub-mocks", []byte(`{"posts":[]}`)))
	data, err := store.Load(ctx, "activityhub-mocks")
	require.NoError(t, err)
	assert.JSONEq(t, `{"posts":[]}`, string(data))

	require.NoError(t, store.Save(ctx, "activityhub-mocks", []byte(`{"posts":[1]}`)))
	data, err = store.Load(ctx, "activityhub-mocks")
	require.NoError(t, err)
	assert.JSONEq(t, `{"posts":[1]}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not linger")

	require.NoError(t, store.Delete(ctx, "activityhub-mocks"))
	require.NoError(t, store.Delete(ctx, "activityhub-mocks"))
	_, err = store.Load(ctx, "activityhub-mocks")
	assert.True(t, IsNotFound(err))
}

func TestFileSnapshotStoreRejectsPathKeys(t *testing.T) {
	store := NewFileSnapshotStore(t.TempDir())
	err := store.Save(context.Background(), "../escape", []byte("{}"))
	assert.True(t, utils.IsErrorCode(err, utils.ErrInvalidInput))
}

func TestNoopSnapshotStore(t *testing.T) {
	var store SnapshotStore = NoopSnapshotStore{}
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "k", []byte("{}")))
	_, err := store.Load(ctx, "k")
	assert.True(t, IsNotFound(err))
}

func TestNewSnapshotStoreSelectsBackend(t *testing.T) {
	logger := zap.NewNop().Sugar()
	cfg := &config.Config{Snapshot: &config.SnapshotConfig{Backend: config.BackendFile, Path: t.TempDir()}}

	store, err := NewSnapshotStore(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &FileSnapshotStore{}, store)

	cfg.Snapshot.Backend = config.BackendNone
	store, err = NewSnapshotStore(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, NoopSnapshotStore{}, store)

	cfg.Snapshot.Backend = "tape"
	_, err = NewSnapshotStore(context.Background(), cfg, logger)
	assert.Error(t, err)
}
