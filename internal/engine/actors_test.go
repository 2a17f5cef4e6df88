package engine

import (
	"context"
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"activity-hub/internal/database"
	"activity-hub/internal/engine/actors"
	"activity-hub/internal/models"
	"activity-hub/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(store.Options{PasswordCost: bcrypt.MinCost})
	require.NoError(t, err)
	return s
}

func TestEngineRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	snapshots := database.NewFileSnapshotStore(t.TempDir())

	// A previous run left one extra post behind.
	previous := newStore(t)
	previous.AddPost(&models.Post{Title: "From last time", AuthorID: 2, SubcategoryID: 2})
	data, err := previous.Snapshot()
	require.NoError(t, err)
	require.NoError(t, snapshots.Save(ctx, "activityhub-mocks", data))

	system := actor.NewActorSystem()
	e := NewEngine(ctx, system, newStore(t), snapshots, Options{
		SnapshotKey:  "activityhub-mocks",
		WriteTimeout: time.Second,
	}, nil, zap.NewNop().Sugar())

	result, err := system.Root.RequestFuture(e.GetStoreActor(), &actors.GetPostMsg{PostID: 5}, 5*time.Second).Result()
	require.NoError(t, err)
	details, ok := result.(*models.PostDetails)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, "From last time", details.Title)
}

func TestEngineFallsBackToSeedData(t *testing.T) {
	ctx := context.Background()
	snapshots := database.NewFileSnapshotStore(t.TempDir())
	require.NoError(t, snapshots.Save(ctx, "broken", []byte("{not json")))

	system := actor.NewActorSystem()
	s := newStore(t)
	e := NewEngine(ctx, system, s, snapshots, Options{SnapshotKey: "broken", WriteTimeout: time.Second}, nil, zap.NewNop().Sugar())
	require.NotNil(t, e.GetPersistActor())

	result, err := system.Root.RequestFuture(e.GetStoreActor(), &actors.HealthMsg{}, 5*time.Second).Result()
	require.NoError(t, err)
	stats := result.(*models.StoreStats)
	assert.Equal(t, 4, stats.Posts)
	assert.Equal(t, 5, stats.Users)
}

func TestEngineStopFlushesSnapshots(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	snapshots := database.NewFileSnapshotStore(dir)

	system := actor.NewActorSystem()
	e := NewEngine(ctx, system, newStore(t), snapshots, Options{
		SnapshotKey:  "activityhub-mocks",
		WriteTimeout: time.Second,
	}, nil, zap.NewNop().Sugar())

	result, err := system.Root.RequestFuture(e.GetStoreActor(), &actors.CreatePostMsg{
		ActorID:       2,
		Title:         "Saved on the way out",
		SubcategoryID: 2,
	}, 5*time.Second).Result()
	require.NoError(t, err)
	require.IsType(t, &models.Post{}, result)

	require.NoError(t, e.Stop(system.Root))

	restored := newStore(t)
	data, err := snapshots.Load(ctx, "activityhub-mocks")
	require.NoError(t, err)
	require.NoError(t, restored.Overlay(data))
	assert.Equal(t, 5, restored.Stats().Posts)
}
