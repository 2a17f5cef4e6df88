package actors

import (
	stdctx "context"
	"sync"
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"activity-hub/internal/database"
	"activity-hub/internal/models"
	"activity-hub/internal/store"
	"activity-hub/internal/utils"
)

// Seeded ids used across the actor tests.
const (
	motoTraveler int64 = 1
	diverPro     int64 = 2
	bikeTraveler int64 = 3
	moderator    int64 = 4
	admin        int64 = 5
)

type recordingNotifier struct {
	mu  sync.Mutex
	got []*models.Notification
}

func (r *recordingNotifier) Notify(n *models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *recordingNotifier) all() []*models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Notification{}, r.got...)
}

type testEnv struct {
	system   *actor.ActorSystem
	pid      *actor.PID
	store    *store.Store
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithPersist(t, nil)
}

func newTestEnvWithPersist(t *testing.T, persistPID *actor.PID) *testEnv {
	t.Helper()
	s, err := store.New(store.Options{PasswordCost: bcrypt.MinCost})
	require.NoError(t, err)

	system := actor.NewActorSystem()
	notifier := &recordingNotifier{}
	logger := zap.NewNop().Sugar()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewStoreActor(s, nil, logger, persistPID, notifier)
	})
	pid := system.Root.Spawn(props)
	t.Cleanup(func() { system.Root.Stop(pid) })

	return &testEnv{system: system, pid: pid, store: s, notifier: notifier}
}

func (e *testEnv) ask(t *testing.T, msg interface{}) interface{} {
	t.Helper()
	result, err := e.system.Root.RequestFuture(e.pid, msg, 5*time.Second).Result()
	require.NoError(t, err)
	return result
}

func requireAppError(t *testing.T, result interface{}, code string) *utils.AppError {
	t.Helper()
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "expected *utils.AppError, got %T", result)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func TestUnknownCallerIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	requireAppError(t, env.ask(t, &GetCurrentUserMsg{ActorID: 0}), utils.ErrUnauthorized)
	requireAppError(t, env.ask(t, &GetCurrentUserMsg{ActorID: 999}), utils.ErrUnauthorized)
	requireAppError(t, env.ask(t, &LikePostMsg{ActorID: 0, PostID: 1}), utils.ErrUnauthorized)
}

func TestMutationsAreSnapshotted(t *testing.T) {
	ctrl := gomock.NewController(t)
	snapshots := database.NewMockSnapshotStore(ctrl)

	saved := make(chan []byte, 4)
	snapshots.EXPECT().
		Save(gomock.Any(), "test-key", gomock.Any()).
		DoAndReturn(func(_ stdctx.Context, _ string, data []byte) error {
			saved <- data
			return nil
		})

	system := actor.NewActorSystem()
	persistPID := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewPersistActor(snapshots, "test-key", time.Second, zap.NewNop().Sugar())
	}))
	env := newTestEnvWithPersist(t, persistPID)

	result := env.ask(t, &LikePostMsg{ActorID: diverPro, PostID: 1})
	require.IsType(t, &models.LikeState{}, result)

	select {
	case data := <-saved:
		restored, err := store.New(store.Options{PasswordCost: bcrypt.MinCost})
		require.NoError(t, err)
		require.NoError(t, restored.Overlay(data))
		assert.True(t, restored.HasLike(diverPro, 1))
		assert.Equal(t, 246, restored.PostByID(1).LikesCount)
	case <-time.After(5 * time.Second):
		t.Fatal("snapshot was not saved")
	}
}

func TestReadsAreNotSnapshotted(t *testing.T) {
	ctrl := gomock.NewController(t)
	snapshots := database.NewMockSnapshotStore(ctrl)
	snapshots.EXPECT().Delete(gomock.Any(), "test-key").Return(nil)

	system := actor.NewActorSystem()
	persistPID := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewPersistActor(snapshots, "test-key", time.Second, zap.NewNop().Sugar())
	}))
	env := newTestEnvWithPersist(t, persistPID)

	env.ask(t, &GetPostMsg{PostID: 1})
	env.ask(t, &ListPostsMsg{})
	env.ask(t, &GetCommentsMsg{PostID: 1})

	// The persist mailbox is FIFO, so a Save sent by the reads above would
	// reach the mock before this Delete and fail the test.
	result, err := system.Root.RequestFuture(persistPID, &DeleteSnapshotMsg{}, 5*time.Second).Result()
	require.NoError(t, err)
	assert.NoError(t, result.(*DeleteSnapshotResult).Err)
}
