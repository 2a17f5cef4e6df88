package actors

import (
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"activity-hub/internal/database"
	"activity-hub/internal/models"
	"activity-hub/internal/utils"
)

func TestStatsRequireAdmin(t *testing.T) {
	env := newTestEnv(t)

	requireAppError(t, env.ask(t, &GetStatsMsg{ActorID: moderator}), utils.ErrForbidden)
	requireAppError(t, env.ask(t, &GetStatsMsg{}), utils.ErrUnauthorized)

	stats := env.ask(t, &GetStatsMsg{ActorID: admin}).(*models.StoreStats)
	assert.Equal(t, 5, stats.Users)
	assert.Equal(t, 4, stats.Posts)
	assert.Equal(t, 3, stats.Comments)
}

func TestResetRestoresSeedAndDropsSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	snapshots := database.NewMockSnapshotStore(ctrl)
	gomock.InOrder(
		snapshots.EXPECT().Save(gomock.Any(), "k", gomock.Any()).Return(nil),
		snapshots.EXPECT().Delete(gomock.Any(), "k").Return(nil),
		snapshots.EXPECT().Delete(gomock.Any(), "k").Return(nil),
	)

	system := actor.NewActorSystem()
	persistPID := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewPersistActor(snapshots, "k", time.Second, zap.NewNop().Sugar())
	}))
	env := newTestEnvWithPersist(t, persistPID)

	require.IsType(t, &models.Post{}, env.ask(t, &CreatePostMsg{ActorID: diverPro, Title: "Temp", SubcategoryID: 2}))

	stats := env.ask(t, &ResetStoreMsg{ActorID: admin}).(*models.StoreStats)
	assert.Equal(t, 4, stats.Posts)
	requireAppError(t, env.ask(t, &GetPostMsg{PostID: 5}), utils.ErrNotFound)

	// Flush the persist mailbox behind the reset's delete.
	result, err := system.Root.RequestFuture(persistPID, &DeleteSnapshotMsg{}, 5*time.Second).Result()
	require.NoError(t, err)
	assert.NoError(t, result.(*DeleteSnapshotResult).Err)
}
