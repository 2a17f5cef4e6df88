package actors

import (
	stdctx "context"
	"time"

	"activity-hub/internal/database"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type (
	// SaveSnapshotMsg replaces the stored snapshot. Fire and forget.
	SaveSnapshotMsg struct {
		Data []byte
	}

	// DeleteSnapshotMsg removes the stored snapshot; the sender gets the
	// backend error, or nil.
	DeleteSnapshotMsg struct{}
)

// PersistActor writes snapshots to the configured backend, one at a time
// and in the order the store actor produced them.
type PersistActor struct {
	snapshots database.SnapshotStore
	key       string
	timeout   time.Duration
	logger    *zap.SugaredLogger
}

func NewPersistActor(snapshots database.SnapshotStore, key string, timeout time.Duration, logger *zap.SugaredLogger) actor.Actor {
	return &PersistActor{
		snapshots: snapshots,
		key:       key,
		timeout:   timeout,
		logger:    logger,
	}
}

func (a *PersistActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		a.logger.Infof("PersistActor started (key %s)", a.key)
	case *SaveSnapshotMsg:
		ctx, cancel := stdctx.WithTimeout(stdctx.Background(), a.timeout)
		defer cancel()
		if err := a.snapshots.Save(ctx, a.key, msg.Data); err != nil {
			a.logger.Errorf("PersistActor: Failed to save snapshot (%d bytes): %v", len(msg.Data), err)
			return
		}
		a.logger.Debugf("PersistActor: Saved snapshot (%d bytes)", len(msg.Data))
	case *DeleteSnapshotMsg:
		ctx, cancel := stdctx.WithTimeout(stdctx.Background(), a.timeout)
		defer cancel()
		err := a.snapshots.Delete(ctx, a.key)
		if err != nil {
			a.logger.Errorf("PersistActor: Failed to delete snapshot: %v", err)
		}
		if context.Sender() != nil {
			context.Respond(&DeleteSnapshotResult{Err: err})
		}
	}
}

type DeleteSnapshotResult struct {
	Err error
}
