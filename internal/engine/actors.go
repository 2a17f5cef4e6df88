package engine

import (
	"context"
	"time"

	"activity-hub/internal/database"
	"activity-hub/internal/engine/actors"
	"activity-hub/internal/store"
	"activity-hub/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// Options configures NewEngine.
type Options struct {
	// SnapshotKey names the stored snapshot.
	SnapshotKey string
	// WriteTimeout bounds a single snapshot write or delete.
	WriteTimeout time.Duration
	// Notifier receives every new notification. May be nil.
	Notifier actors.Notifier
}

// Engine coordinates communication between actors
type Engine struct {
	storeActor   *actor.PID
	persistActor *actor.PID
}

// NewEngine restores the store from the last snapshot, if any, and spawns the
// persist and store actors. A snapshot that cannot be read or decoded is
// logged and the seed data is used instead.
func NewEngine(ctx context.Context, system *actor.ActorSystem, s *store.Store, snapshots database.SnapshotStore, opts Options, metrics *utils.MetricsCollector, logger *zap.SugaredLogger) *Engine {
	restore(ctx, s, snapshots, opts.SnapshotKey, logger)

	root := system.Root

	persistProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewPersistActor(snapshots, opts.SnapshotKey, opts.WriteTimeout, logger)
	})
	persistPID := root.Spawn(persistProps)

	storeProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewStoreActor(s, metrics, logger, persistPID, opts.Notifier)
	})
	storePID := root.Spawn(storeProps)

	return &Engine{
		storeActor:   storePID,
		persistActor: persistPID,
	}
}

func restore(ctx context.Context, s *store.Store, snapshots database.SnapshotStore, key string, logger *zap.SugaredLogger) {
	data, err := snapshots.Load(ctx, key)
	switch {
	case database.IsNotFound(err):
		logger.Infof("No snapshot under %q, starting from seed data", key)
		return
	case err != nil:
		logger.Errorf("Failed to load snapshot %q, starting from seed data: %v", key, err)
		return
	}
	if err := s.Overlay(data); err != nil {
		logger.Errorf("Snapshot %q is unreadable, starting from seed data: %v", key, err)
		return
	}
	stats := s.Stats()
	logger.Infof("Restored snapshot %q: %d users, %d posts, %d comments", key, stats.Users, stats.Posts, stats.Comments)
}

// GetStoreActor returns the PID of the store actor
func (e *Engine) GetStoreActor() *actor.PID {
	return e.storeActor
}

// GetPersistActor returns the PID of the persist actor
func (e *Engine) GetPersistActor() *actor.PID {
	return e.persistActor
}

// Stop lets the store actor answer what is already queued, then waits for
// the persist actor to write the snapshots that produced.
func (e *Engine) Stop(root *actor.RootContext) error {
	if err := root.PoisonFuture(e.storeActor).Wait(); err != nil {
		return err
	}
	return root.PoisonFuture(e.persistActor).Wait()
}
