// internal/database/snapshot.go
package database

//go:generate mockgen -source=snapshot.go -destination=mock_snapshot.go -package=database

import (
	"context"
	"fmt"

	"activity-hub/internal/config"
	"activity-hub/internal/utils"

	"go.uber.org/zap"
)

// SnapshotStore keeps one serialized entity store per key. Load reports a
// NOT_FOUND AppError when nothing was saved under the key.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close(ctx context.Context) error
}

func snapshotNotFound(key string) error {
	return utils.NewAppError(utils.ErrNotFound, fmt.Sprintf("snapshot %q not found", key), nil)
}

// IsNotFound reports whether err means the key holds no snapshot.
func IsNotFound(err error) bool {
	return utils.IsErrorCode(err, utils.ErrNotFound)
}

// NewSnapshotStore connects to the backend selected in cfg.
func NewSnapshotStore(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (SnapshotStore, error) {
	switch cfg.Snapshot.Backend {
	case config.BackendNone:
		logger.Infof("Snapshots disabled; state lives only in memory")
		return NoopSnapshotStore{}, nil
	case config.BackendFile:
		logger.Infof("Keeping snapshots under %s", cfg.Snapshot.Path)
		return NewFileSnapshotStore(cfg.Snapshot.Path), nil
	case config.BackendPostgres:
		db, err := NewPostgresDB(cfg.Database.URI, logger)
		if err != nil {
			return nil, err
		}
		if err := db.InitializeTables(ctx); err != nil {
			db.Close(ctx)
			return nil, err
		}
		return db, nil
	case config.BackendMongoDB:
		db, err := NewMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database, logger)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.BackendRedis:
		db, err := NewRedisDB(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported snapshot backend %q", cfg.Snapshot.Backend)
	}
}

// NoopSnapshotStore never has a snapshot and drops every write.
type NoopSnapshotStore struct{}

func (NoopSnapshotStore) Load(_ context.Context, key string) ([]byte, error) {
	return nil, snapshotNotFound(key)
}

func (NoopSnapshotStore) Save(context.Context, string, []byte) error { return nil }

func (NoopSnapshotStore) Delete(context.Context, string) error { return nil }

func (NoopSnapshotStore) Close(context.Context) error { return nil }
