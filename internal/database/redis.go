package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"activity-hub/internal/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cmdable is the subset of the redis client the snapshot store uses.
type Cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type RedisDB struct {
	rdb    Cmdable
	closer func() error
}

func NewRedisDB(ctx context.Context, addr, password string, db int, logger *zap.SugaredLogger) (*RedisDB, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %v", addr, err)
	}
	logger.Infof("Successfully connected to redis at %s", addr)
	return &RedisDB{rdb: client, closer: client.Close}, nil
}

func NewRedisDBFromClient(rdb Cmdable) *RedisDB {
	return &RedisDB{rdb: rdb}
}

func (r *RedisDB) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, snapshotNotFound(key)
	}
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to load snapshot", err)
	}
	return data, nil
}

func (r *RedisDB) Save(ctx context.Context, key string, data []byte) error {
	if err := r.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to save snapshot", err)
	}
	return nil
}

func (r *RedisDB) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to delete snapshot", err)
	}
	return nil
}

func (r *RedisDB) Close(context.Context) error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}
