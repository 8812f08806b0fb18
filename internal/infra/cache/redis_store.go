// File: internal/infra/cache/redis_store.go
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"myfatoorah-checkout/internal/config"
	"myfatoorah-checkout/internal/domain"
	"myfatoorah-checkout/internal/domain/ports/adapter"
)

var _ adapter.CacheStore = (*RedisStore)(nil)

// RedisStore keeps each blob under its key with a sibling "<key>:mtime"
// holding the unix time of the last write. Redis serializes writers, so the
// last-writer-wins policy falls out of the engine.
type RedisStore struct {
	cli *redis.Client
}

func NewRedisStore(ctx context.Context, cfg *config.RedisConfig) (*RedisStore, error) {
	cli := redis.NewClient(&redis.Options{
		Addr:     cfg.URL,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{cli: cli}, nil
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.cli.Exists(ctx, key).Result()
	return n > 0, err
}

func (s *RedisStore) ReadAll(ctx context.Context, key string) ([]byte, error) {
	blob, err := s.cli.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	return blob, err
}

func (s *RedisStore) WriteAll(ctx context.Context, key string, blob []byte) error {
	pipe := s.cli.TxPipeline()
	pipe.Set(ctx, key, blob, 0)
	pipe.Set(ctx, key+":mtime", time.Now().Unix(), 0)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) LastModified(ctx context.Context, key string) (time.Time, error) {
	v, err := s.cli.Get(ctx, key+":mtime").Result()
	if err == redis.Nil {
		return time.Time{}, domain.ErrNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	sec, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, 0), nil
}

func (s *RedisStore) Close() error { return s.cli.Close() }
