// Package kv provides the durable key-value slots the favorites collection
// is persisted to.
package kv

import (
	"context"
	"fmt"

	"github.com/bilgisen/gossipd/internal/config"
)

// Store is a byte-oriented key-value store.
// Get reports found=false with a nil error when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// New opens the backend selected by cfg.KVBackend.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.KVBackend {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.KVPath)
	case "redis":
		return NewRedisStore(ctx, cfg.RedisURL, cfg.RedisPrefix)
	case "valkey":
		return NewValkeyStore(ctx, cfg.ValkeyAddress, cfg.ValkeyPassword, cfg.RedisPrefix)
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown kv backend %q", cfg.KVBackend)
	}
}
