// Package storage provides the client's durable key/value store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Store persists string values under string keys. Load reports ok=false for
// a missing key; Delete of a missing key is not an error.
type Store interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config selects and parameterizes a backend.
type Config struct {
	Backend     string
	Path        string
	RedisAddr   string
	RedisPrefix string
}

// Open builds the configured store. The returned close func is never nil.
func Open(ctx context.Context, cfg Config) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case BackendFile, "":
		return NewFileStore(cfg.Path), noop, nil

	case BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
			return nil, noop, fmt.Errorf("failed to create store dir for %s: %w", cfg.Path, err)
		}
		db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite store %s: %w", cfg.Path, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, noop, err
		}
		store, err := NewGormStore(db)
		if err != nil {
			sqlDB.Close()
			return nil, noop, err
		}
		return store, sqlDB.Close, nil

	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, noop, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisStore(rdb, cfg.RedisPrefix), rdb.Close, nil

	case BackendMemory:
		return NewMemoryStore(), noop, nil

	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
