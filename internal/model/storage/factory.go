package storage

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/clients/cache"
	"max.ks1230/expense-tracker/internal/config"
	"max.ks1230/expense-tracker/internal/logger"
)

// KV is the persistence port the tracker writes through.
type KV interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type backendConfig interface {
	Storage() *config.StorageConfig
	Postgres() *config.PostgresConfig
	Memcached() *config.MemcachedConfig
}

// New opens the backend selected in the config. The returned close func is
// never nil.
func New(cfg backendConfig) (KV, func() error, error) {
	backend := cfg.Storage().Backend()
	logger.Info("opening storage", zap.String("backend", backend))

	noClose := func() error { return nil }

	switch backend {
	case config.StorageMemory:
		return NewInMemStorage(), noClose, nil
	case config.StorageSQLite:
		s, err := NewSQLiteStorage(cfg.Storage().SQLitePath())
		if err != nil {
			return nil, noClose, err
		}
		return s, s.Close, nil
	case config.StoragePostgres:
		s, err := NewPostgresStorage(cfg.Postgres())
		if err != nil {
			return nil, noClose, err
		}
		return s, s.Close, nil
	case config.StorageMemcached:
		s, err := cache.NewMemcache(cfg.Memcached())
		if err != nil {
			return nil, noClose, err
		}
		return s, s.Close, nil
	}
	return nil, noClose, errors.Errorf("unknown storage backend %s", backend)
}
