package cache

import (
	"context"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/logger"
)

// MemcacheClient stores tracker keys in memcached. Items are written without
// expiry but memcached may still evict them under memory pressure.
type MemcacheClient struct {
	client *memcache.Client
	prefix string
}

type config interface {
	Hosts() []string
	KeyPrefix() string
}

func NewMemcache(config config) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	if err := mc.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping memcached")
	}
	return &MemcacheClient{client: mc, prefix: config.KeyPrefix()}, nil
}

func (mc *MemcacheClient) formatKey(key string) string {
	return mc.prefix + key
}

func (mc *MemcacheClient) Load(_ context.Context, key string) (string, bool, error) {
	logger.Debug("load from memcached", zap.String("key", key))
	item, err := mc.client.Get(mc.formatKey(key))
	if errors.Is(err, memcache.ErrCacheMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "load "+key)
	}
	return string(item.Value), true, nil
}

func (mc *MemcacheClient) Save(_ context.Context, key, value string) error {
	logger.Debug("save to memcached", zap.String("key", key))
	err := mc.client.Set(&memcache.Item{
		Key:   mc.formatKey(key),
		Value: []byte(value),
	})
	return errors.Wrap(err, "save "+key)
}

func (mc *MemcacheClient) Remove(_ context.Context, key string) error {
	logger.Debug("remove from memcached", zap.String("key", key))
	err := mc.client.Delete(mc.formatKey(key))
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return errors.Wrap(err, "remove "+key)
	}
	return nil
}

// Close drops the idle connections.
func (mc *MemcacheClient) Close() error {
	return errors.Wrap(mc.client.Close(), "close memcached client")
}
