// Package kv provides the key-value cache used for gallery listings.
package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/Karin-Goldin/wedding-app/pkg/configs"
)

type Client struct {
	KVStore
}

// KVStore defines the key-value store interface.
type KVStore interface {
	// Get returns the value for key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores the value with an optional expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the key.
	Delete(ctx context.Context, key string) error
	// Exists reports whether the key is present.
	Exists(ctx context.Context, key string) (bool, error)
	// Keys lists keys matching pattern (debugging aid).
	Keys(ctx context.Context, pattern string) ([]string, error)
	// Close closes the store.
	Close() error
}

// KVType names a key-value backend.
type KVType string

const (
	KVTypeMemory KVType = "memory"
	KVTypeRedis  KVType = "redis"
)

// KVFactory creates a KVStore from backend-specific config.
type KVFactory func(ctx context.Context, config any) (KVStore, error)

// kvFactories maps KV types to factories.
var kvFactories = make(map[KVType]KVFactory)

// RegisterKVFactory registers a KV factory.
func RegisterKVFactory(kvType KVType, factory KVFactory) {
	kvFactories[kvType] = factory
}

// GetRegisteredKVTypes lists the registered KV types.
func GetRegisteredKVTypes() []KVType {
	types := make([]KVType, 0, len(kvFactories))
	for kvType := range kvFactories {
		types = append(types, kvType)
	}

	return types
}

// NewKVStore creates a KVStore of the given type.
func NewKVStore(ctx context.Context, kvType KVType, config any) (KVStore, error) {
	factory, exists := kvFactories[kvType]
	if !exists {
		return nil, fmt.Errorf("unsupported KV type: %s", kvType)
	}

	return factory(ctx, config)
}

// NewKVClient creates the cache client from the global config.
func NewKVClient(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().KV

	var backendCfg any
	if KVType(cfg.Type) == KVTypeRedis {
		backendCfg = &cfg.Redis
	}

	store, err := NewKVStore(ctx, KVType(cfg.Type), backendCfg)
	if err != nil {
		return nil, err
	}

	return &Client{KVStore: store}, nil
}
