// Package service implements the media operations behind the HTTP handlers:
// upload admission, gallery listing, deletion, export and usage stats.
package service

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/Karin-Goldin/wedding-app/pkg/configs"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/authz"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/events"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/gate"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/storage"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/storage/kv"
	nlog "github.com/Karin-Goldin/wedding-app/pkg/log"
)

// MediaService executes media operations against injected stores so tests
// can swap in fakes.
type MediaService struct {
	blobs    storage.BlobStore
	captions storage.CaptionStore
	cache    kv.KVStore
	gate     *gate.Gate
	authz    *authz.Authorizer
	bus      *events.Bus
}

// Window counters and the event bus are shared across requests, unlike the
// per-request service values built around them.
var (
	counterOnce  sync.Once
	counterStore gate.CounterStore
)

// SharedCounterStore returns the process-wide upload counter store, building
// it from the config on first use.
func SharedCounterStore() gate.CounterStore {
	counterOnce.Do(func() {
		cfg := configs.GetConfig()
		limits := uploadLimits(cfg)

		if cfg.Upload.CounterStore == "redis" {
			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.KV.Redis.Addr,
				Password: cfg.KV.Redis.Password,
				DB:       cfg.KV.Redis.DB,
			})
			counterStore = gate.NewRedisCounterStore(rdb, limits)

			nlog.Logger().Info().Str("addr", cfg.KV.Redis.Addr).Msg("upload counters in redis")

			return
		}

		counterStore = gate.NewMemoryCounterStore(limits)
	})

	return counterStore
}

func uploadLimits(cfg *configs.AppConfig) gate.Limits {
	return gate.Limits{
		Window:      cfg.Upload.GetWindow(),
		Limit:       cfg.Upload.Limit,
		MaxFileSize: cfg.Upload.MaxFileSize,
	}
}

// NewMediaService builds the service from the storage manager carried on the
// context, the usual request-scoped path.
func NewMediaService(c context.Context) *MediaService {
	mgr := storage.GetManagerFromContext(c)
	cfg := configs.GetConfig()

	var cache kv.KVStore
	if mgr.KV != nil {
		cache = mgr.KV
	}

	return NewMediaServiceWith(mgr.S3, mgr.DB, cache, SharedCounterStore(), uploadLimits(cfg), cfg.Auth, events.NewBus())
}

// NewMediaServiceWith wires a service from explicit dependencies.
func NewMediaServiceWith(
	blobs storage.BlobStore,
	captions storage.CaptionStore,
	cache kv.KVStore,
	counters gate.CounterStore,
	limits gate.Limits,
	authCfg configs.AuthConfig,
	bus *events.Bus,
) *MediaService {
	return &MediaService{
		blobs:    blobs,
		captions: captions,
		cache:    cache,
		gate:     gate.New(blobs, captions, counters, limits),
		authz:    authz.New(blobs, authCfg.AdminPassword, authCfg.GetGracePeriod()),
		bus:      bus,
	}
}

// StartCacheInvalidation subscribes the gallery cache to media events so a
// stale listing never outlives an upload or delete by more than one message.
func StartCacheInvalidation(ctx context.Context, bus *events.Bus, cache kv.KVStore) error {
	invalidate := func(event events.MediaEvent) {
		if err := cache.Delete(ctx, galleryCacheKey); err != nil {
			nlog.Logger().Warn().Err(err).Str("key", event.Key).Msg("gallery cache invalidation failed")
		}
	}

	for _, topic := range []string{events.TopicMediaStored, events.TopicMediaDeleted} {
		if err := bus.SubscribeMedia(ctx, topic, invalidate); err != nil {
			return err
		}
	}

	return nil
}
