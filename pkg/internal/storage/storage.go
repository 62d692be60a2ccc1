// Package storage initializes and aggregates the storage backends: the media
// blob store (S3/MinIO), the caption record store (database) and the listing
// cache (KV).
//
// Example:
//
//	ctx := context.Background()
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//	    // handle error
//	}
//
//	blobs := mgr.GetS3Client()
//	db := mgr.GetDBClient()
package storage

import (
	"context"
	"io"
	"sync"
	"time"

	dbc "github.com/Karin-Goldin/wedding-app/pkg/internal/storage/db"
	kvc "github.com/Karin-Goldin/wedding-app/pkg/internal/storage/kv"
	s3c "github.com/Karin-Goldin/wedding-app/pkg/internal/storage/s3"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/types"
	nlog "github.com/Karin-Goldin/wedding-app/pkg/log"
)

// BlobStore is the narrow surface the service consumes from object storage.
type BlobStore interface {
	// Put stores the object bytes under key with the given content type.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Stat returns the object's metadata; CreatedAt is the store's own.
	Stat(ctx context.Context, key string) (types.StoredObject, error)
	// List returns all stored objects, newest first.
	List(ctx context.Context) ([]types.StoredObject, error)
	// Get opens the object for reading.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Remove deletes the object. Failures are surfaced, not retried.
	Remove(ctx context.Context, key string) error
	// PublicURL returns the externally reachable URL for key.
	PublicURL(key string) string
}

// CaptionStore persists guest captions keyed by object key.
type CaptionStore interface {
	Insert(ctx context.Context, objectKey, message string, at time.Time) error
	MessageFor(ctx context.Context, objectKey string) (string, error)
	AllMessages(ctx context.Context) (map[string]string, error)
}

// Manager aggregates all storage resources.
type Manager struct {
	S3 *s3c.Client
	DB *dbc.Client
	KV *kvc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init initializes the default storage set from the global config. Repeated
// calls return the already-initialized instance.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		// DB
		if dbi, e := dbc.New(ctx); e != nil {
			err = e

			return
		} else {
			m.DB = dbi
		}

		// S3
		if s3i, e := s3c.New(ctx); e != nil {
			err = e

			return
		} else {
			m.S3 = s3i
		}

		// KV cache
		if kvi, e := kvc.NewKVClient(ctx); e != nil {
			err = e

			return
		} else {
			m.KV = kvi
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetS3Client returns the blob store client.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetDBClient returns the record store client.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetKVClient returns the cache client.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}
