package storage

import (
	"context"

	dbc "github.com/Karin-Goldin/wedding-app/pkg/internal/storage/db"
	kvc "github.com/Karin-Goldin/wedding-app/pkg/internal/storage/kv"
	s3c "github.com/Karin-Goldin/wedding-app/pkg/internal/storage/s3"
)

type contextKey string

const managerKey contextKey = "storageManager"

// WithManager stores the Manager on the context.
func WithManager(ctx context.Context, mgr *Manager) context.Context {
	return context.WithValue(ctx, managerKey, mgr)
}

// GetManagerFromContext retrieves the Manager from the context.
func GetManagerFromContext(ctx context.Context) *Manager {
	if mgr, ok := ctx.Value(managerKey).(*Manager); ok {
		return mgr
	}

	return nil
}

// GetS3ClientFromContext retrieves the blob store client from the context.
func GetS3ClientFromContext(ctx context.Context) *s3c.Client {
	if mgr := GetManagerFromContext(ctx); mgr != nil {
		return mgr.S3
	}

	return nil
}

// GetDBClientFromContext retrieves the record store client from the context.
func GetDBClientFromContext(ctx context.Context) *dbc.Client {
	if mgr := GetManagerFromContext(ctx); mgr != nil {
		return mgr.DB
	}

	return nil
}

// GetKVClientFromContext retrieves the cache client from the context.
func GetKVClientFromContext(ctx context.Context) *kvc.Client {
	if mgr := GetManagerFromContext(ctx); mgr != nil {
		return mgr.KV
	}

	return nil
}
