package service

import (
	"context"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/types"
)

// Usage sums stored bytes and object count across the whole bucket.
func (s *MediaService) Usage(ctx context.Context) (*types.UsageResponse, error) {
	objects, err := s.blobs.List(ctx)
	if err != nil {
		return nil, &types.StorageFailureError{Op: "usage list", Err: err}
	}

	var bytes int64
	for _, object := range objects {
		bytes += object.SizeBytes
	}

	return &types.UsageResponse{Bytes: bytes, Count: len(objects)}, nil
}
