package service

import (
	"context"
	"time"

	"github.com/bytedance/sonic"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/types"
	nlog "github.com/Karin-Goldin/wedding-app/pkg/log"
)

const (
	galleryCacheKey = "cache:gallery"
	galleryCacheTTL = 30 * time.Second
)

// Gallery lists all stored media newest first, captions joined in. The
// result is cached briefly; uploads and deletes invalidate it through the
// event bus.
func (s *MediaService) Gallery(ctx context.Context) (*types.GalleryResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, galleryCacheKey); err == nil {
			var resp types.GalleryResponse
			if err := sonic.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	objects, err := s.blobs.List(ctx)
	if err != nil {
		return nil, &types.StorageFailureError{Op: "gallery list", Err: err}
	}

	// caption join is best-effort, same policy as the insert path
	messages, err := s.captions.AllMessages(ctx)
	if err != nil {
		nlog.Logger().Warn().Err(err).Msg("caption load failed, listing without messages")

		messages = map[string]string{}
	}

	items := make([]types.GalleryItem, 0, len(objects))
	for _, object := range objects {
		items = append(items, types.GalleryItem{
			Key:       object.Key,
			URL:       s.blobs.PublicURL(object.Key),
			CreatedAt: object.CreatedAt,
			Size:      object.SizeBytes,
			Caption:   messages[object.Key],
		})
	}

	resp := &types.GalleryResponse{Files: items, Total: len(items)}

	if s.cache != nil {
		if encoded, err := sonic.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, galleryCacheKey, encoded, galleryCacheTTL); err != nil {
				nlog.Logger().Warn().Err(err).Msg("gallery cache write failed")
			}
		}
	}

	return resp, nil
}

// Preview returns the first limit gallery items plus the full count, the
// cheap poll target for the landing page.
func (s *MediaService) Preview(ctx context.Context, limit int) (*types.PreviewResponse, error) {
	gallery, err := s.Gallery(ctx)
	if err != nil {
		return nil, err
	}

	files := gallery.Files
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}

	return &types.PreviewResponse{Files: files, Total: gallery.Total}, nil
}
