package service

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/types"
	nlog "github.com/Karin-Goldin/wedding-app/pkg/log"
)

// Export builds the download manifest the admin page renders: every object
// with its public URL, caption and upload time.
func (s *MediaService) Export(ctx context.Context, now time.Time) (*types.ExportResponse, error) {
	objects, err := s.blobs.List(ctx)
	if err != nil {
		return nil, &types.StorageFailureError{Op: "export list", Err: err}
	}

	messages, err := s.captions.AllMessages(ctx)
	if err != nil {
		nlog.Logger().Warn().Err(err).Msg("caption load failed, exporting without messages")

		messages = map[string]string{}
	}

	files := make([]types.ExportFile, 0, len(objects))
	for _, object := range objects {
		files = append(files, types.ExportFile{
			FileName:    object.Key,
			DisplayName: displayName(object.Key),
			URL:         s.blobs.PublicURL(object.Key),
			Message:     messages[object.Key],
			UploadTime:  object.CreatedAt.Format(time.RFC3339),
			Size:        object.SizeBytes,
		})
	}

	return &types.ExportResponse{
		Files:      files,
		TotalFiles: len(files),
		ExportTime: now.Format(time.RFC3339),
	}, nil
}

type archiveEntry struct {
	object types.StoredObject
	body   io.ReadCloser
}

// ExportArchive streams every object into a single zip. One goroutine
// prefetches from the blob store while another writes, so the next download
// overlaps the current write.
func (s *MediaService) ExportArchive(ctx context.Context, w io.Writer) error {
	objects, err := s.blobs.List(ctx)
	if err != nil {
		return &types.StorageFailureError{Op: "archive list", Err: err}
	}

	g, ctx := errgroup.WithContext(ctx)
	entries := make(chan archiveEntry, 2)

	g.Go(func() error {
		defer close(entries)

		for _, object := range objects {
			body, err := s.blobs.Get(ctx, object.Key)
			if err != nil {
				return &types.StorageFailureError{Op: "archive fetch " + object.Key, Err: err}
			}

			select {
			case entries <- archiveEntry{object: object, body: body}:
			case <-ctx.Done():
				_ = body.Close()
				return ctx.Err()
			}
		}

		return nil
	})

	g.Go(func() error {
		zw := zip.NewWriter(w)

		for entry := range entries {
			header := &zip.FileHeader{
				Name:     entry.object.Key,
				Method:   zip.Store, // media is already compressed
				Modified: entry.object.CreatedAt,
			}

			fw, err := zw.CreateHeader(header)
			if err != nil {
				_ = entry.body.Close()
				return fmt.Errorf("create archive entry %s: %w", entry.object.Key, err)
			}

			_, err = io.Copy(fw, entry.body)
			_ = entry.body.Close()

			if err != nil {
				return fmt.Errorf("write archive entry %s: %w", entry.object.Key, err)
			}
		}

		return zw.Close()
	})

	if err := g.Wait(); err != nil {
		// drain anything the fetcher still holds open
		for entry := range entries {
			_ = entry.body.Close()
		}

		return err
	}

	return nil
}

// displayName strips the timestamp-random prefix an object key carries.
func displayName(key string) string {
	if _, rest, ok := strings.Cut(key, "-"); ok && rest != "" {
		return rest
	}

	return key
}
