package gate

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/storage"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/types"
	nlog "github.com/Karin-Goldin/wedding-app/pkg/log"
	"github.com/Karin-Goldin/wedding-app/pkg/metrics"
)

// Gate admits or rejects upload attempts. All dependencies are injected so
// tests can run it against in-memory fakes.
type Gate struct {
	blobs    storage.BlobStore
	captions storage.CaptionStore
	counters CounterStore
	limits   Limits
}

// New creates an admission gate.
func New(blobs storage.BlobStore, captions storage.CaptionStore, counters CounterStore, limits Limits) *Gate {
	return &Gate{
		blobs:    blobs,
		captions: captions,
		counters: counters,
		limits:   limits,
	}
}

// Admission is the success result of AdmitUpload.
type Admission struct {
	Key         string
	URL         string
	ContentType string
	Decision    Decision
}

// Validate enforces the per-file constraints: size cap and media-type
// allow-list with extension fallback.
func (g *Gate) Validate(candidate types.UploadCandidate) (string, error) {
	if candidate.SizeBytes > g.limits.MaxFileSize {
		return "", &types.InvalidFileError{
			Reason: fmt.Sprintf("file exceeds %d MB limit", g.limits.MaxFileSize/(1024*1024)),
		}
	}

	contentType, ok := resolveContentType(candidate.DeclaredMIMEType, candidate.FileName)
	if !ok {
		return "", &types.InvalidFileError{Reason: "file type not allowed, only images and videos are accepted"}
	}

	return contentType, nil
}

// AdmitUpload runs the full admission pipeline: rate check, validation, key
// generation, blob write and the best-effort caption insert.
func (g *Gate) AdmitUpload(ctx context.Context, clientID string, candidate types.UploadCandidate, body io.Reader, now time.Time) (Admission, error) {
	decision, err := g.counters.Take(ctx, clientID, now)
	if err != nil {
		return Admission{}, &types.StorageFailureError{Op: "rate check", Err: err}
	}

	if !decision.Admitted {
		metrics.UploadsRejected.WithLabelValues("rate_limited").Inc()

		return Admission{}, &types.RateLimitedError{ResetAt: decision.ResetAt, Remaining: decision.Remaining}
	}

	contentType, err := g.Validate(candidate)
	if err != nil {
		metrics.UploadsRejected.WithLabelValues("invalid_file").Inc()

		return Admission{}, err
	}

	key := generateObjectKey(candidate.FileName, now)

	if err := g.blobs.Put(ctx, key, body, candidate.SizeBytes, contentType); err != nil {
		metrics.UploadsRejected.WithLabelValues("storage_failure").Inc()

		return Admission{}, &types.StorageFailureError{Op: "blob write", Err: err}
	}

	// Caption persistence is best-effort: the object write is authoritative
	// and a caption failure never fails the upload.
	if caption := strings.TrimSpace(candidate.Caption); caption != "" {
		if err := g.captions.Insert(ctx, key, caption, now); err != nil {
			nlog.Logger().Warn().Err(err).Str("key", key).Msg("caption insert failed, upload kept")
		}
	}

	metrics.UploadsAdmitted.Inc()

	return Admission{
		Key:         key,
		URL:         g.blobs.PublicURL(key),
		ContentType: contentType,
		Decision:    decision,
	}, nil
}

// generateObjectKey builds `<unix-ms>-<random>.<ext>`. Keys are never reused;
// the timestamp plus random suffix makes collisions negligible.
func generateObjectKey(fileName string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), suffix, normalizedExtension(fileName))
}
