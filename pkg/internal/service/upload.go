package service

import (
	"context"
	"io"
	"time"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/events"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/gate"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/types"
)

// Upload runs an upload through the admission gate and announces the new
// object on the event bus.
func (s *MediaService) Upload(ctx context.Context, clientID string, candidate types.UploadCandidate, body io.Reader, now time.Time) (*types.UploadResponse, gate.Decision, error) {
	admission, err := s.gate.AdmitUpload(ctx, clientID, candidate, body, now)
	if err != nil {
		return nil, admission.Decision, err
	}

	if s.bus != nil {
		s.bus.PublishMedia(events.TopicMediaStored, events.MediaEvent{
			Key:        admission.Key,
			SizeBytes:  candidate.SizeBytes,
			OccurredAt: now,
		})
	}

	return &types.UploadResponse{
		URL:      admission.URL,
		FileName: admission.Key,
		Size:     candidate.SizeBytes,
		Type:     admission.ContentType,
		Message:  candidate.Caption,
	}, admission.Decision, nil
}
