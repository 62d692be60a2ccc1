package service

import (
	"context"
	"time"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/events"
)

// Delete runs the deletion authorizer for key and, on success, announces the
// removal. Caption rows are left in place; the listing join simply stops
// finding a matching object.
func (s *MediaService) Delete(ctx context.Context, key, credential string, now time.Time) error {
	if err := s.authz.Delete(ctx, key, credential, now); err != nil {
		return err
	}

	if s.bus != nil {
		s.bus.PublishMedia(events.TopicMediaDeleted, events.MediaEvent{Key: key, OccurredAt: now})
	}

	return nil
}

// VerifyPassword backs the pre-check endpoint the UI calls before showing a
// credentialed delete.
func (s *MediaService) VerifyPassword(credential string) bool {
	return s.authz.VerifyCredential(credential)
}
