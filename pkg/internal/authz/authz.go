// Package authz gates destructive deletion of stored media: free within a
// grace period after creation, password-gated afterward.
package authz

import (
	"context"
	"time"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/storage"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/types"
	nlog "github.com/Karin-Goldin/wedding-app/pkg/log"
)

// Outcome is the decision for one delete attempt.
type Outcome int

const (
	// Granted allows the deletion to proceed.
	Granted Outcome = iota
	// PendingCredential asks the caller to resubmit with a credential.
	PendingCredential
	// Denied rejects this submission; the caller may retry with a
	// corrected credential, there is no lockout.
	Denied
)

func (o Outcome) String() string {
	switch o {
	case Granted:
		return "granted"
	case PendingCredential:
		return "pending_credential"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}

// Authorizer decides and executes media deletion.
type Authorizer struct {
	blobs  storage.BlobStore
	secret string
	grace  time.Duration
}

// New creates a deletion authorizer. secret is the server-held deletion
// password; grace is how long after creation deletion stays credential-free.
func New(blobs storage.BlobStore, secret string, grace time.Duration) *Authorizer {
	return &Authorizer{
		blobs:  blobs,
		secret: secret,
		grace:  grace,
	}
}

// AuthorizeDelete applies the grace-period rule. The object's CreatedAt comes
// from the blob store's own metadata, so clients cannot stretch their window.
func (a *Authorizer) AuthorizeDelete(object types.StoredObject, credential string, now time.Time) Outcome {
	if now.Sub(object.CreatedAt) <= a.grace {
		return Granted
	}

	if credential == "" {
		return PendingCredential
	}

	if credential == a.secret {
		return Granted
	}

	return Denied
}

// VerifyCredential reports whether the supplied credential matches. Backs
// the password pre-check endpoint so the UI can challenge before deleting.
func (a *Authorizer) VerifyCredential(credential string) bool {
	return credential == a.secret
}

// Execute removes the blob. Store failures are surfaced, never retried here.
func (a *Authorizer) Execute(ctx context.Context, key string) error {
	if err := a.blobs.Remove(ctx, key); err != nil {
		return &types.StorageFailureError{Op: "blob delete", Err: err}
	}

	return nil
}

// Delete runs the full flow: look the object up, authorize, then remove.
// PendingCredential maps to ErrCredentialMissing and Denied to
// ErrCredentialInvalid so callers can branch on sentinel errors.
func (a *Authorizer) Delete(ctx context.Context, key, credential string, now time.Time) error {
	object, err := a.blobs.Stat(ctx, key)
	if err != nil {
		return err
	}

	outcome := a.AuthorizeDelete(object, credential, now)

	nlog.Logger().Debug().
		Str("key", key).
		Str("outcome", outcome.String()).
		Time("created_at", object.CreatedAt).
		Msg("delete attempt")

	switch outcome {
	case PendingCredential:
		return types.ErrCredentialMissing
	case Denied:
		return types.ErrCredentialInvalid
	case Granted:
		return a.Execute(ctx, key)
	default:
		return types.ErrCredentialInvalid
	}
}
