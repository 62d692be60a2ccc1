package authz_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/authz"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/types"
)

type fakeBlobStore struct {
	objects   map[string]types.StoredObject
	removeErr error
	removed   []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string]types.StoredObject)}
}

func (f *fakeBlobStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return nil
}

func (f *fakeBlobStore) Stat(ctx context.Context, key string) (types.StoredObject, error) {
	obj, ok := f.objects[key]
	if !ok {
		return types.StoredObject{}, types.ErrObjectNotFound
	}

	return obj, nil
}

func (f *fakeBlobStore) List(ctx context.Context) ([]types.StoredObject, error) {
	return nil, nil
}

func (f *fakeBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, types.ErrObjectNotFound
}

func (f *fakeBlobStore) Remove(ctx context.Context, key string) error {
	if f.removeErr != nil {
		return f.removeErr
	}

	delete(f.objects, key)
	f.removed = append(f.removed, key)

	return nil
}

func (f *fakeBlobStore) PublicURL(key string) string {
	return "http://blob.test/" + key
}

const grace = 5 * time.Minute

func TestAuthorizeDeleteWithinGrace(t *testing.T) {
	a := authz.New(newFakeBlobStore(), "secret", grace)
	created := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)
	obj := types.StoredObject{Key: "k", CreatedAt: created}

	// 4m59s in, no credential needed
	if got := a.AuthorizeDelete(obj, "", created.Add(4*time.Minute+59*time.Second)); got != authz.Granted {
		t.Fatalf("outcome at 4m59s = %v, want granted", got)
	}

	// exactly at the boundary still free
	if got := a.AuthorizeDelete(obj, "", created.Add(grace)); got != authz.Granted {
		t.Fatalf("outcome at 5m00s = %v, want granted", got)
	}

	// past the boundary a credential is required
	if got := a.AuthorizeDelete(obj, "", created.Add(5*time.Minute+time.Second)); got != authz.PendingCredential {
		t.Fatalf("outcome at 5m01s = %v, want pending_credential", got)
	}
}

func TestAuthorizeDeleteCredentialAfterGrace(t *testing.T) {
	a := authz.New(newFakeBlobStore(), "secret", grace)
	created := time.Now().Add(-10 * time.Minute)
	obj := types.StoredObject{Key: "k", CreatedAt: created}
	now := time.Now()

	if got := a.AuthorizeDelete(obj, "wrong", now); got != authz.Denied {
		t.Fatalf("wrong credential outcome = %v, want denied", got)
	}

	// a denied submission does not lock the object; a corrected credential works
	if got := a.AuthorizeDelete(obj, "secret", now); got != authz.Granted {
		t.Fatalf("correct credential outcome = %v, want granted", got)
	}
}

func TestDeleteFlowAfterGrace(t *testing.T) {
	blobs := newFakeBlobStore()
	created := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)
	blobs.objects["party.jpg"] = types.StoredObject{Key: "party.jpg", CreatedAt: created}
	a := authz.New(blobs, "secret", grace)
	now := created.Add(6 * time.Minute)

	if err := a.Delete(context.Background(), "party.jpg", "", now); !errors.Is(err, types.ErrCredentialMissing) {
		t.Fatalf("no-credential delete err = %v, want ErrCredentialMissing", err)
	}

	if err := a.Delete(context.Background(), "party.jpg", "wrong", now); !errors.Is(err, types.ErrCredentialInvalid) {
		t.Fatalf("wrong-credential delete err = %v, want ErrCredentialInvalid", err)
	}

	if len(blobs.removed) != 0 {
		t.Fatal("blob removed before a granted outcome")
	}

	if err := a.Delete(context.Background(), "party.jpg", "secret", now); err != nil {
		t.Fatalf("correct-credential delete: %v", err)
	}

	if len(blobs.removed) != 1 || blobs.removed[0] != "party.jpg" {
		t.Fatalf("removed = %v, want [party.jpg]", blobs.removed)
	}
}

func TestDeleteFlowWithinGrace(t *testing.T) {
	blobs := newFakeBlobStore()
	created := time.Now().Add(-time.Minute)
	blobs.objects["fresh.png"] = types.StoredObject{Key: "fresh.png", CreatedAt: created}
	a := authz.New(blobs, "secret", grace)

	if err := a.Delete(context.Background(), "fresh.png", "", time.Now()); err != nil {
		t.Fatalf("grace-period delete: %v", err)
	}

	if len(blobs.removed) != 1 {
		t.Fatal("blob not removed")
	}
}

func TestDeleteMissingObject(t *testing.T) {
	a := authz.New(newFakeBlobStore(), "secret", grace)

	err := a.Delete(context.Background(), "ghost.jpg", "", time.Now())
	if !errors.Is(err, types.ErrObjectNotFound) {
		t.Fatalf("err = %v, want ErrObjectNotFound", err)
	}
}

func TestDeleteStoreFailureSurfaced(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.objects["k"] = types.StoredObject{Key: "k", CreatedAt: time.Now()}
	blobs.removeErr = errors.New("bucket unreachable")
	a := authz.New(blobs, "secret", grace)

	err := a.Delete(context.Background(), "k", "", time.Now())

	var storageErr *types.StorageFailureError
	if !errors.As(err, &storageErr) {
		t.Fatalf("err = %v, want StorageFailureError", err)
	}
}

func TestVerifyCredential(t *testing.T) {
	a := authz.New(newFakeBlobStore(), "secret", grace)

	if !a.VerifyCredential("secret") {
		t.Fatal("correct credential rejected")
	}

	if a.VerifyCredential("wrong") {
		t.Fatal("wrong credential accepted")
	}
}
