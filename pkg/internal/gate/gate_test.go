package gate_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Karin-Goldin/wedding-app/pkg/internal/gate"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/types"
)

// fakeBlobStore records writes in memory.
type fakeBlobStore struct {
	objects map[string][]byte
	ctypes  map[string]string
	putErr  error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		objects: make(map[string][]byte),
		ctypes:  make(map[string]string),
	}
}

func (f *fakeBlobStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	f.objects[key] = data
	f.ctypes[key] = contentType

	return nil
}

func (f *fakeBlobStore) Stat(ctx context.Context, key string) (types.StoredObject, error) {
	data, ok := f.objects[key]
	if !ok {
		return types.StoredObject{}, types.ErrObjectNotFound
	}

	return types.StoredObject{Key: key, SizeBytes: int64(len(data)), ContentType: f.ctypes[key]}, nil
}

func (f *fakeBlobStore) List(ctx context.Context) ([]types.StoredObject, error) {
	var out []types.StoredObject
	for key, data := range f.objects {
		out = append(out, types.StoredObject{Key: key, SizeBytes: int64(len(data))})
	}

	return out, nil
}

func (f *fakeBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, types.ErrObjectNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeBlobStore) Remove(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobStore) PublicURL(key string) string {
	return "http://blob.test/media/" + key
}

// fakeCaptionStore records caption inserts.
type fakeCaptionStore struct {
	captions  map[string]string
	insertErr error
}

func newFakeCaptionStore() *fakeCaptionStore {
	return &fakeCaptionStore{captions: make(map[string]string)}
}

func (f *fakeCaptionStore) Insert(ctx context.Context, objectKey, message string, at time.Time) error {
	if f.insertErr != nil {
		return f.insertErr
	}

	f.captions[objectKey] = message

	return nil
}

func (f *fakeCaptionStore) MessageFor(ctx context.Context, objectKey string) (string, error) {
	return f.captions[objectKey], nil
}

func (f *fakeCaptionStore) AllMessages(ctx context.Context) (map[string]string, error) {
	return f.captions, nil
}

func newTestGate(blobs *fakeBlobStore, captions *fakeCaptionStore) *gate.Gate {
	return gate.New(blobs, captions, gate.NewMemoryCounterStore(testLimits()), testLimits())
}

func TestAdmitUploadStoresObject(t *testing.T) {
	blobs := newFakeBlobStore()
	captions := newFakeCaptionStore()
	g := newTestGate(blobs, captions)
	now := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)

	candidate := types.UploadCandidate{
		FileName:         "dancefloor.jpg",
		DeclaredMIMEType: "image/jpeg",
		SizeBytes:        1024,
		Caption:          "  best night ever  ",
	}

	adm, err := g.AdmitUpload(context.Background(), "1.2.3.4", candidate, strings.NewReader("jpegbytes"), now)
	if err != nil {
		t.Fatalf("admit: %v", err)
	}

	wantPrefix := strconv.FormatInt(now.UnixMilli(), 10) + "-"
	if !strings.HasPrefix(adm.Key, wantPrefix) || !strings.HasSuffix(adm.Key, ".jpg") {
		t.Fatalf("key %q does not match <unix-ms>-<random>.jpg", adm.Key)
	}

	if _, ok := blobs.objects[adm.Key]; !ok {
		t.Fatal("object not written to blob store")
	}

	if got := blobs.ctypes[adm.Key]; got != "image/jpeg" {
		t.Fatalf("stored content type = %q, want image/jpeg", got)
	}

	if got := captions.captions[adm.Key]; got != "best night ever" {
		t.Fatalf("caption = %q, want trimmed %q", got, "best night ever")
	}

	if adm.URL != "http://blob.test/media/"+adm.Key {
		t.Fatalf("url = %q", adm.URL)
	}

	if adm.Decision.Remaining != 49 {
		t.Fatalf("remaining = %d, want 49", adm.Decision.Remaining)
	}
}

func TestAdmitUploadRejectsOversizedWithoutBlobWrite(t *testing.T) {
	blobs := newFakeBlobStore()
	g := newTestGate(blobs, newFakeCaptionStore())

	candidate := types.UploadCandidate{
		FileName:         "ceremony.mp4",
		DeclaredMIMEType: "video/mp4",
		SizeBytes:        60 * 1024 * 1024,
	}

	_, err := g.AdmitUpload(context.Background(), "1.2.3.4", candidate, strings.NewReader("x"), time.Now())

	var invalid *types.InvalidFileError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidFileError", err)
	}

	if len(blobs.objects) != 0 {
		t.Fatal("blob store written despite rejection")
	}
}

func TestAdmitUploadExtensionFallback(t *testing.T) {
	blobs := newFakeBlobStore()
	g := newTestGate(blobs, newFakeCaptionStore())

	// generic MIME type from the client, extension decides
	candidate := types.UploadCandidate{
		FileName:         "first-dance.MKV",
		DeclaredMIMEType: "application/octet-stream",
		SizeBytes:        2048,
	}

	adm, err := g.AdmitUpload(context.Background(), "1.2.3.4", candidate, strings.NewReader("x"), time.Now())
	if err != nil {
		t.Fatalf("admit: %v", err)
	}

	if adm.ContentType != "video/x-matroska" {
		t.Fatalf("content type = %q, want video/x-matroska", adm.ContentType)
	}

	if !strings.HasSuffix(adm.Key, ".mkv") {
		t.Fatalf("key %q should carry a lowercased .mkv extension", adm.Key)
	}
}

func TestAdmitUploadRejectsUnknownType(t *testing.T) {
	g := newTestGate(newFakeBlobStore(), newFakeCaptionStore())

	candidate := types.UploadCandidate{
		FileName:         "malware.exe",
		DeclaredMIMEType: "application/octet-stream",
		SizeBytes:        10,
	}

	_, err := g.AdmitUpload(context.Background(), "1.2.3.4", candidate, strings.NewReader("x"), time.Now())

	var invalid *types.InvalidFileError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidFileError", err)
	}
}

func TestAdmitUploadRateLimited(t *testing.T) {
	limits := gate.Limits{Window: time.Minute, Limit: 1, MaxFileSize: 1024}
	g := gate.New(newFakeBlobStore(), newFakeCaptionStore(), gate.NewMemoryCounterStore(limits), limits)
	now := time.Now()

	candidate := types.UploadCandidate{
		FileName:         "a.jpg",
		DeclaredMIMEType: "image/jpeg",
		SizeBytes:        10,
	}

	if _, err := g.AdmitUpload(context.Background(), "9.9.9.9", candidate, strings.NewReader("x"), now); err != nil {
		t.Fatalf("first upload: %v", err)
	}

	_, err := g.AdmitUpload(context.Background(), "9.9.9.9", candidate, strings.NewReader("x"), now.Add(time.Second))

	var limited *types.RateLimitedError
	if !errors.As(err, &limited) {
		t.Fatalf("err = %v, want RateLimitedError", err)
	}

	if limited.Remaining != 0 {
		t.Fatalf("remaining = %d, want 0", limited.Remaining)
	}

	if got := limited.RetryAfter(now.Add(time.Second)); got != 59*time.Second {
		t.Fatalf("retry after = %v, want 59s", got)
	}
}

func TestAdmitUploadCaptionFailureKeepsUpload(t *testing.T) {
	blobs := newFakeBlobStore()
	captions := newFakeCaptionStore()
	captions.insertErr = errors.New("record store down")
	g := newTestGate(blobs, captions)

	candidate := types.UploadCandidate{
		FileName:         "toast.png",
		DeclaredMIMEType: "image/png",
		SizeBytes:        512,
		Caption:          "cheers!",
	}

	adm, err := g.AdmitUpload(context.Background(), "1.2.3.4", candidate, strings.NewReader("x"), time.Now())
	if err != nil {
		t.Fatalf("upload failed on caption error: %v", err)
	}

	if _, ok := blobs.objects[adm.Key]; !ok {
		t.Fatal("object missing despite successful admission")
	}
}

func TestAdmitUploadBlobFailureSurfaced(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.putErr = errors.New("bucket unreachable")
	g := newTestGate(blobs, newFakeCaptionStore())

	candidate := types.UploadCandidate{
		FileName:         "a.jpg",
		DeclaredMIMEType: "image/jpeg",
		SizeBytes:        10,
	}

	_, err := g.AdmitUpload(context.Background(), "1.2.3.4", candidate, strings.NewReader("x"), time.Now())

	var storageErr *types.StorageFailureError
	if !errors.As(err, &storageErr) {
		t.Fatalf("err = %v, want StorageFailureError", err)
	}
}
