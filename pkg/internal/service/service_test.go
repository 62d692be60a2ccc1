package service_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/Karin-Goldin/wedding-app/pkg/configs"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/events"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/gate"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/service"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/storage/kv"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/types"
)

type fakeObject struct {
	data        []byte
	createdAt   time.Time
	contentType string
}

type fakeBlobStore struct {
	objects map[string]fakeObject
	listErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string]fakeObject)}
}

func (f *fakeBlobStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	f.objects[key] = fakeObject{data: data, createdAt: time.Now(), contentType: contentType}

	return nil
}

func (f *fakeBlobStore) Stat(ctx context.Context, key string) (types.StoredObject, error) {
	obj, ok := f.objects[key]
	if !ok {
		return types.StoredObject{}, types.ErrObjectNotFound
	}

	return types.StoredObject{Key: key, CreatedAt: obj.createdAt, SizeBytes: int64(len(obj.data)), ContentType: obj.contentType}, nil
}

func (f *fakeBlobStore) List(ctx context.Context) ([]types.StoredObject, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	out := make([]types.StoredObject, 0, len(f.objects))
	for key, obj := range f.objects {
		out = append(out, types.StoredObject{Key: key, CreatedAt: obj.createdAt, SizeBytes: int64(len(obj.data)), ContentType: obj.contentType})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (f *fakeBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, ok := f.objects[key]
	if !ok {
		return nil, types.ErrObjectNotFound
	}

	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (f *fakeBlobStore) Remove(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobStore) PublicURL(key string) string {
	return "http://blob.test/wedding-photos/" + key
}

type fakeCaptionStore struct {
	captions map[string]string
}

func newFakeCaptionStore() *fakeCaptionStore {
	return &fakeCaptionStore{captions: make(map[string]string)}
}

func (f *fakeCaptionStore) Insert(ctx context.Context, objectKey, message string, at time.Time) error {
	f.captions[objectKey] = message
	return nil
}

func (f *fakeCaptionStore) MessageFor(ctx context.Context, objectKey string) (string, error) {
	return f.captions[objectKey], nil
}

func (f *fakeCaptionStore) AllMessages(ctx context.Context) (map[string]string, error) {
	return f.captions, nil
}

func testAuthConfig() configs.AuthConfig {
	return configs.AuthConfig{
		AdminPassword:      "secret",
		JWTSecret:          "jwt",
		GracePeriodSeconds: 300,
		TokenTTLHours:      24,
	}
}

func testLimits() gate.Limits {
	return gate.Limits{Window: time.Minute, Limit: 50, MaxFileSize: 50 * 1024 * 1024}
}

func newTestService(blobs *fakeBlobStore, captions *fakeCaptionStore, cache kv.KVStore, bus *events.Bus) *service.MediaService {
	return service.NewMediaServiceWith(
		blobs, captions, cache,
		gate.NewMemoryCounterStore(testLimits()),
		testLimits(), testAuthConfig(), bus,
	)
}

func seedObject(blobs *fakeBlobStore, key, data string, createdAt time.Time) {
	blobs.objects[key] = fakeObject{data: []byte(data), createdAt: createdAt, contentType: "image/jpeg"}
}

func TestGalleryJoinsCaptions(t *testing.T) {
	blobs := newFakeBlobStore()
	captions := newFakeCaptionStore()
	now := time.Now()
	seedObject(blobs, "100-aa.jpg", "one", now.Add(-2*time.Minute))
	seedObject(blobs, "200-bb.jpg", "two", now.Add(-time.Minute))
	captions.captions["200-bb.jpg"] = "the kiss"

	svc := newTestService(blobs, captions, nil, nil)

	resp, err := svc.Gallery(context.Background())
	if err != nil {
		t.Fatalf("gallery: %v", err)
	}

	if resp.Total != 2 || len(resp.Files) != 2 {
		t.Fatalf("total = %d, files = %d, want 2 each", resp.Total, len(resp.Files))
	}

	// newest first
	if resp.Files[0].Key != "200-bb.jpg" {
		t.Fatalf("first item = %q, want newest 200-bb.jpg", resp.Files[0].Key)
	}

	if resp.Files[0].Caption != "the kiss" {
		t.Fatalf("caption = %q, want %q", resp.Files[0].Caption, "the kiss")
	}

	if resp.Files[1].Caption != "" {
		t.Fatalf("uncaptioned item got caption %q", resp.Files[1].Caption)
	}

	if resp.Files[0].URL != "http://blob.test/wedding-photos/200-bb.jpg" {
		t.Fatalf("url = %q", resp.Files[0].URL)
	}
}

func TestGalleryServedFromCache(t *testing.T) {
	blobs := newFakeBlobStore()
	seedObject(blobs, "100-aa.jpg", "one", time.Now())

	cache, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("cache: %v", err)
	}

	svc := newTestService(blobs, newFakeCaptionStore(), cache, nil)

	if _, err := svc.Gallery(context.Background()); err != nil {
		t.Fatalf("first gallery: %v", err)
	}

	// a list failure is invisible while the cache holds the listing
	blobs.listErr = errors.New("bucket down")

	resp, err := svc.Gallery(context.Background())
	if err != nil {
		t.Fatalf("cached gallery: %v", err)
	}

	if resp.Total != 1 {
		t.Fatalf("cached total = %d, want 1", resp.Total)
	}
}

func TestPreviewLimitsFilesKeepsTotal(t *testing.T) {
	blobs := newFakeBlobStore()
	now := time.Now()
	for i, key := range []string{"1-a.jpg", "2-b.jpg", "3-c.jpg", "4-d.jpg"} {
		seedObject(blobs, key, "x", now.Add(time.Duration(i)*time.Second))
	}

	svc := newTestService(blobs, newFakeCaptionStore(), nil, nil)

	resp, err := svc.Preview(context.Background(), 3)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}

	if len(resp.Files) != 3 {
		t.Fatalf("preview files = %d, want 3", len(resp.Files))
	}

	if resp.Total != 4 {
		t.Fatalf("preview total = %d, want 4", resp.Total)
	}
}

func TestUploadPublishesAndDeleteInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	blobs := newFakeBlobStore()
	seedObject(blobs, "100-aa.jpg", "one", time.Now())

	cache, err := kv.NewKVStore(ctx, kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("cache: %v", err)
	}

	bus := events.NewBus()
	if err := service.StartCacheInvalidation(ctx, bus, cache); err != nil {
		t.Fatalf("start invalidation: %v", err)
	}

	svc := newTestService(blobs, newFakeCaptionStore(), cache, bus)

	if _, err := svc.Gallery(ctx); err != nil {
		t.Fatalf("gallery: %v", err)
	}

	if err := svc.Delete(ctx, "100-aa.jpg", "", time.Now()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// invalidation rides the bus asynchronously
	deadline := time.Now().Add(2 * time.Second)

	for {
		resp, err := svc.Gallery(ctx)
		if err != nil {
			t.Fatalf("gallery after delete: %v", err)
		}

		if resp.Total == 0 {
			break
		}

		if time.Now().After(deadline) {
			t.Fatalf("gallery still shows %d files after delete", resp.Total)
		}

		time.Sleep(20 * time.Millisecond)
	}
}

func TestExportManifest(t *testing.T) {
	blobs := newFakeBlobStore()
	captions := newFakeCaptionStore()
	created := time.Date(2026, 6, 20, 19, 30, 0, 0, time.UTC)
	seedObject(blobs, "1781983800000-ab12cd34.jpg", "bytes", created)
	captions.captions["1781983800000-ab12cd34.jpg"] = "speeches"

	svc := newTestService(blobs, captions, nil, nil)
	now := time.Date(2026, 6, 21, 9, 0, 0, 0, time.UTC)

	resp, err := svc.Export(context.Background(), now)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if resp.TotalFiles != 1 || len(resp.Files) != 1 {
		t.Fatalf("totalFiles = %d, files = %d, want 1 each", resp.TotalFiles, len(resp.Files))
	}

	file := resp.Files[0]
	if file.DisplayName != "ab12cd34.jpg" {
		t.Fatalf("displayName = %q, want prefix stripped", file.DisplayName)
	}

	if file.Message != "speeches" {
		t.Fatalf("message = %q", file.Message)
	}

	if file.UploadTime != "2026-06-20T19:30:00Z" {
		t.Fatalf("uploadTime = %q", file.UploadTime)
	}

	if resp.ExportTime != "2026-06-21T09:00:00Z" {
		t.Fatalf("exportTime = %q", resp.ExportTime)
	}
}

func TestExportArchive(t *testing.T) {
	blobs := newFakeBlobStore()
	now := time.Now()
	seedObject(blobs, "1-a.jpg", "first image bytes", now.Add(-time.Minute))
	seedObject(blobs, "2-b.mp4", "second video bytes", now)

	svc := newTestService(blobs, newFakeCaptionStore(), nil, nil)

	var buf bytes.Buffer
	if err := svc.ExportArchive(context.Background(), &buf); err != nil {
		t.Fatalf("archive: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}

	if len(zr.File) != 2 {
		t.Fatalf("archive entries = %d, want 2", len(zr.File))
	}

	contents := map[string]string{}

	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", zf.Name, err)
		}

		data, err := io.ReadAll(rc)
		rc.Close()

		if err != nil {
			t.Fatalf("read entry %s: %v", zf.Name, err)
		}

		contents[zf.Name] = string(data)
	}

	if contents["1-a.jpg"] != "first image bytes" || contents["2-b.mp4"] != "second video bytes" {
		t.Fatalf("archive contents wrong: %v", contents)
	}
}

func TestUsage(t *testing.T) {
	blobs := newFakeBlobStore()
	seedObject(blobs, "1-a.jpg", strings.Repeat("x", 100), time.Now())
	seedObject(blobs, "2-b.jpg", strings.Repeat("x", 250), time.Now())

	svc := newTestService(blobs, newFakeCaptionStore(), nil, nil)

	resp, err := svc.Usage(context.Background())
	if err != nil {
		t.Fatalf("usage: %v", err)
	}

	if resp.Bytes != 350 || resp.Count != 2 {
		t.Fatalf("usage = %+v, want 350 bytes over 2 objects", resp)
	}
}

func TestVerifyPassword(t *testing.T) {
	svc := newTestService(newFakeBlobStore(), newFakeCaptionStore(), nil, nil)

	if !svc.VerifyPassword("secret") {
		t.Fatal("correct password rejected")
	}

	if svc.VerifyPassword("nope") {
		t.Fatal("wrong password accepted")
	}
}
