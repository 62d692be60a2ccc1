// Package s3 wraps the MinIO client as the media blob store.
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Karin-Goldin/wedding-app/pkg/configs"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/types"
	nlog "github.com/Karin-Goldin/wedding-app/pkg/log"
)

// uploadCacheControl matches the cache policy served alongside public media.
const uploadCacheControl = "max-age=3600"

// Client wraps the MinIO client for the media bucket.
type Client struct {
	*minio.Client

	bucket    string
	publicURL string
}

// New initializes the MinIO client and creates the media bucket if missing.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().S3
	endpoint := cfg.Endpoint
	// allow a full scheme endpoint (http:// or https://)
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("weddingapp", configs.AppVersion)

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}

	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}

		nlog.Logger().Info().Str("bucket", cfg.Bucket).Msg("bucket created")
	}

	publicURL := configs.GetConfig().Server.PublicURL
	if publicURL == "" {
		publicURL = cfg.GetEndpointURL()
	}

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.Bucket).Msg("s3 connected")

	return &Client{
		Client:    cli,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Put stores an object with the declared content type.
func (c *Client) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	opts := minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: uploadCacheControl,
	}

	if _, err := c.PutObject(ctx, c.bucket, key, r, size, opts); err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}

	return nil
}

// Stat returns object metadata. CreatedAt is the store's LastModified, which
// is authoritative for the deletion grace period.
func (c *Client) Stat(ctx context.Context, key string) (types.StoredObject, error) {
	info, err := c.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return types.StoredObject{}, types.ErrObjectNotFound
		}

		return types.StoredObject{}, fmt.Errorf("stat object %s: %w", key, err)
	}

	return types.StoredObject{
		Key:         key,
		CreatedAt:   info.LastModified,
		SizeBytes:   info.Size,
		ContentType: info.ContentType,
	}, nil
}

// List returns every stored object, newest first.
func (c *Client) List(ctx context.Context) ([]types.StoredObject, error) {
	opts := minio.ListObjectsOptions{Recursive: true}

	var objects []types.StoredObject

	for object := range c.ListObjects(ctx, c.bucket, opts) {
		if object.Err != nil {
			return nil, fmt.Errorf("list objects: %w", object.Err)
		}

		objects = append(objects, types.StoredObject{
			Key:         object.Key,
			CreatedAt:   object.LastModified,
			SizeBytes:   object.Size,
			ContentType: object.ContentType,
		})
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].CreatedAt.After(objects[j].CreatedAt)
	})

	return objects, nil
}

// Get opens the object for reading.
func (c *Client) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := c.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}

	return obj, nil
}

// Remove deletes the object.
func (c *Client) Remove(ctx context.Context, key string) error {
	if err := c.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}

	return nil
}

// PublicURL builds the externally reachable URL for a key.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, key)
}

// HealthCheck verifies connectivity by listing buckets.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.ListBuckets(ctx)
	return err
}

// Close is a no-op, kept for interface symmetry.
func (c *Client) Close() error {
	return nil
}

// Bucket returns the configured media bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}
