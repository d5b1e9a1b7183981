package gcs

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"reel/internal/ports"
)

// Client implements ports.StorageProvider backed by a GCS bucket (or any
// GCS-compatible endpoint such as fake-gcs-server in development).
// ObjectKey maps directly to the object name inside the bucket.
type Client struct {
	client   *storage.Client
	bucket   string
	endpoint string
}

// New creates a GCS-backed provider. endpoint overrides the default API
// endpoint when non-empty; it is also the base of the public URLs.
func New(ctx context.Context, bucket, endpoint string) (*Client, error) {
	var opts []option.ClientOption
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	cl, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	if endpoint == "" {
		endpoint = "https://storage.googleapis.com"
	}

	return &Client{
		client:   cl,
		bucket:   bucket,
		endpoint: strings.TrimRight(endpoint, "/"),
	}, nil
}

func (c *Client) Provider() string { return "gcs" }

func (c *Client) Close() error { return c.client.Close() }

func (c *Client) PutObject(ctx context.Context, in ports.PutObjectInput) (ports.PutObjectOutput, error) {
	if in.ObjectKey == "" {
		return ports.PutObjectOutput{}, fmt.Errorf("object_key is required")
	}

	w := c.client.Bucket(c.bucket).Object(in.ObjectKey).NewWriter(ctx)
	if in.ContentType != "" {
		w.ContentType = in.ContentType
	}

	n, err := io.Copy(w, in.Reader)
	if err != nil {
		_ = w.Close()
		return ports.PutObjectOutput{}, fmt.Errorf("gcs upload failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return ports.PutObjectOutput{}, fmt.Errorf("gcs upload failed: %w", err)
	}

	return ports.PutObjectOutput{ObjectKey: in.ObjectKey, Size: n}, nil
}

func (c *Client) GetObject(ctx context.Context, objectKey string) (rc io.ReadCloser, contentType string, size int64, err error) {
	r, err := c.client.Bucket(c.bucket).Object(objectKey).NewReader(ctx)
	if err != nil {
		return nil, "", 0, err
	}
	return r, r.Attrs.ContentType, r.Attrs.Size, nil
}

func (c *Client) DeleteObject(ctx context.Context, objectKey string) error {
	return c.client.Bucket(c.bucket).Object(objectKey).Delete(ctx)
}

func (c *Client) PublicURL(objectKey string) string {
	return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, strings.TrimLeft(objectKey, "/"))
}
