package ports

import (
	"context"
	"io"
)

type PutObjectInput struct {
	ObjectKey   string
	ContentType string
	Reader      io.Reader
	Size        int64
}

type PutObjectOutput struct {
	// In localfs and gcs this is the same object_key.
	// In gdrive it is the real fileId (needed to read/delete later).
	ObjectKey string
	Size      int64
}

// StorageProvider: implementations (localfs, gcs, gdrive).
type StorageProvider interface {
	Provider() string

	PutObject(ctx context.Context, in PutObjectInput) (PutObjectOutput, error)
	GetObject(ctx context.Context, objectKey string) (rc io.ReadCloser, contentType string, size int64, err error)
	DeleteObject(ctx context.Context, objectKey string) error

	// PublicURL returns the deterministic retrieval URL for an object key.
	// The artifact publisher records this URL on the video row.
	PublicURL(objectKey string) string
}
