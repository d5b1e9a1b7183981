package processor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"reel/internal/pkg/errors"
	"reel/internal/ports"
)

// Publisher uploads finished artifacts to object storage and returns their
// retrieval URLs. Uploads are not resumed or retried here; a failed upload
// fails the run.
type Publisher struct {
	sp ports.StorageProvider
}

func NewPublisher(sp ports.StorageProvider) *Publisher {
	return &Publisher{sp: sp}
}

// PublishFile uploads a local file under the given object key. Content type
// is inferred from the file extension.
func (p *Publisher) PublishFile(ctx context.Context, localPath, key string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUpload, "publish.open", "failed to open artifact")
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUpload, "publish.stat", "failed to stat artifact")
	}

	out, err := p.sp.PutObject(ctx, ports.PutObjectInput{
		ObjectKey:   key,
		ContentType: ContentTypeForFile(localPath),
		Reader:      f,
		Size:        st.Size(),
	})
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUpload, "publish.put", "artifact upload failed")
	}

	return p.sp.PublicURL(out.ObjectKey), nil
}

// PublishBytes uploads an in-memory artifact under the given object key.
func (p *Publisher) PublishBytes(ctx context.Context, data []byte, key, contentType string) (string, error) {
	out, err := p.sp.PutObject(ctx, ports.PutObjectInput{
		ObjectKey:   key,
		ContentType: contentType,
		Reader:      bytes.NewReader(data),
		Size:        int64(len(data)),
	})
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUpload, "publish.put", "artifact upload failed")
	}
	return p.sp.PublicURL(out.ObjectKey), nil
}

// ContentTypeForFile maps a file extension to its MIME type; unknown
// extensions fall back to octet-stream.
func ContentTypeForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return "video/mp4"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}

// VideoKey is the object key of a final rendered video.
func VideoKey(videoID uuid.UUID, ts time.Time) string {
	return fmt.Sprintf("videos/%s/final-%d.mp4", videoID, ts.Unix())
}

// ThumbnailKey is the object key of a generated thumbnail.
func ThumbnailKey(videoID uuid.UUID, ts time.Time) string {
	return fmt.Sprintf("thumbnails/%s-%d.jpg", videoID, ts.Unix())
}
