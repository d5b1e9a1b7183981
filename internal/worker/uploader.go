package worker

import (
	"context"
	"time"

	"reel/internal/models"
	"reel/internal/pkg/logger"
)

// PlatformUploader pushes a finished video to an external platform.
// The real upload flow is not implemented; the handler only depends on this
// capability so a platform client can be swapped in later.
type PlatformUploader interface {
	Upload(ctx context.Context, videoID, filePath string, meta models.UploadMetadata) error
}

// NoopUploader is the documented no-op implementation: it waits a fixed
// delay to mimic an upload round-trip and reports success without
// contacting any platform.
type NoopUploader struct {
	Delay time.Duration
	log   *logger.Logger
}

func NewNoopUploader(delay time.Duration, log *logger.Logger) *NoopUploader {
	return &NoopUploader{Delay: delay, log: log.WithComponent("uploader")}
}

func (u *NoopUploader) Upload(ctx context.Context, videoID, filePath string, meta models.UploadMetadata) error {
	u.log.FromContext(ctx).Info("platform upload (noop)",
		"video_id", videoID,
		"file_path", filePath,
		"title", meta.Title,
	)

	select {
	case <-time.After(u.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
