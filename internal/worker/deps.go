package worker

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"reel/internal/pkg/logger"
	"reel/internal/ports"
)

type Deps struct {
	Pool *pgxpool.Pool
	RDB  *redis.Client
	SP   ports.StorageProvider
	Log  *logger.Logger

	// FFmpegBin is the renderer binary; defaults to "ffmpeg" on PATH.
	FFmpegBin string
	// WorkRoot hosts the per-video workspace directories.
	WorkRoot string
	// Parallelism bounds concurrent scene renders per video.
	Parallelism int
	// UploadDelay is the simulated round-trip of the no-op platform upload.
	UploadDelay time.Duration

	ProcessSubject   string
	ThumbnailSubject string
	UploadSubject    string
}
