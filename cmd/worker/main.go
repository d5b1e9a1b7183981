package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"reel/internal/pkg/logger"
	"reel/internal/pkg/shutdown"
	"reel/internal/storage"
	"reel/internal/worker"
	"reel/internal/worker/util"
)

func main() {
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Level:       util.Env("LOG_LEVEL", "info"),
		Format:      util.Env("LOG_FORMAT", "json"),
		ServiceName: "reel-worker",
		AddSource:   util.BoolEnv("LOG_SOURCE", false),
	})

	log.Info("starting reel worker", "version", "0.1.0")

	dbURL := util.MustEnv("DATABASE_URL")
	redisAddr := util.MustEnv("REDIS_ADDR")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownMgr := shutdown.NewManager(log, 30*time.Second)

	log.Info("connecting to PostgreSQL")
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.LogFatal("failed to connect to PostgreSQL", err)
	}
	shutdownMgr.Register("postgres", func(context.Context) error {
		pool.Close()
		return nil
	})
	if err := pool.Ping(ctx); err != nil {
		log.LogFatal("failed to ping PostgreSQL", err)
	}
	log.Info("PostgreSQL connected")

	log.Info("connecting to Redis")
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	shutdownMgr.Register("redis", func(context.Context) error {
		return rdb.Close()
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.LogFatal("failed to ping Redis", err)
	}
	log.Info("Redis connected")

	log.Info("initializing storage provider")
	sp, err := storage.NewProvider(ctx)
	if err != nil {
		log.LogFatal("failed to initialize storage provider", err)
	}
	log.Info("storage provider initialized", "provider", sp.Provider())

	deps := worker.Deps{
		Pool:             pool,
		RDB:              rdb,
		SP:               sp,
		Log:              log,
		FFmpegBin:        util.Env("FFMPEG_BIN", "ffmpeg"),
		WorkRoot:         util.Env("WORK_DIR", ""),
		Parallelism:      util.IntEnv("RENDER_PARALLELISM", 0),
		UploadDelay:      util.DurationEnv("UPLOAD_DELAY", 2*time.Second),
		ProcessSubject:   util.Env("PROCESS_SUBJECT", worker.DefaultProcessSubject),
		ThumbnailSubject: util.Env("THUMBNAIL_SUBJECT", worker.DefaultThumbnailSubject),
		UploadSubject:    util.Env("UPLOAD_SUBJECT", worker.DefaultUploadSubject),
	}

	runDone := make(chan struct{})

	// Registered last so it runs first on shutdown: the consume loops stop
	// and drain before the connections they use are closed.
	shutdownMgr.Register("worker-loops", func(ctx context.Context) error {
		cancel()
		select {
		case <-runDone:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	go func() {
		defer close(runDone)
		if err := worker.Run(ctx, deps); err != nil && ctx.Err() == nil {
			log.LogFatal("worker stopped unexpectedly", err)
		}
	}()

	shutdownMgr.Wait()
}
