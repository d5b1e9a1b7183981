package worker

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"reel/internal/pkg/errors"
	"reel/internal/pkg/logger"
	"reel/internal/worker/processor"
	"reel/internal/worker/queue"
	"reel/internal/worker/renderer"
)

// Default queue subjects. One Redis list per message kind.
const (
	DefaultProcessSubject   = "reel:video:process"
	DefaultThumbnailSubject = "reel:video:thumbnail"
	DefaultUploadSubject    = "reel:video:upload"
)

// Run starts one blocking consume loop per subject and returns when the
// context is canceled. A failing message never stops a loop: the error is
// logged and the next message is popped.
func Run(ctx context.Context, d Deps) error {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	log = log.WithComponent("worker")

	store := processor.NewPGStore(d.Pool)
	proc := processor.New(processor.Deps{
		Store:       store,
		Renderer:    renderer.NewFFmpeg(d.FFmpegBin),
		SP:          d.SP,
		WorkRoot:    d.WorkRoot,
		Parallelism: d.Parallelism,
		Log:         log,
	})

	uploadDelay := d.UploadDelay
	if uploadDelay == 0 {
		uploadDelay = 2 * time.Second
	}

	h := NewHandler(proc, store, NewLogNotifier(log), NewNoopUploader(uploadDelay, log), log)

	subjects := []struct {
		name   string
		handle func(context.Context, string) error
	}{
		{orDefault(d.ProcessSubject, DefaultProcessSubject), h.HandleProcessing},
		{orDefault(d.ThumbnailSubject, DefaultThumbnailSubject), h.HandleThumbnail},
		{orDefault(d.UploadSubject, DefaultUploadSubject), h.HandleUpload},
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range subjects {
		q := queue.NewRedisQueue(d.RDB, s.name)
		g.Go(func() error {
			return consume(ctx, q, s.handle, log.WithFields(map[string]any{"subject": s.name}))
		})
	}
	return g.Wait()
}

// consume pops and handles messages from one subject until the context is
// canceled. Pops run under a bounded timeout so cancellation is observed
// even when the subject stays empty.
func consume(ctx context.Context, q *queue.RedisQueue, handle func(context.Context, string) error, log *logger.Logger) error {
	log.Info("subject consumer started")

	for {
		select {
		case <-ctx.Done():
			log.Info("subject consumer stopping")
			return ctx.Err()
		default:
		}

		popCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		payload, err := q.Pop(popCtx)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				log.Info("subject consumer stopping")
				return ctx.Err()
			}
			if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, redis.Nil) {
				// Empty subject; go around again.
				continue
			}
			log.Warn("queue pop error, retrying", "error", err.Error())
			time.Sleep(1 * time.Second)
			continue
		}

		if payload == "" {
			continue
		}

		log.Info("message received")
		start := time.Now()

		if err := handle(ctx, payload); err != nil {
			// Malformed payloads are dropped, everything else was a failed
			// run that the processor already recorded.
			if errors.IsCode(err, errors.CodeMessageParse) {
				log.Warn("dropping malformed message",
					"error", err.Error(),
				)
				continue
			}
			log.Error("message handling failed",
				"error", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			continue
		}

		log.Info("message handled",
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
