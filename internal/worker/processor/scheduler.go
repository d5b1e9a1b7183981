package processor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"reel/internal/models"
	"reel/internal/pkg/errors"
	"reel/internal/pkg/logger"
)

// DefaultRenderParallelism bounds concurrent render processes when no
// explicit bound is configured. One ffmpeg per scene with no cap would
// saturate the host on long scripts.
const DefaultRenderParallelism = 4

type sceneRenderer interface {
	Render(ctx context.Context, scene models.Scene, index int, dir string) (string, error)
}

// FanOutScheduler runs all scenes of a script concurrently with bounded
// parallelism. Segment paths come back indexed by original scene position,
// not completion order: concatenation order is scene order.
type FanOutScheduler struct {
	scenes      sceneRenderer
	parallelism int
	log         *logger.Logger
}

func NewFanOutScheduler(scenes sceneRenderer, parallelism int, log *logger.Logger) *FanOutScheduler {
	if parallelism <= 0 {
		parallelism = DefaultRenderParallelism
	}
	return &FanOutScheduler{scenes: scenes, parallelism: parallelism, log: log}
}

// RenderAll renders every scene and returns the segment paths in scene
// order. The first failure cancels the group context, which aborts sibling
// renders in flight; that first error is the one returned.
func (s *FanOutScheduler) RenderAll(ctx context.Context, scenes []models.Scene, dir string) ([]string, error) {
	log := s.log.FromContext(ctx)
	log.Info("rendering scenes", "count", len(scenes), "parallelism", s.parallelism)

	segments := make([]string, len(scenes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	for i, scene := range scenes {
		g.Go(func() error {
			segment, err := s.scenes.Render(gctx, scene, i, dir)
			if err != nil {
				return errors.Wrapf(err, "scheduler.render", "scene %d failed", i)
			}
			segments[i] = segment
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return segments, nil
}
