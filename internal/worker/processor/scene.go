package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"reel/internal/models"
	"reel/internal/pkg/errors"
	"reel/internal/pkg/logger"
	"reel/internal/worker/renderer"
)

// Every scene path emits the same codec, pixel format and resolution so the
// concatenator can stream-copy segments without re-encoding.
const (
	segmentWidth  = 1920
	segmentHeight = 1080

	// Aspect-preserving scale with centered padding to the target frame.
	scalePadFilter = "scale=1920:1080:force_original_aspect_ratio=decrease,pad=1920:1080:(ow-iw)/2:(oh-ih)/2,format=yuv420p"
)

// SceneRenderer renders one scene descriptor into a local video segment by
// invoking the external renderer with scene-type-specific arguments.
type SceneRenderer struct {
	renderer renderer.Client
	fetcher  Fetcher
	log      *logger.Logger
}

func NewSceneRenderer(rc renderer.Client, fetcher Fetcher, log *logger.Logger) *SceneRenderer {
	return &SceneRenderer{renderer: rc, fetcher: fetcher, log: log}
}

// Render dispatches on the scene's content type and writes the segment for
// scene index into dir. An unknown content type fails before any process is
// spawned.
func (r *SceneRenderer) Render(ctx context.Context, scene models.Scene, index int, dir string) (string, error) {
	segment := filepath.Join(dir, fmt.Sprintf("scene_%03d.mp4", index))

	switch scene.ContentType {
	case models.SceneTypeText:
		return r.renderText(ctx, scene, segment)
	case models.SceneTypeImage:
		return r.renderAsset(ctx, scene, segment, imageSceneArgs)
	case models.SceneTypeVideo:
		return r.renderAsset(ctx, scene, segment, videoSceneArgs)
	default:
		return "", errors.UnsupportedScene(scene.ContentType).WithField("scene", index)
	}
}

func (r *SceneRenderer) renderText(ctx context.Context, scene models.Scene, segment string) (string, error) {
	r.log.FromContext(ctx).Debug("rendering text scene", "segment", segment)

	if err := r.renderer.Run(ctx, textSceneArgs(scene, segment)); err != nil {
		return "", errors.WrapWithCode(err, errors.CodeRender, "scene.text", "text scene render failed")
	}
	return segment, nil
}

// renderAsset fetches the scene's remote asset, renders the segment from it
// and removes the asset before returning, on success and failure alike.
func (r *SceneRenderer) renderAsset(ctx context.Context, scene models.Scene, segment string, args func(models.Scene, string, string) []string) (string, error) {
	log := r.log.FromContext(ctx)
	log.Debug("fetching scene asset", "url", scene.Content, "segment", segment)

	asset, err := r.fetcher.Fetch(ctx, scene.Content, filepath.Dir(segment))
	if err != nil {
		return "", errors.Wrap(err, "scene.fetch", "scene asset fetch failed")
	}
	defer func() {
		if err := os.Remove(asset); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove scene asset", "asset", asset, "error", err.Error())
		}
	}()

	if err := r.renderer.Run(ctx, args(scene, asset, segment)); err != nil {
		return "", errors.WrapWithCode(err, errors.CodeRender, "scene."+scene.ContentType, scene.ContentType+" scene render failed")
	}
	return segment, nil
}

// textSceneArgs synthesizes a colored background with the scene text burned
// in for the scene's duration. The text is escaped before interpolation into
// the drawtext expression.
func textSceneArgs(scene models.Scene, segment string) []string {
	return []string{
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=black:size=%dx%d:duration=%s", segmentWidth, segmentHeight, formatSeconds(scene.Duration)),
		"-vf", fmt.Sprintf("drawtext=text='%s':fontcolor=white:fontsize=60:x=(w-text_w)/2:y=(h-text_h)/2", renderer.EscapeText(scene.Content)),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-y", segment,
	}
}

func imageSceneArgs(scene models.Scene, asset, segment string) []string {
	return []string{
		"-loop", "1",
		"-i", asset,
		"-t", formatSeconds(scene.Duration),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-vf", scalePadFilter,
		"-y", segment,
	}
}

func videoSceneArgs(scene models.Scene, asset, segment string) []string {
	return []string{
		"-i", asset,
		"-t", formatSeconds(scene.Duration),
		"-c:v", "libx264",
		"-c:a", "aac",
		"-pix_fmt", "yuv420p",
		"-vf", scalePadFilter,
		"-y", segment,
	}
}

func formatSeconds(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}
