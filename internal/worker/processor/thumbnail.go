package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"reel/internal/pkg/errors"
	"reel/internal/pkg/logger"
	"reel/internal/worker/renderer"
)

// GenerateThumbnail renders a 1280x720 title card for the video, publishes
// it and records the thumbnail URL. It renders into the shared thumbnails
// directory, not the video's processing directory, so a thumbnail request
// for a video that is mid-processing never disturbs that run's files.
func (p *Processor) GenerateThumbnail(ctx context.Context, videoID uuid.UUID, title string) (string, error) {
	ctx = logger.ContextWithVideoID(ctx, videoID.String())
	log := p.log.FromContext(ctx)
	log.Info("generating thumbnail", "title", title)

	dir, err := p.workspace.CreateThumbnails()
	if err != nil {
		return "", err
	}

	out := filepath.Join(dir, videoID.String()+".jpg")
	defer p.workspace.RemoveFile(out)
	if err := p.scenes.renderer.Run(ctx, thumbnailArgs(title, out)); err != nil {
		return "", errors.WrapWithCode(err, errors.CodeRender, "thumbnail.render", "thumbnail render failed")
	}

	url, err := p.publisher.PublishFile(ctx, out, ThumbnailKey(videoID, time.Now().UTC()))
	if err != nil {
		return "", err
	}

	if err := p.store.SetThumbnailURL(ctx, videoID, url); err != nil {
		return "", err
	}

	log.Info("thumbnail generated", "thumbnail_url", url)
	return url, nil
}

// thumbnailArgs renders a single dark frame with the title burned in,
// centered, using the bundled DejaVu bold face.
func thumbnailArgs(title, out string) []string {
	return []string{
		"-f", "lavfi",
		"-i", "color=c=0x1a1a1a:size=1280x720",
		"-vf", fmt.Sprintf(
			"drawtext=text='%s':fontcolor=white:fontsize=48:x=(w-text_w)/2:y=(h-text_h)/2:fontfile=/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
			renderer.EscapeText(title),
		),
		"-frames:v", "1",
		"-y", out,
	}
}
