package processor

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"reel/internal/models"
	"reel/internal/pkg/errors"
	"reel/internal/pkg/logger"
	"reel/internal/ports"
	"reel/internal/worker/renderer"
)

const stageVideoAssembly = "video_assembly"

type Deps struct {
	Store       Store
	Renderer    renderer.Client
	Fetcher     Fetcher
	SP          ports.StorageProvider
	WorkRoot    string
	Parallelism int
	Log         *logger.Logger
}

// Processor orchestrates one video's processing run: parse script, mark
// producing, render scenes, concatenate, publish, record the outcome.
type Processor struct {
	store Store
	log   *logger.Logger

	workspace *Workspace
	scenes    *SceneRenderer
	scheduler *FanOutScheduler
	concat    *Concatenator
	publisher *Publisher
}

func New(d Deps) *Processor {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	log = log.WithComponent("processor")

	fetcher := d.Fetcher
	if fetcher == nil {
		fetcher = NewHTTPFetcher(0)
	}

	p := &Processor{
		store: d.Store,
		log:   log,
	}

	p.workspace = NewWorkspace(d.WorkRoot, log)
	p.scenes = NewSceneRenderer(d.Renderer, fetcher, log)
	p.scheduler = NewFanOutScheduler(p.scenes, d.Parallelism, log)
	p.concat = NewConcatenator(d.Renderer, fetcher, log)
	p.publisher = NewPublisher(d.SP)

	return p
}

// ProcessVideo drives the full state machine for one video:
// producing -> completed on success, producing -> failed on any stage
// failure. The terminal transition and the job finalization happen exactly
// once; work from earlier stages is discarded on failure, temporary files
// are cleaned up either way.
func (p *Processor) ProcessVideo(ctx context.Context, videoID uuid.UUID) error {
	ctx = logger.ContextWithVideoID(ctx, videoID.String())
	log := p.log.FromContext(ctx)

	log.Debug("loading video")
	video, err := p.store.GetVideo(ctx, videoID)
	if err != nil {
		return err
	}

	script, err := ParseScript(video.Script)
	if err != nil {
		return errors.Wrap(err, "processor.script", "failed to parse video script")
	}

	log.Debug("marking video as producing")
	if err := p.store.UpdateVideoStatus(ctx, videoID, models.VideoStatusProducing); err != nil {
		return err
	}

	jobID, err := p.store.CreateJob(ctx, videoID, stageVideoAssembly)
	if err != nil {
		return err
	}
	ctx = logger.ContextWithJobID(ctx, jobID.String())

	videoURL, runErr := p.run(ctx, video, script)
	if runErr != nil {
		return p.failRun(ctx, videoID, jobID, runErr)
	}

	// Persist the success outcome. A persistence failure here still ends the
	// run in the failed state so the transition stays single-shot.
	if err := p.store.SetVideoURL(ctx, videoID, videoURL); err != nil {
		return p.failRun(ctx, videoID, jobID, err)
	}
	if err := p.store.UpdateVideoStatus(ctx, videoID, models.VideoStatusCompleted); err != nil {
		return p.failRun(ctx, videoID, jobID, err)
	}
	if err := p.store.FinishJob(ctx, jobID, ""); err != nil {
		return err
	}

	p.log.FromContext(ctx).Info("video processing completed", "video_url", videoURL)
	return nil
}

// run executes the render -> concatenate -> publish stages inside the
// video's workspace. The workspace is removed on every path out.
func (p *Processor) run(ctx context.Context, video *models.Video, script *models.VideoScript) (string, error) {
	dir, err := p.workspace.Create(video.ID)
	if err != nil {
		return "", err
	}
	defer p.workspace.Cleanup(dir)

	segments, err := p.scheduler.RenderAll(ctx, script.Scenes, dir)
	if err != nil {
		return "", err
	}

	audioURL := ""
	if script.AudioURL != nil {
		audioURL = *script.AudioURL
	}

	outputPath := filepath.Join(dir, "final_video.mp4")
	if err := p.concat.Combine(ctx, segments, audioURL, outputPath); err != nil {
		return "", err
	}

	key := VideoKey(video.ID, time.Now().UTC())
	return p.publisher.PublishFile(ctx, outputPath, key)
}

// failRun records the failed terminal transition: video status, then the
// job record with the captured diagnostic message. Recording is best effort;
// the original cause is what comes back to the caller.
func (p *Processor) failRun(ctx context.Context, videoID, jobID uuid.UUID, cause error) error {
	log := p.log.FromContext(ctx)

	msg := cause.Error()
	if len(msg) > 2000 {
		msg = msg[:2000]
	}

	var appErr *errors.Error
	if errors.As(cause, &appErr) {
		log.Error("video processing failed",
			"code", string(appErr.Code),
			"op", appErr.Op,
			"message", appErr.Message,
		)
	} else {
		log.Error("video processing failed", "error", msg)
	}

	if err := p.store.UpdateVideoStatus(ctx, videoID, models.VideoStatusFailed); err != nil {
		log.Error("failed to record failed video status", "error", err.Error())
	}
	if err := p.store.FinishJob(ctx, jobID, msg); err != nil {
		log.Error("failed to finalize processing job", "error", err.Error())
	}

	return cause
}
