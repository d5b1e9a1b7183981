package worker

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"reel/internal/models"
	"reel/internal/pkg/errors"
	"reel/internal/pkg/logger"
	"reel/internal/worker/processor"
)

// Handler dispatches parsed queue messages to the pipeline. A handler error
// is logged by the run loop and never crashes the worker; the failed run is
// already recorded in the store by the processor.
type Handler struct {
	proc     *processor.Processor
	store    processor.Store
	notifier Notifier
	uploader PlatformUploader
	log      *logger.Logger
}

func NewHandler(proc *processor.Processor, store processor.Store, notifier Notifier, uploader PlatformUploader, log *logger.Logger) *Handler {
	return &Handler{
		proc:     proc,
		store:    store,
		notifier: notifier,
		uploader: uploader,
		log:      log.WithComponent("handler"),
	}
}

// HandleProcessing runs the assembly pipeline for a start_processing
// message. Other actions are ignored with a warning.
func (h *Handler) HandleProcessing(ctx context.Context, payload string) error {
	var msg models.ProcessingMessage
	if err := parseMessage(payload, &msg); err != nil {
		return err
	}

	log := h.log.FromContext(ctx).WithVideoID(msg.VideoID)

	if msg.Action != models.ActionStartProcessing {
		log.Warn("ignoring unknown processing action", "action", msg.Action)
		return nil
	}

	videoID, err := uuid.Parse(msg.VideoID)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeMessageParse, "handler.processing", "invalid video_id")
	}

	if err := h.proc.ProcessVideo(ctx, videoID); err != nil {
		h.notify(ctx, msg.UserID, msg.VideoID, models.VideoStatusFailed)
		return err
	}

	h.notify(ctx, msg.UserID, msg.VideoID, models.VideoStatusCompleted)
	return nil
}

// HandleThumbnail renders and publishes a title-card thumbnail.
func (h *Handler) HandleThumbnail(ctx context.Context, payload string) error {
	var msg models.ThumbnailMessage
	if err := parseMessage(payload, &msg); err != nil {
		return err
	}

	videoID, err := uuid.Parse(msg.VideoID)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeMessageParse, "handler.thumbnail", "invalid video_id")
	}

	_, err = h.proc.GenerateThumbnail(ctx, videoID, msg.Title)
	return err
}

// HandleUpload finalizes an external-platform upload: the uploader
// capability runs (a no-op today), then the video is marked published.
func (h *Handler) HandleUpload(ctx context.Context, payload string) error {
	var msg models.UploadMessage
	if err := parseMessage(payload, &msg); err != nil {
		return err
	}

	videoID, err := uuid.Parse(msg.VideoID)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeMessageParse, "handler.upload", "invalid video_id")
	}

	if err := h.uploader.Upload(ctx, msg.VideoID, msg.FilePath, msg.Metadata); err != nil {
		return errors.Wrap(err, "handler.upload", "platform upload failed")
	}

	return h.store.MarkVideoPublished(ctx, videoID)
}

func (h *Handler) notify(ctx context.Context, userID, videoID, status string) {
	if err := h.notifier.NotifyProcessingResult(ctx, userID, videoID, status); err != nil {
		h.log.FromContext(ctx).Warn("failed to send processing notification",
			"video_id", videoID,
			"error", err.Error(),
		)
	}
}

func parseMessage(payload string, v any) error {
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return errors.WrapWithCode(err, errors.CodeMessageParse, "handler.parse", "malformed queue message")
	}
	return nil
}
