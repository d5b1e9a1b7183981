package worker

import (
	"context"

	"reel/internal/pkg/logger"
)

// Notifier delivers the outcome of a processing run to the requesting user.
// It is a capability boundary: a real implementation (email, webhook,
// websocket push) can be substituted without touching the handler.
type Notifier interface {
	NotifyProcessingResult(ctx context.Context, userID, videoID, status string) error
}

// LogNotifier is the documented no-op implementation: it logs the
// notification payload and delivers nothing.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.WithComponent("notifier")}
}

func (n *LogNotifier) NotifyProcessingResult(ctx context.Context, userID, videoID, status string) error {
	n.log.FromContext(ctx).Info("processing notification",
		"user_id", userID,
		"video_id", videoID,
		"status", status,
	)
	return nil
}
