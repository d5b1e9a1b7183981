package processor

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"reel/internal/pkg/errors"
	"reel/internal/pkg/logger"
)

// Workspace owns the per-video temporary directory tree. Directories are
// keyed by video id, so concurrent runs for different videos never collide.
type Workspace struct {
	root string
	log  *logger.Logger
}

func NewWorkspace(root string, log *logger.Logger) *Workspace {
	if root == "" {
		root = filepath.Join(os.TempDir(), "reel-worker")
	}
	return &Workspace{root: root, log: log}
}

// Create makes the video's working directory, parents included. Calling it
// again for the same video is a no-op.
func (w *Workspace) Create(videoID uuid.UUID) (string, error) {
	dir := filepath.Join(w.root, videoID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "workspace.create", "failed to create workspace directory")
	}
	return dir, nil
}

// CreateThumbnails makes the shared thumbnails directory. Thumbnails live
// outside the per-video directories so rendering one never touches a
// concurrent processing run for the same video.
func (w *Workspace) CreateThumbnails() (string, error) {
	dir := filepath.Join(w.root, "thumbnails")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "workspace.create", "failed to create thumbnails directory")
	}
	return dir, nil
}

// RemoveFile deletes a single rendered file, leaving its directory in
// place. Best effort, like Cleanup.
func (w *Workspace) RemoveFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		w.log.Warn("failed to remove workspace file",
			"path", path,
			"error", err.Error(),
		)
	}
}

// Cleanup removes the directory tree. Best effort: a cleanup failure is
// logged and never escalated into the run's outcome.
func (w *Workspace) Cleanup(dir string) {
	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		w.log.Warn("failed to clean up workspace directory",
			"dir", dir,
			"error", err.Error(),
		)
	}
}
