package processor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"reel/internal/pkg/logger"
)

func TestWorkspaceCreateAndCleanup(t *testing.T) {
	root := t.TempDir()
	w := NewWorkspace(root, logger.NewDefault())

	videoID := uuid.New()
	dir, err := w.Create(videoID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != filepath.Join(root, videoID.String()) {
		t.Errorf("unexpected workspace dir: %s", dir)
	}

	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		t.Fatalf("expected workspace dir to exist: %v", err)
	}

	// Creating again is a no-op.
	again, err := w.Create(videoID)
	if err != nil {
		t.Fatalf("unexpected error on repeat create: %v", err)
	}
	if again != dir {
		t.Errorf("expected same dir on repeat create, got %s", again)
	}

	if err := os.WriteFile(filepath.Join(dir, "scene_000.mp4"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	w.Cleanup(dir)
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("expected workspace dir to be removed, stat err: %v", err)
	}
}

func TestWorkspaceThumbnailsDir(t *testing.T) {
	root := t.TempDir()
	w := NewWorkspace(root, logger.NewDefault())

	dir, err := w.CreateThumbnails()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != filepath.Join(root, "thumbnails") {
		t.Errorf("unexpected thumbnails dir: %s", dir)
	}

	path := filepath.Join(dir, uuid.New().String()+".jpg")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	w.RemoveFile(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected thumbnail file to be removed, stat err: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected thumbnails dir to remain: %v", err)
	}

	// Removing a missing file stays quiet.
	w.RemoveFile(path)
	w.RemoveFile("")
}

func TestWorkspaceCleanupEmptyDir(t *testing.T) {
	w := NewWorkspace(t.TempDir(), logger.NewDefault())
	// Must not panic or remove anything.
	w.Cleanup("")
}

func TestWorkspaceDefaultRoot(t *testing.T) {
	w := NewWorkspace("", logger.NewDefault())
	if w.root != filepath.Join(os.TempDir(), "reel-worker") {
		t.Errorf("unexpected default root: %s", w.root)
	}
}
