package processor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"reel/internal/pkg/errors"
)

func TestPublishFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "final_video.mp4")
	if err := os.WriteFile(path, []byte("video bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	sp := newFakeSP()
	p := NewPublisher(sp)

	url, err := p.PublishFile(context.Background(), path, "videos/abc/final-1.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://storage.test/bucket/videos/abc/final-1.mp4" {
		t.Errorf("unexpected url: %s", url)
	}

	if string(sp.objects["videos/abc/final-1.mp4"]) != "video bytes" {
		t.Error("expected object content to be uploaded")
	}
	if sp.types["videos/abc/final-1.mp4"] != "video/mp4" {
		t.Errorf("expected video/mp4 content type, got %s", sp.types["videos/abc/final-1.mp4"])
	}
}

func TestPublishFileMissing(t *testing.T) {
	p := NewPublisher(newFakeSP())
	_, err := p.PublishFile(context.Background(), "/nonexistent/file.mp4", "videos/x.mp4")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsCode(err, errors.CodeUpload) {
		t.Errorf("expected upload error code, got %s", errors.GetCode(err))
	}
}

func TestPublishBytes(t *testing.T) {
	sp := newFakeSP()
	p := NewPublisher(sp)

	url, err := p.PublishBytes(context.Background(), []byte("jpeg bytes"), "thumbnails/t.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://storage.test/bucket/thumbnails/t.jpg" {
		t.Errorf("unexpected url: %s", url)
	}
	if sp.types["thumbnails/t.jpg"] != "image/jpeg" {
		t.Errorf("expected image/jpeg content type, got %s", sp.types["thumbnails/t.jpg"])
	}
}

func TestContentTypeForFile(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.mp4", "video/mp4"},
		{"b.MP4", "video/mp4"},
		{"c.jpg", "image/jpeg"},
		{"d.jpeg", "image/jpeg"},
		{"e.png", "image/png"},
		{"f.webm", "video/webm"},
		{"g.bin", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := ContentTypeForFile(tt.path); got != tt.want {
			t.Errorf("ContentTypeForFile(%s): expected %s, got %s", tt.path, tt.want, got)
		}
	}
}

func TestObjectKeys(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	ts := time.Unix(1700000000, 0).UTC()

	if got := VideoKey(id, ts); got != "videos/11111111-2222-3333-4444-555555555555/final-1700000000.mp4" {
		t.Errorf("unexpected video key: %s", got)
	}
	if got := ThumbnailKey(id, ts); got != "thumbnails/11111111-2222-3333-4444-555555555555-1700000000.jpg" {
		t.Errorf("unexpected thumbnail key: %s", got)
	}
}
