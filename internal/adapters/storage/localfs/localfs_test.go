package localfs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reel/internal/ports"
)

func TestPutGetDelete(t *testing.T) {
	root := t.TempDir()
	l := New(root, "http://localhost:8080/media/")

	ctx := context.Background()
	key := "videos/abc/final-1.mp4"

	out, err := l.PutObject(ctx, ports.PutObjectInput{
		ObjectKey:   key,
		ContentType: "video/mp4",
		Reader:      strings.NewReader("video bytes"),
		Size:        11,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ObjectKey != key || out.Size != 11 {
		t.Errorf("unexpected put output: %+v", out)
	}

	if _, err := os.Stat(filepath.Join(root, "videos", "abc", "final-1.mp4")); err != nil {
		t.Fatalf("expected object file on disk: %v", err)
	}

	rc, contentType, size, err := l.GetObject(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close()

	data, _ := io.ReadAll(rc)
	if string(data) != "video bytes" {
		t.Errorf("unexpected object content: %s", data)
	}
	if size != 11 {
		t.Errorf("expected size=11, got %d", size)
	}
	// Extension lookup depends on the host mime table, so only require a
	// non-empty type.
	if contentType == "" {
		t.Error("expected a detected content type")
	}

	if err := l.DeleteObject(ctx, key); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "videos", "abc", "final-1.mp4")); !os.IsNotExist(err) {
		t.Errorf("expected object to be deleted, stat err: %v", err)
	}
}

func TestPutObjectRequiresKey(t *testing.T) {
	l := New(t.TempDir(), "http://localhost:8080/media")
	_, err := l.PutObject(context.Background(), ports.PutObjectInput{Reader: strings.NewReader("x")})
	if err == nil {
		t.Fatal("expected error for empty object key")
	}
}

func TestPublicURL(t *testing.T) {
	l := New("/data", "http://localhost:8080/media/")
	if got := l.PublicURL("videos/a.mp4"); got != "http://localhost:8080/media/videos/a.mp4" {
		t.Errorf("unexpected url: %s", got)
	}
	if got := l.PublicURL("/videos/a.mp4"); got != "http://localhost:8080/media/videos/a.mp4" {
		t.Errorf("expected leading slash to be normalized, got: %s", got)
	}
}
