package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"reel/internal/models"
	"reel/internal/ports"
)

// fakeClient records every argv it receives. When create is true it writes
// an empty file at the output path (the argument after "-y") the way a real
// render would.
type fakeClient struct {
	mu     sync.Mutex
	calls  [][]string
	create bool
	err    error

	// onRun, when set, runs under the lock before the default behavior.
	onRun func(args []string) error
}

func (c *fakeClient) Run(_ context.Context, args []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, append([]string(nil), args...))

	if c.onRun != nil {
		if err := c.onRun(args); err != nil {
			return err
		}
	}
	if c.err != nil {
		return c.err
	}
	if c.create {
		if out := outputArg(args); out != "" {
			if err := os.WriteFile(out, []byte("media"), 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *fakeClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func (c *fakeClient) call(i int) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[i]
}

func outputArg(args []string) string {
	for i, a := range args {
		if a == "-y" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// fakeFetcher writes a small file into destDir for every fetch.
type fakeFetcher struct {
	mu      sync.Mutex
	fetched []string
	paths   []string
	err     error
}

func (f *fakeFetcher) Fetch(_ context.Context, url, destDir string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, url)
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(destDir, fmt.Sprintf("asset_%d", len(f.paths)))
	if err := os.WriteFile(path, []byte("asset"), 0o644); err != nil {
		return "", err
	}
	f.paths = append(f.paths, path)
	return path, nil
}

// fakeSP is an in-memory StorageProvider.
type fakeSP struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newFakeSP() *fakeSP {
	return &fakeSP{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (s *fakeSP) Provider() string { return "fake" }

func (s *fakeSP) PutObject(_ context.Context, in ports.PutObjectInput) (ports.PutObjectOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return ports.PutObjectOutput{}, s.err
	}
	data, err := io.ReadAll(in.Reader)
	if err != nil {
		return ports.PutObjectOutput{}, err
	}
	s.objects[in.ObjectKey] = data
	s.types[in.ObjectKey] = in.ContentType
	return ports.PutObjectOutput{ObjectKey: in.ObjectKey, Size: int64(len(data))}, nil
}

func (s *fakeSP) GetObject(_ context.Context, objectKey string) (io.ReadCloser, string, int64, error) {
	return nil, "", 0, fmt.Errorf("not implemented")
}

func (s *fakeSP) DeleteObject(_ context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectKey)
	return nil
}

func (s *fakeSP) PublicURL(objectKey string) string {
	return "https://storage.test/bucket/" + objectKey
}

// fakeStore records every state transition in order.
type fakeStore struct {
	mu    sync.Mutex
	video *models.Video

	statuses     []string
	videoURL     string
	thumbnailURL string
	published    bool

	jobID       uuid.UUID
	jobStage    string
	finishCalls []string

	getErr    error
	statusErr error
	urlErr    error
}

func newFakeStore(video *models.Video) *fakeStore {
	return &fakeStore{video: video, jobID: uuid.New()}
}

func (s *fakeStore) GetVideo(_ context.Context, id uuid.UUID) (*models.Video, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.video, nil
}

func (s *fakeStore) UpdateVideoStatus(_ context.Context, _ uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statusErr != nil {
		return s.statusErr
	}
	s.statuses = append(s.statuses, status)
	return nil
}

func (s *fakeStore) SetVideoURL(_ context.Context, _ uuid.UUID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.urlErr != nil {
		return s.urlErr
	}
	s.videoURL = url
	return nil
}

func (s *fakeStore) SetThumbnailURL(_ context.Context, _ uuid.UUID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thumbnailURL = url
	return nil
}

func (s *fakeStore) MarkVideoPublished(_ context.Context, _ uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = true
	return nil
}

func (s *fakeStore) CreateJob(_ context.Context, _ uuid.UUID, stage string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobStage = stage
	return s.jobID, nil
}

func (s *fakeStore) FinishJob(_ context.Context, _ uuid.UUID, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishCalls = append(s.finishCalls, errMsg)
	return nil
}
