package processor

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"reel/internal/pkg/errors"
)

// Fetcher retrieves a remote asset into a local file under destDir and
// returns its path. Callers own the file afterwards.
type Fetcher interface {
	Fetch(ctx context.Context, url, destDir string) (string, error)
}

// HTTPFetcher downloads assets over HTTP(S). Fetched files get a random
// name so concurrent scene fetches into one workspace never collide.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout == 0 {
		timeout = 2 * time.Minute
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeFetch, "fetch.request", "invalid asset url")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeFetch, "fetch.get", "asset download failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Newf(errors.CodeFetch, "asset download failed: http %d", resp.StatusCode).
			WithField("url", url)
	}

	dest := filepath.Join(destDir, uuid.NewString())
	out, err := os.Create(dest)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeFetch, "fetch.create", "failed to create asset file")
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = os.Remove(dest)
		return "", errors.WrapWithCode(err, errors.CodeFetch, "fetch.copy", "failed to write asset file")
	}

	return dest, nil
}
