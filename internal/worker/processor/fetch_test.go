package processor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"reel/internal/pkg/errors"
)

func TestHTTPFetcherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("asset bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := NewHTTPFetcher(0)

	path, err := f.Fetch(context.Background(), srv.URL+"/asset.png", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected fetched file to exist: %v", err)
	}
	if string(data) != "asset bytes" {
		t.Errorf("unexpected file content: %s", data)
	}
}

func TestHTTPFetcherDistinctNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := NewHTTPFetcher(0)

	a, err := f.Fetch(context.Background(), srv.URL, dir)
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.Fetch(context.Background(), srv.URL, dir)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("expected distinct file names for concurrent-safe fetches")
	}
}

func TestHTTPFetcherNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(0)
	_, err := f.Fetch(context.Background(), srv.URL+"/missing", t.TempDir())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsCode(err, errors.CodeFetch) {
		t.Errorf("expected fetch error code, got %s", errors.GetCode(err))
	}
}

func TestHTTPFetcherConnectionRefused(t *testing.T) {
	f := NewHTTPFetcher(0)
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/asset", t.TempDir())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsCode(err, errors.CodeFetch) {
		t.Errorf("expected fetch error code, got %s", errors.GetCode(err))
	}
}
