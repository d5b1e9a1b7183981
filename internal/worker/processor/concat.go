package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"reel/internal/pkg/errors"
	"reel/internal/pkg/logger"
	"reel/internal/worker/renderer"
)

// Concatenator joins ordered segments (plus an optional audio track) into
// one output file via a concat manifest consumed by the external renderer.
type Concatenator struct {
	renderer renderer.Client
	fetcher  Fetcher
	log      *logger.Logger
}

func NewConcatenator(rc renderer.Client, fetcher Fetcher, log *logger.Logger) *Concatenator {
	return &Concatenator{renderer: rc, fetcher: fetcher, log: log}
}

// Combine concatenates segments in the given order into outputPath.
// Without audio the segments are stream-copied. With audio the track is
// downloaded and mixed in, truncating to the shorter of the two inputs
// rather than padding. Manifest and downloaded audio are removed on both
// success and failure.
func (c *Concatenator) Combine(ctx context.Context, segments []string, audioURL, outputPath string) error {
	log := c.log.FromContext(ctx)
	log.Info("combining segments", "count", len(segments), "with_audio", audioURL != "")

	if len(segments) == 0 {
		return errors.Validation("no segments to combine")
	}

	manifest := filepath.Join(filepath.Dir(outputPath), "concat_list.txt")
	if err := os.WriteFile(manifest, []byte(concatManifest(segments)), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.CodeConcat, "concat.manifest", "failed to write concat manifest")
	}
	defer func() { _ = os.Remove(manifest) }()

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
	}

	if audioURL != "" {
		audioPath, err := c.fetcher.Fetch(ctx, audioURL, filepath.Dir(outputPath))
		if err != nil {
			return errors.Wrap(err, "concat.audio", "audio track fetch failed")
		}
		defer func() { _ = os.Remove(audioPath) }()

		args = append(args,
			"-i", audioPath,
			"-c:v", "copy",
			"-c:a", "aac",
			// Stop at the shortest input stream instead of padding.
			"-shortest",
		)
		args = append(args, "-y", outputPath)
		return c.run(ctx, args)
	}

	args = append(args, "-c", "copy", "-y", outputPath)
	return c.run(ctx, args)
}

func (c *Concatenator) run(ctx context.Context, args []string) error {
	if err := c.renderer.Run(ctx, args); err != nil {
		return errors.WrapWithCode(err, errors.CodeConcat, "concat.run", "segment concatenation failed")
	}
	return nil
}

// concatManifest lists segment paths in order, one quoted entry per line,
// in the concat demuxer's format.
func concatManifest(segments []string) string {
	var b strings.Builder
	for _, s := range segments {
		fmt.Fprintf(&b, "file '%s'\n", s)
	}
	return b.String()
}
