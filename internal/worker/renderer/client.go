package renderer

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Client runs the external media renderer. Implementations receive a full
// argument vector; arguments are never joined into a shell string.
type Client interface {
	Run(ctx context.Context, args []string) error
}

// FFmpeg invokes the ffmpeg binary as a subprocess. A cancelled context
// kills the process, which is how sibling scene renders are aborted when
// one of them fails.
type FFmpeg struct {
	bin string
}

func NewFFmpeg(bin string) *FFmpeg {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpeg{bin: bin}
}

func (f *FFmpeg) Run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, f.bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", f.bin, strings.Join(args[:min(len(args), 4)], " "), err, tail(out, 2000))
	}
	return nil
}

// tail returns the last n bytes of process output; ffmpeg prints the actual
// failure reason at the end of its stderr.
func tail(out []byte, n int) string {
	s := strings.TrimSpace(string(out))
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}

// EscapeText escapes literal single quotes before interpolation into a
// drawtext filter expression. Scene text is arbitrary user content; an
// unescaped quote breaks (or subverts) the filter string.
func EscapeText(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
