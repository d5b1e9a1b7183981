package renderer

import (
	"context"
	"strings"
	"testing"
)

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"it's", `it\'s`},
		{"'quoted'", `\'quoted\'`},
		{"", ""},
		{"a''b", `a\'\'b`},
	}
	for _, tt := range tests {
		if got := EscapeText(tt.in); got != tt.want {
			t.Errorf("EscapeText(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestTail(t *testing.T) {
	if got := tail([]byte("short output"), 2000); got != "short output" {
		t.Errorf("expected full output, got %q", got)
	}

	long := strings.Repeat("a", 3000) + "END"
	got := tail([]byte(long), 10)
	if !strings.HasPrefix(got, "...") {
		t.Errorf("expected truncation marker, got %q", got[:10])
	}
	if !strings.HasSuffix(got, "END") {
		t.Errorf("expected the end of the output to be kept, got %q", got)
	}

	if got := tail([]byte("  padded  \n"), 2000); got != "padded" {
		t.Errorf("expected trimmed output, got %q", got)
	}
}

func TestNewFFmpegDefaultsBinary(t *testing.T) {
	f := NewFFmpeg("")
	if f.bin != "ffmpeg" {
		t.Errorf("expected default binary, got %s", f.bin)
	}
}

func TestFFmpegRunMissingBinary(t *testing.T) {
	f := NewFFmpeg("/nonexistent/ffmpeg-binary")
	err := f.Run(context.Background(), []string{"-version"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "/nonexistent/ffmpeg-binary") {
		t.Errorf("expected binary path in error, got: %v", err)
	}
}
