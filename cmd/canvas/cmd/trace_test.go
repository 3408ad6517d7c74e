package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestTraceIndex(t *testing.T) {
	tests := []struct {
		name    string
		batch   bool
		batches int
	}{
		{"unbatched", false, 4},
		{"batched", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t)
			dir := t.TempDir()
			out := filepath.Join(dir, "index.png")
			args := []string{"trace", "-config", dir, "-out", out, "-width", "200", "-height", "200"}
			if tt.batch {
				args = append(args, "-batch")
			}
			if err := Execute(args); err != nil {
				t.Fatal(err)
			}

			got := buf.String()
			if n := strings.Count(got, "Canvas2d.callBatch"); n != tt.batches {
				t.Errorf("callBatch count = %d, want %d\n%s", n, tt.batches, got)
			}
			for _, want := range []string{
				"Canvas2d.add",
				`fillStyle = "green"`,
				`font = "48px serif"`,
				"fillRect(10, 100, 100, 100)",
				`strokeText("Hello Blazor!!!", 10, 100)`,
				"Canvas2d.remove",
				"saved " + out,
			} {
				if !strings.Contains(got, want) {
					t.Errorf("transcript lacks %q\n%s", want, got)
				}
			}
			if _, err := os.Stat(out); err != nil {
				t.Errorf("png not written: %v", err)
			}
		})
	}
}

func TestTraceDrawing(t *testing.T) {
	buf := capture(t)
	if err := Execute([]string{"trace", "-scenario", "drawing", "-config", t.TempDir(), "-batch"}); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if n := strings.Count(got, "stroke()"); n != 48 {
		t.Errorf("stroke count = %d, want 48", n)
	}
	if strings.Count(got, "Canvas2d.callBatch") != 1 {
		t.Errorf("drawing was not one batch\n%s", got)
	}

	buf.Reset()
	args := []string{"trace", "-scenario", "drawing", "-config", t.TempDir(), "-width", "800", "-height", "600"}
	if err := Execute(args); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "moveTo(400, 300)") {
		t.Errorf("gesture does not start at the center of 800x600\n%s", buf.String())
	}
}

func TestTraceErrors(t *testing.T) {
	capture(t)
	dir := t.TempDir()
	bad := filepath.Join(t.TempDir(), "bad")
	if err := os.Mkdir(bad, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bad, "canvas.yaml"), []byte("namespace: a.b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown scenario", []string{"trace", "-config", dir, "-scenario", "nope"}, "unknown scenario"},
		{"bad flag", []string{"trace", "-frobnicate"}, "frobnicate"},
		{"stray argument", []string{"trace", "-config", dir, "extra"}, "unexpected arguments"},
		{"bad config", []string{"trace", "-config", bad}, "namespace"},
		{"unknown command", []string{"paint"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Execute(tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestHelpAndVersion(t *testing.T) {
	buf := capture(t)
	if err := Execute(nil); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"trace", "draw", "version"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("help lacks %q", name)
		}
	}

	buf.Reset()
	if err := Execute([]string{"--version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), Version) {
		t.Errorf("version output = %q", buf.String())
	}

	buf.Reset()
	if err := Execute([]string{"trace", "--help"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "drawing") {
		t.Errorf("trace help = %q", buf.String())
	}
}
