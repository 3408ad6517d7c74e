package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	yaml := "namespace: Pad\nsurface:\n  width: 64\n  height: 32\nlog:\n  level: error\n"
	if err := os.WriteFile(filepath.Join(dir, "canvas.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name          string
		opts          Options
		width, height int64
	}{
		{"from config", Options{Dir: dir, Quiet: true}, 64, 32},
		{"override", Options{Dir: dir, Quiet: true, Width: 10, Height: 20}, 10, 20},
		{"half override ignored", Options{Dir: dir, Quiet: true, Width: 10}, 64, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			defer s.Close()
			if s.Element.Width != tt.width || s.Element.Height != tt.height {
				t.Errorf("element = %dx%d, want %dx%d", s.Element.Width, s.Element.Height, tt.width, tt.height)
			}
			img, err := s.Host.Image(s.Element.Ref())
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); int64(b.Dx()) != tt.width || int64(b.Dy()) != tt.height {
				t.Errorf("surface = %v", b)
			}
		})
	}
}

func TestCanvas2dUsesConfiguredNamespace(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "canvas.yaml"), []byte("namespace: Pad\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Open(Options{Dir: dir, Quiet: true})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx := context.Background()
	c2d, err := s.Canvas2d(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := c2d.FillRect(ctx, 0, 0, 10, 10); err != nil {
		t.Fatal(err)
	}
	if n := s.Recorder.Count("Pad.Canvas2d.callBatch"); n != 1 {
		t.Errorf("Pad callBatch count = %d, paths %v", n, s.Recorder.Paths())
	}
	if err := s.SavePNG(filepath.Join(t.TempDir(), "out.png")); err != nil {
		t.Fatal(err)
	}
}
