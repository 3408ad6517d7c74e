// Package session wires configuration, logging and the software host into
// one place for the CLI commands.
package session

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/go-drift/canvas/pkg/bridge"
	"github.com/go-drift/canvas/pkg/canvas"
	"github.com/go-drift/canvas/pkg/canvas/canvas2d"
	"github.com/go-drift/canvas/pkg/config"
	"github.com/go-drift/canvas/pkg/errors"
	"github.com/go-drift/canvas/pkg/host/raster"
)

// Session is a configured software host with a Recorder in front of it.
type Session struct {
	Config   *config.Resolved
	Log      *zap.Logger
	Host     *raster.Host
	Recorder *bridge.Recorder
	Element  *canvas.Element
}

// Options controls how a session is opened.
type Options struct {
	// Dir is where canvas.yaml is searched from. Empty means the working
	// directory.
	Dir string

	// Quiet discards log output, for full-screen interfaces.
	Quiet bool

	// Width and Height override the configured surface size when positive.
	Width, Height int
}

// Open resolves configuration, installs the loggers and allocates the
// surface.
func Open(opts Options) (*Session, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = config.FindRoot(wd)
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	if !opts.Quiet {
		if log, err = cfg.Logger(); err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
	}
	canvas.SetLogger(log.Named("canvas"))
	bridge.SetLogger(log.Named("bridge"))
	raster.SetLogger(log.Named("raster"))
	errors.SetLogger(log)

	width, height := cfg.Width, cfg.Height
	if opts.Width > 0 && opts.Height > 0 {
		width, height = opts.Width, opts.Height
	}
	host := raster.New(raster.WithNamespace(cfg.Namespace), raster.WithSize(width, height))
	el := canvas.NewElement(int64(width), int64(height))
	if err := host.Allocate(el.Ref(), width, height); err != nil {
		return nil, err
	}

	log.Debug("session opened",
		zap.String("root", cfg.Root),
		zap.String("namespace", cfg.Namespace),
		zap.String("surface", el.ID),
		zap.Int("width", width),
		zap.Int("height", height))

	return &Session{
		Config:   cfg,
		Log:      log,
		Host:     host,
		Recorder: bridge.NewRecorder(bridge.Chain(host)),
		Element:  el,
	}, nil
}

// Canvas returns the handle for the session's surface. Invocations pass
// through the Recorder and a Tracer before reaching the host.
func (s *Session) Canvas() canvas.Canvas {
	return s.Element.Handle(bridge.NewTracer(s.Recorder, s.Log))
}

// Canvas2d creates a 2D context on the session's surface.
func (s *Session) Canvas2d(ctx context.Context) (*canvas2d.Context, error) {
	return canvas2d.Create(ctx, s.Canvas(), s.Config.Options()...)
}

// SavePNG writes the surface to path.
func (s *Session) SavePNG(path string) error {
	return s.Host.SavePNG(s.Element.Ref(), path)
}

// Close releases the surface and flushes the logger.
func (s *Session) Close() {
	s.Host.Release(s.Element.Ref())
	_ = s.Log.Sync()
}
