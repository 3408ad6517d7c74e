// Package raster is an in-process host for Canvas2d contexts, backed by the
// gg software rasterizer. It answers the same boundary paths a browser host
// script does, so bindings can be exercised and rendered without a browser.
//
//	host := raster.New()
//	c2d, err := canvas2d.Create(ctx, canvas.NewCanvas(ref, host))
//	...
//	host.SavePNG(ref, "out.png")
package raster

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gg/text"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-drift/canvas/pkg/bridge"
	"github.com/go-drift/canvas/pkg/canvas"
	"github.com/go-drift/canvas/pkg/errors"
)

// ContextName is the only context type the host renders.
const ContextName = "Canvas2d"

// Option configures a Host.
type Option func(*Host)

// WithNamespace sets the namespace the host answers under.
func WithNamespace(ns string) Option {
	return func(h *Host) {
		if ns != "" {
			h.namespace = ns
		}
	}
}

// WithSize sets the size of surfaces that are attached without Allocate.
func WithSize(width, height int) Option {
	return func(h *Host) {
		if width > 0 && height > 0 {
			h.width, h.height = width, height
		}
	}
}

// Host owns a set of surfaces and the 2D state attached to them.
// It is safe for concurrent use; calls are applied one at a time.
type Host struct {
	namespace     string
	width, height int

	mu       sync.Mutex
	surfaces map[string]*surface
	fonts    *fontCache
}

// New creates a host. Surfaces default to 300x150, like an unstyled canvas.
func New(opts ...Option) *Host {
	h := &Host{
		namespace: canvas.DefaultNamespace,
		width:     300,
		height:    150,
		surfaces:  make(map[string]*surface),
	}
	for _, opt := range opts {
		opt(h)
	}
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		Logger().Warn("default font unavailable, text will not render", zap.Error(err))
	}
	h.fonts = newFontCache(source)
	return h
}

// Allocate creates (or resizes) the surface for ref, as placing a canvas
// element of that size in a page would.
func (h *Host) Allocate(ref canvas.ElementRef, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: surface size %dx%d", errors.ErrInvalidArguments, width, height)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.surfaces[ref.ID]; ok {
		_ = s.dc.Close()
	}
	h.surfaces[ref.ID] = h.newSurface(ref.ID, width, height)
	return nil
}

// Release frees the surface for ref and everything attached to it.
func (h *Host) Release(ref canvas.ElementRef) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.surfaces[ref.ID]; ok {
		_ = s.dc.Close()
		delete(h.surfaces, ref.ID)
	}
}

// Image returns a snapshot of the surface's pixels.
func (h *Host) Image(ref canvas.ElementRef) (image.Image, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.surfaces[ref.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownSurface, ref.ID)
	}
	return s.dc.Image(), nil
}

// SavePNG writes the surface's pixels to path.
func (h *Host) SavePNG(ref canvas.ElementRef, path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.surfaces[ref.ID]
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrUnknownSurface, ref.ID)
	}
	return s.dc.SavePNG(path)
}

// Attached reports whether a 2D context is currently attached to ref.
func (h *Host) Attached(ref canvas.ElementRef) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.surfaces[ref.ID]
	return ok && s.attached
}

// Invoke implements bridge.Invoker.
func (h *Host) Invoke(ctx context.Context, path string, args ...any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ns, contextName, action, ok := bridge.SplitPath(path)
	if !ok || ns != h.namespace {
		return nil, fmt.Errorf("%w: %s", errors.ErrMethodNotFound, path)
	}
	if contextName != ContextName {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedContext, contextName)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: %s needs a surface reference", errors.ErrInvalidArguments, path)
	}
	ref, err := bridge.Decode[canvas.ElementRef](args[0])
	if err != nil || ref.ID == "" {
		return nil, fmt.Errorf("%w: bad surface reference %v", errors.ErrInvalidArguments, args[0])
	}
	rest := args[1:]

	h.mu.Lock()
	defer h.mu.Unlock()

	if action == bridge.ActionAdd {
		return nil, h.attach(ref)
	}

	s, ok := h.surfaces[ref.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownSurface, ref.ID)
	}
	if !s.attached {
		return nil, fmt.Errorf("%w: %s", errors.ErrNotInitialized, ref.ID)
	}

	switch action {
	case bridge.ActionRemove:
		s.detach()
		Logger().Debug("context removed", zap.String("surface", ref.ID))
		return nil, nil
	case bridge.ActionGetProperty:
		name, err := argList(rest).str(0)
		if err != nil {
			return nil, err
		}
		return s.getProperty(name)
	case bridge.ActionCall:
		a := argList(rest)
		method, err := a.str(0)
		if err != nil {
			return nil, err
		}
		var list []any
		if len(a) > 1 {
			if list, err = bridge.Decode[[]any](a[1]); err != nil {
				return nil, fmt.Errorf("%w: %s arguments: %v", errors.ErrInvalidArguments, method, err)
			}
		}
		return s.apply(method, true, list)
	case bridge.ActionCallBatch:
		if len(rest) == 0 {
			return nil, fmt.Errorf("%w: callBatch needs a call list", errors.ErrInvalidArguments)
		}
		return nil, s.applyBatch(rest[0])
	default:
		return nil, fmt.Errorf("%w: %s", errors.ErrMethodNotFound, path)
	}
}

func (h *Host) attach(ref canvas.ElementRef) error {
	s, ok := h.surfaces[ref.ID]
	if !ok {
		s = h.newSurface(ref.ID, h.width, h.height)
		h.surfaces[ref.ID] = s
	}
	s.attach()
	Logger().Debug("context added",
		zap.String("surface", ref.ID),
		zap.Int("width", s.dc.Width()),
		zap.Int("height", s.dc.Height()))
	return nil
}

// newSurface creates a surface that can draw the host's other surfaces.
// Callers hold h.mu.
func (h *Host) newSurface(id string, width, height int) *surface {
	s := newSurface(id, width, height, h.fonts)
	s.images = func(id string) (image.Image, bool) {
		src, ok := h.surfaces[id]
		if !ok {
			return nil, false
		}
		return src.dc.Image(), true
	}
	return s
}

var _ bridge.Invoker = (*Host)(nil)
