package canvas

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/go-drift/canvas/pkg/bridge"
)

// ElementRef is an opaque, host-assigned identity of a drawing surface.
// It is meaningful only to the host behind the Invoker.
type ElementRef struct {
	ID string `json:"id"`
}

// ElementID returns the identifier the host resolves the surface by.
func (r ElementRef) ElementID() string {
	return r.ID
}

// Canvas identifies one drawing surface: its reference plus the capability
// to invoke operations on the host that owns it. A Canvas is immutable and is
// borrowed, not owned, by the contexts created on it.
type Canvas struct {
	Ref     ElementRef
	Invoker bridge.Invoker
}

// NewCanvas creates a handle for the surface ref reached through inv.
func NewCanvas(ref ElementRef, inv bridge.Invoker) Canvas {
	return Canvas{Ref: ref, Invoker: inv}
}

// Element describes a canvas element as placed in a page.
type Element struct {
	ID       string
	Width    int64
	Height   int64
	CSSClass string
}

// NewElement creates an element with a random ID.
func NewElement(width, height int64) *Element {
	return &Element{
		ID:     newID(),
		Width:  width,
		Height: height,
	}
}

// Ref returns the element's surface reference.
func (e *Element) Ref() ElementRef {
	return ElementRef{ID: e.ID}
}

// Handle returns a Canvas for this element reached through inv.
func (e *Element) Handle(inv bridge.Invoker) Canvas {
	return NewCanvas(e.Ref(), inv)
}

func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("canvas: crypto/rand failed: " + err.Error())
	}
	return "canvas-" + hex.EncodeToString(b[:])
}
