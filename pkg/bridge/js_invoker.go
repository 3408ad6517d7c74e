//go:build js && wasm

package bridge

import (
	"context"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/go-drift/canvas/pkg/errors"
)

// elementReferencer is implemented by surface references that name a DOM element.
type elementReferencer interface {
	ElementID() string
}

// JSInvoker reaches the host through syscall/js. Paths are resolved as
// properties of the global object, so "BlazorExtensions.Canvas2d.add" calls
// globalThis.BlazorExtensions.Canvas2d.add.
//
// Invoke blocks until a returned Promise settles. It must not be called from
// inside a js.FuncOf callback, where blocking would deadlock the event loop.
type JSInvoker struct {
	root     js.Value
	document js.Value
}

// NewJSInvoker creates an invoker rooted at js.Global().
func NewJSInvoker() *JSInvoker {
	global := js.Global()
	return &JSInvoker{root: global, document: global.Get("document")}
}

// Invoke resolves path, converts args and calls the host function.
func (j *JSInvoker) Invoke(ctx context.Context, path string, args ...any) (result any, err error) {
	segments := strings.Split(path, ".")
	target := j.root
	for _, s := range segments[:len(segments)-1] {
		target = target.Get(s)
		if target.IsUndefined() || target.IsNull() {
			return nil, fmt.Errorf("%w: %s", errors.ErrMethodNotFound, path)
		}
	}
	name := segments[len(segments)-1]
	if target.Get(name).Type() != js.TypeFunction {
		return nil, fmt.Errorf("%w: %s", errors.ErrMethodNotFound, path)
	}

	jsArgs := make([]any, len(args))
	for i, a := range args {
		v, err := j.toJS(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d of %s: %w", i, path, err)
		}
		jsArgs[i] = v
	}

	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = jsErr
				return
			}
			panic(r)
		}
	}()

	ret := target.Call(name, jsArgs...)
	if isThenable(ret) {
		ret, err = await(ctx, ret)
		if err != nil {
			return nil, err
		}
	}
	return fromJS(ret)
}

// toJS converts a Go argument into something js.ValueOf accepts.
func (j *JSInvoker) toJS(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, string, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, js.Value:
		return t, nil
	case elementReferencer:
		el := j.document.Call("getElementById", t.ElementID())
		if el.IsNull() {
			return nil, fmt.Errorf("%w: %s", errors.ErrUnknownSurface, t.ElementID())
		}
		return el, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			c, err := j.toJS(e)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			c, err := j.toJS(e)
			if err != nil {
				return nil, err
			}
			out[k] = c
		}
		return out, nil
	default:
		n, err := Normalize(v)
		if err != nil {
			return nil, err
		}
		return n, nil
	}
}

func isThenable(v js.Value) bool {
	return v.Type() == js.TypeObject && v.Get("then").Type() == js.TypeFunction
}

type settled struct {
	value js.Value
	err   error
}

// await waits for a Promise. The callbacks are released only once the
// Promise settles, even if ctx is canceled first.
func await(ctx context.Context, promise js.Value) (js.Value, error) {
	ch := make(chan settled, 1)
	onResolve := js.FuncOf(func(_ js.Value, args []js.Value) any {
		v := js.Undefined()
		if len(args) > 0 {
			v = args[0]
		}
		ch <- settled{value: v}
		return nil
	})
	onReject := js.FuncOf(func(_ js.Value, args []js.Value) any {
		reason := "promise rejected"
		if len(args) > 0 {
			reason = jsString(args[0])
		}
		ch <- settled{err: fmt.Errorf("host: %s", reason)}
		return nil
	})
	release := func() {
		onResolve.Release()
		onReject.Release()
	}
	promise.Call("then", onResolve, onReject)

	select {
	case s := <-ch:
		release()
		return s.value, s.err
	case <-ctx.Done():
		go func() {
			<-ch
			release()
		}()
		return js.Undefined(), ctx.Err()
	}
}

func jsString(v js.Value) string {
	if v.Type() == js.TypeObject && v.Get("message").Type() == js.TypeString {
		return v.Get("message").String()
	}
	return v.String()
}

// fromJS converts a host value into plain Go values.
func fromJS(v js.Value) (any, error) {
	switch v.Type() {
	case js.TypeUndefined, js.TypeNull:
		return nil, nil
	case js.TypeBoolean:
		return v.Bool(), nil
	case js.TypeNumber:
		return v.Float(), nil
	case js.TypeString:
		return v.String(), nil
	case js.TypeObject:
		if js.Global().Get("Array").Call("isArray", v).Bool() {
			out := make([]any, v.Length())
			for i := range out {
				e, err := fromJS(v.Index(i))
				if err != nil {
					return nil, err
				}
				out[i] = e
			}
			return out, nil
		}
		// Host objects such as WebGLShader keep their identity.
		if !v.Get("constructor").Equal(js.Global().Get("Object")) {
			return v, nil
		}
		text := js.Global().Get("JSON").Call("stringify", v)
		if text.Type() != js.TypeString {
			return v, nil
		}
		return DefaultCodec.Decode([]byte(text.String()))
	default:
		return v, nil
	}
}
