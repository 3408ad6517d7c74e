// Package transcript renders recorded boundary invocations as text.
package transcript

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-drift/canvas/pkg/bridge"
	"github.com/go-drift/canvas/pkg/canvas"
)

// Lines renders one invocation. The first line names the path and the
// surface; a callBatch adds one indented line per queued call.
func Lines(inv bridge.Invocation) []string {
	_, _, action, _ := bridge.SplitPath(inv.Path)
	args := inv.Args
	head := inv.Path
	if len(args) > 0 {
		if ref, ok := args[0].(canvas.ElementRef); ok {
			head += " " + ref.ID
			args = args[1:]
		}
	}

	if action == bridge.ActionCallBatch && len(args) == 1 {
		calls, _ := args[0].([]any)
		lines := []string{fmt.Sprintf("%s (%d calls)", head, len(calls))}
		for _, c := range calls {
			lines = append(lines, "    "+tuple(c))
		}
		return lines
	}

	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = value(a)
	}
	if len(parts) > 0 {
		head += " " + strings.Join(parts, " ")
	}
	return []string{head}
}

// tuple renders [name, isMethodCall, args...] as name(args) or name = value.
func tuple(c any) string {
	t, ok := c.([]any)
	if !ok || len(t) < 2 {
		return value(c)
	}
	name := fmt.Sprint(t[0])
	args := make([]string, len(t)-2)
	for i, a := range t[2:] {
		args[i] = value(a)
	}
	if isMethod, _ := t[1].(bool); isMethod {
		return name + "(" + strings.Join(args, ", ") + ")"
	}
	return name + " = " + strings.Join(args, ", ")
}

func value(v any) string {
	if ref, ok := v.(canvas.ElementRef); ok {
		return "<" + ref.ID + ">"
	}
	data, err := bridge.DefaultCodec.Encode(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// Write renders every invocation to w, numbering them from 1.
func Write(w io.Writer, invs []bridge.Invocation) error {
	for i, inv := range invs {
		for j, line := range Lines(inv) {
			prefix := "    "
			if j == 0 {
				prefix = fmt.Sprintf("%3d ", i+1)
			}
			if _, err := fmt.Fprintln(w, prefix+line); err != nil {
				return err
			}
		}
	}
	return nil
}
