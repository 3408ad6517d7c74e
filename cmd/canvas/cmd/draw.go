package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/go-drift/canvas/cmd/canvas/internal/session"
	"github.com/go-drift/canvas/cmd/canvas/internal/tui"
)

func init() {
	RegisterCommand(&Command{
		Name:  "draw",
		Short: "Draw with the mouse in the terminal",
		Long: `Open an interactive drawing surface in the terminal.

Holding the left mouse button and dragging strokes red line segments, one
boundary flush per pointer move. The calls are listed live below the
surface.

Keys:
  s     Save the surface as PNG
  c     Clear the surface
  q     Quit

Flags:
  -out FILE     PNG path for "s" (default: drawing.png)
  -config DIR   Directory holding canvas.yaml`,
		Usage: "canvas draw [-out file.png] [-config dir]",
		Run:   runDraw,
	})
}

func runDraw(args []string) error {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	out := fs.String("out", "drawing.png", "PNG output path")
	configDir := fs.String("config", "", "directory holding canvas.yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("draw needs an interactive terminal")
	}

	sess, err := session.Open(session.Options{Dir: *configDir, Quiet: true})
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx := context.Background()
	c2d, err := sess.Canvas2d(ctx)
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}

	model := tui.New(ctx, sess, c2d, *out)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return model.Err()
}
