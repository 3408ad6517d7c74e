package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/go-drift/canvas/cmd/canvas/internal/scenario"
	"github.com/go-drift/canvas/cmd/canvas/internal/session"
	"github.com/go-drift/canvas/cmd/canvas/internal/transcript"
	"github.com/go-drift/canvas/pkg/canvas"
	"github.com/go-drift/canvas/pkg/canvas/canvas2d"
)

func init() {
	var names []string
	for _, s := range scenario.All() {
		names = append(names, fmt.Sprintf("  %-10s %s", s.Name, s.Short))
	}
	RegisterCommand(&Command{
		Name:  "trace",
		Short: "Replay a scenario and print its boundary calls",
		Long: `Replay a drawing scenario against the software host.

Every call that crosses the host boundary is printed in order, so the
effect of batching is visible: without -batch each operation flushes on
its own, with -batch the whole scenario leaves as one callBatch.

Scenarios:
` + strings.Join(names, "\n") + `

Flags:
  -scenario NAME   Scenario to replay (default: index)
  -batch           Wrap the scenario in a single batch
  -out FILE        Save the rendered surface as PNG
  -config DIR      Directory holding canvas.yaml
  -width N         Surface width (default: from config)
  -height N        Surface height (default: from config)`,
		Usage: "canvas trace [-scenario index|drawing] [-batch] [-out file.png] [-config dir]",
		Run:   runTrace,
	})
}

type traceOptions struct {
	scenario      string
	batch         bool
	out           string
	configDir     string
	width, height int
}

func parseTraceFlags(args []string) (traceOptions, error) {
	var opts traceOptions
	fs := flag.NewFlagSet("trace", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.scenario, "scenario", "index", "scenario to replay")
	fs.BoolVar(&opts.batch, "batch", false, "wrap the scenario in one batch")
	fs.StringVar(&opts.out, "out", "", "PNG output path")
	fs.StringVar(&opts.configDir, "config", "", "directory holding canvas.yaml")
	fs.IntVar(&opts.width, "width", 0, "surface width")
	fs.IntVar(&opts.height, "height", 0, "surface height")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

func runTrace(args []string) error {
	opts, err := parseTraceFlags(args)
	if err != nil {
		return err
	}
	sc, ok := scenario.Lookup(opts.scenario)
	if !ok {
		return fmt.Errorf("unknown scenario %q", opts.scenario)
	}

	sess, err := session.Open(session.Options{
		Dir:    opts.configDir,
		Width:  opts.width,
		Height: opts.height,
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx := context.Background()
	c2d, err := sess.Canvas2d(ctx)
	if err != nil {
		return fmt.Errorf("create context: %w", err)
	}

	if err := replay(ctx, c2d, sess.Element, sc, opts.batch); err != nil {
		return fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	if err := c2d.Close(ctx); err != nil {
		return fmt.Errorf("close context: %w", err)
	}

	if err := transcript.Write(stdout, sess.Recorder.Calls()); err != nil {
		return err
	}
	if opts.out != "" {
		if err := sess.SavePNG(opts.out); err != nil {
			return fmt.Errorf("save %s: %w", opts.out, err)
		}
		fmt.Fprintf(stdout, "saved %s\n", opts.out)
	}
	return nil
}

func replay(ctx context.Context, c2d *canvas2d.Context, el *canvas.Element, sc scenario.Scenario, batch bool) error {
	if !batch {
		return sc.Run(ctx, c2d, el)
	}
	return c2d.Batch(ctx, func() error {
		return sc.Run(ctx, c2d, el)
	})
}
