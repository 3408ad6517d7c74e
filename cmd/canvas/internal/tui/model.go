// Package tui is the interactive drawing surface of the CLI: the terminal
// is a canvas, the left mouse button is a pen.
package tui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/math/f64"

	"github.com/go-drift/canvas/cmd/canvas/internal/scenario"
	"github.com/go-drift/canvas/cmd/canvas/internal/session"
	"github.com/go-drift/canvas/cmd/canvas/internal/transcript"
	"github.com/go-drift/canvas/pkg/canvas/canvas2d"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	logStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(lipgloss.Color("#444444"))
)

const (
	headerRows = 2
	logRows    = 8
	footerRows = 1
)

// Model is the bubbletea model of the drawing screen.
type Model struct {
	ctx  context.Context
	sess *session.Session
	c2d  *canvas2d.Context
	out  string

	pen     scenario.Pen
	drawing bool
	strokes int

	width, height int
	log           viewport.Model
	status        string
	err           error
}

// New creates the model. The 2D context must already be created on the
// session's surface; out is where "s" saves the PNG.
func New(ctx context.Context, sess *session.Session, c2d *canvas2d.Context, out string) *Model {
	return &Model{
		ctx:    ctx,
		sess:   sess,
		c2d:    c2d,
		out:    out,
		log:    viewport.New(80, logRows),
		status: "hold the left button and drag to draw",
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.log.Width = msg.Width
		m.refreshLog()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if err := m.c2d.Close(m.ctx); err != nil {
				m.err = err
			}
			return m, tea.Quit
		case "s":
			m.save()
		case "c":
			m.clear()
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.log, cmd = m.log.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		m.mouse(msg)
	}
	return m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	pt, inside := m.cellToSurface(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return
		}
		m.drawing = true
		m.pen.MoveTo(pt)
	case tea.MouseActionMotion:
		if !m.drawing || !inside {
			return
		}
		if err := m.pen.DrawTo(m.ctx, m.c2d, pt); err != nil {
			m.err = err
			m.drawing = false
			return
		}
		m.strokes++
		m.status = fmt.Sprintf("%d strokes", m.strokes)
		m.refreshLog()
	case tea.MouseActionRelease:
		m.drawing = false
	}
}

func (m *Model) save() {
	if err := m.sess.SavePNG(m.out); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = "saved " + m.out
}

func (m *Model) clear() {
	el := m.sess.Element
	if err := m.c2d.ClearRect(m.ctx, 0, 0, float64(el.Width), float64(el.Height)); err != nil {
		m.err = err
		return
	}
	m.strokes = 0
	m.status = "cleared"
	m.refreshLog()
}

// previewSize is the number of terminal cells the surface preview covers.
func (m *Model) previewSize() (cols, rows int) {
	return max(m.width, 1), max(m.height-headerRows-logRows-footerRows-1, 1)
}

// cellToSurface maps a terminal cell to the surface pixel at its center.
func (m *Model) cellToSurface(x, y int) (f64.Vec2, bool) {
	cols, rows := m.previewSize()
	row := y - headerRows
	if x < 0 || x >= cols || row < 0 || row >= rows {
		return f64.Vec2{}, false
	}
	el := m.sess.Element
	return f64.Vec2{
		(float64(x) + 0.5) * float64(el.Width) / float64(cols),
		(float64(row) + 0.5) * float64(el.Height) / float64(rows),
	}, true
}

func (m *Model) refreshLog() {
	calls := m.sess.Recorder.Calls()
	var lines []string
	for _, inv := range calls {
		lines = append(lines, transcript.Lines(inv)...)
	}
	m.log.SetContent(strings.Join(lines, "\n"))
	m.log.GotoBottom()
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("canvas draw"))
	b.WriteString(" ")
	b.WriteString(helpStyle.Render(m.sess.Element.ID))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")

	img, err := m.sess.Host.Image(m.sess.Element.Ref())
	if err == nil {
		cols, rows := m.previewSize()
		b.WriteString(preview(img, cols, rows))
	}
	b.WriteString("\n")
	b.WriteString(logStyle.Render(m.log.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("drag: draw • s: save " + m.out + " • c: clear • ↑/↓: scroll log • q: quit"))
	return b.String()
}

// preview renders img as cols x rows colored blocks, sampling the pixel at
// the center of each cell. Runs of one color share a style.
func preview(img image.Image, cols, rows int) string {
	b := img.Bounds()
	var out strings.Builder
	for r := range rows {
		var (
			run   strings.Builder
			runOf = -1
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runOf < 0 {
				out.WriteString(run.String())
			} else {
				hex := fmt.Sprintf("#%06x", runOf)
				out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(run.String()))
			}
			run.Reset()
		}
		for c := range cols {
			x := b.Min.X + (2*c+1)*b.Dx()/(2*cols)
			y := b.Min.Y + (2*r+1)*b.Dy()/(2*rows)
			px := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			key, glyph := -1, " "
			if px.A > 0 {
				key = int(px.R)<<16 | int(px.G)<<8 | int(px.B)
				glyph = "█"
			}
			if key != runOf {
				flush()
				runOf = key
			}
			run.WriteString(glyph)
		}
		flush()
		if r < rows-1 {
			out.WriteString("\n")
		}
	}
	return out.String()
}

// Err returns the last error the model recorded.
func (m *Model) Err() error {
	return m.err
}
