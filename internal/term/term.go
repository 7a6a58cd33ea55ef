// Package term is a terminal front end for a Life session. Each cell is two
// columns wide so the board keeps a square aspect.
package term

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"lifeca/internal/session"
)

// DefaultRefresh is how often the board is redrawn.
const DefaultRefresh = 50 * time.Millisecond

// Options tweak the terminal front end.
type Options struct {
	Refresh time.Duration
	Invert  bool
}

// UI draws a session on a tcell screen and maps keys and clicks onto it.
type UI struct {
	sess   *session.Session
	screen tcell.Screen
	opts   Options

	lastButtons tcell.ButtonMask
}

// New returns a UI for sess on an initialised screen.
func New(sess *session.Session, screen tcell.Screen, opts Options) *UI {
	if opts.Refresh <= 0 {
		opts.Refresh = DefaultRefresh
	}
	return &UI{sess: sess, screen: screen, opts: opts}
}

// Run redraws on a fixed refresh and handles events until the user quits or
// ctx is cancelled. The engine is stopped on return.
func (u *UI) Run(ctx context.Context) error {
	defer u.sess.Engine().Stop()
	u.screen.EnableMouse()
	u.screen.Clear()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go u.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(u.opts.Refresh)
	defer ticker.Stop()

	u.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			u.Draw()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if u.Handle(ev) {
				return nil
			}
			u.Draw()
		}
	}
}

// Handle applies one event and reports whether the user asked to quit.
func (u *UI) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return u.handleKey(ev)
	case *tcell.EventMouse:
		u.handleMouse(ev)
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return false
}

func (u *UI) handleKey(ev *tcell.EventKey) bool {
	engine := u.sess.Engine()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		if engine.Running() {
			engine.Stop()
		} else {
			engine.Start()
		}
	case 'n':
		engine.Step()
	case 'r':
		_ = u.sess.Reset()
	case 't':
		u.sess.ToggleTopology()
	case 'p':
		_ = u.sess.CyclePattern(1)
	case 'P':
		_ = u.sess.CyclePattern(-1)
	case ']':
		_ = u.sess.CycleRule(1)
	case '[':
		_ = u.sess.CycleRule(-1)
	case 'c':
		_ = u.sess.CycleTheme(1)
	case 'C':
		_ = u.sess.CycleTheme(-1)
	case '+', '=':
		u.sess.SetIntParameter(session.KeySpeed, u.sess.SpeedMs()-session.SpeedStepMs)
	case '-':
		u.sess.SetIntParameter(session.KeySpeed, u.sess.SpeedMs()+session.SpeedStepMs)
	case 'd':
		u.sess.SetIntParameter(session.KeyDensity, u.sess.DensityPercent()+session.DensityStepPercent)
	case 'D':
		u.sess.SetIntParameter(session.KeyDensity, u.sess.DensityPercent()-session.DensityStepPercent)
	case 'i':
		u.opts.Invert = !u.opts.Invert
	}
	return false
}

// handleMouse acts on the press edge of a button: the primary button
// toggles the cell, the secondary one drops the selected pattern there.
func (u *UI) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons &^ u.lastButtons
	u.lastButtons = buttons
	if pressed&(tcell.Button1|tcell.Button2) == 0 {
		return
	}
	x, y := ev.Position()
	row, col := y, x/2
	size := u.sess.Engine().Size()
	if x < 0 || y < 0 || row >= size || col >= size {
		return
	}
	if pressed&tcell.Button1 != 0 {
		u.sess.Engine().ToggleCell(row, col)
		return
	}
	u.sess.PlaceSelected(row, col)
}

// Draw paints the current generation and a status line below it.
func (u *UI) Draw() {
	st := u.sess.Engine().Snapshot()
	pal := u.sess.Palette()
	live := tcell.StyleDefault.Background(tcellColor(pal.Cell)).Foreground(tcellColor(pal.Bg))
	dead := tcell.StyleDefault.Background(tcellColor(pal.Bg)).Foreground(tcellColor(pal.Cell))
	if u.opts.Invert {
		live, dead = dead, live
	}

	u.screen.Clear()
	size := st.Grid.Size()
	cells := st.Grid.Cells()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			style := dead
			if cells[row*size+col] != 0 {
				style = live
			}
			u.screen.SetContent(col*2, row, ' ', nil, style)
			u.screen.SetContent(col*2+1, row, ' ', nil, style)
		}
	}

	state := "stopped"
	if st.Running {
		state = "running"
	}
	status := fmt.Sprintf("gen %d  living %d  rule %s  %s  %dms  %s  %s",
		st.Generation, st.Living, st.Rule.Notation(), st.Topology, st.Interval.Milliseconds(), u.sess.Pattern().Name, state)
	drawText(u.screen, 0, size, status, tcell.StyleDefault)
	drawText(u.screen, 0, size+1, "space run  n step  click toggle  right-click place  r reset  t topology  p pattern  [] rule  c theme  +/- speed  d/D density  q quit", tcell.StyleDefault.Dim(true))
	u.screen.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
