//go:build ebiten

package app

import (
	"log"

	"lifeca/internal/render"
	"lifeca/internal/session"
	"lifeca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a Life session to the ebiten.Game interface. The engine steps
// on its own timer; Update only handles input and Draw shows the latest
// generation.
type Game struct {
	sess    *session.Session
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale    int
	hudWidth int
}

// New constructs a Game for the provided session.
func New(sess *session.Session, scale, hudWidth int) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := sess.Engine().Size()
	g := &Game{
		sess:     sess,
		painter:  render.NewGridPainter(size),
		overlay:  ui.NewOverlay(size, scale),
		scale:    scale,
		hudWidth: hudWidth,
	}
	if hudWidth > 0 {
		g.hud = ui.NewHUD(sess, "Game of Life", hudWidth)
	}
	return g
}

// Update handles per-frame input.
func (g *Game) Update() error {
	engine := g.sess.Engine()
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		engine.Stop()
		return ebiten.Termination
	}
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if engine.Running() {
			engine.Stop()
		} else {
			engine.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		engine.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		logErr("reset", g.sess.Reset())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.sess.ToggleTopology()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		logErr("pattern", g.sess.CyclePattern(direction(shift)))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		logErr("rule", g.sess.CycleRule(1))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		logErr("rule", g.sess.CycleRule(-1))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		logErr("theme", g.sess.CycleTheme(direction(shift)))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.sess.SetIntParameter(session.KeySpeed, g.sess.SpeedMs()-session.SpeedStepMs)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.sess.SetIntParameter(session.KeySpeed, g.sess.SpeedMs()+session.SpeedStepMs)
	}

	size := engine.Size()
	g.overlay.Update(size)
	if row, col, ok := g.overlay.Hover(); ok {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			engine.ToggleCell(row, col)
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
			g.sess.PlaceSelected(row, col)
		}
	}
	g.hud.Update(size * g.scale)
	return nil
}

// Draw renders the current generation.
func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.sess.Engine().Grid()
	pal := g.sess.Palette()
	screen.Fill(pal.Bg)

	row, col, ok := g.overlay.Hover()
	if g.sess.Engine().Running() {
		ok = false
	}
	g.painter.Blit(screen, grid, pal, ui.HoverIndex(row, col, grid.Size(), ok), g.scale)
	g.overlay.Draw(screen, pal)
	g.hud.Draw(screen, grid.Size()*g.scale, grid.Size()*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	side := g.sess.Engine().Size() * g.scale
	return side + g.hudWidth, side
}

func direction(reverse bool) int {
	if reverse {
		return -1
	}
	return 1
}

func logErr(action string, err error) {
	if err != nil {
		log.Printf("%s: %v", action, err)
	}
}
