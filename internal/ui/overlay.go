//go:build ebiten

package ui

import (
	"image/color"

	"lifeca/internal/catalog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay tracks the cell under the cursor and draws grid lines on top of
// the board.
type Overlay struct {
	size     int
	scale    int
	showGrid bool

	hoverRow int
	hoverCol int
	hovering bool

	pixel *ebiten.Image
}

// NewOverlay constructs an overlay for a size*size board drawn at scale
// pixels per cell.
func NewOverlay(size, scale int) *Overlay {
	o := &Overlay{size: size, scale: scale, showGrid: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update refreshes the hovered cell for a board of the given size. G toggles
// the grid lines.
func (o *Overlay) Update(size int) {
	o.size = size
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGrid = !o.showGrid
	}
	mx, my := ebiten.CursorPosition()
	o.hoverRow, o.hoverCol, o.hovering = CellAt(mx, my, o.scale, o.size)
}

// Hover returns the cell under the cursor.
func (o *Overlay) Hover() (row, col int, ok bool) {
	return o.hoverRow, o.hoverCol, o.hovering
}

// Draw renders the grid lines in the palette's line colour when cells are
// large enough to show them.
func (o *Overlay) Draw(screen *ebiten.Image, pal catalog.Palette) {
	if !o.showGrid || !ShowGridLines(o.scale) || o.size <= 0 {
		return
	}
	extent := float64(o.size * o.scale)
	for i := 1; i < o.size; i++ {
		pos := float64(i * o.scale)
		o.drawRect(screen, pos, 0, 1, extent, pal.GridLine)
		o.drawRect(screen, 0, pos, extent, 1, pal.GridLine)
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if o.pixel == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
