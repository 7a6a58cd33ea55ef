//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"lifeca/internal/catalog"
	"lifeca/internal/core"
)

// GridPainter keeps one RGBA image with a pixel per cell and scales it onto
// the screen.
type GridPainter struct {
	size int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a size*size grid.
func NewGridPainter(size int) *GridPainter {
	gp := &GridPainter{}
	gp.resize(size)
	return gp
}

func (gp *GridPainter) resize(size int) {
	gp.size = size
	gp.buf = make([]byte, 4*size*size)
	gp.img = ebiten.NewImage(size, size)
}

// Blit uploads grid into the painter image and draws it at scale pixels per
// cell. hover is the row-major index of the cell under the cursor, or -1.
func (gp *GridPainter) Blit(dst *ebiten.Image, grid *core.Grid, pal catalog.Palette, hover, scale int) {
	if grid.Size() != gp.size {
		gp.resize(grid.Size())
	}
	if gp.size == 0 {
		return
	}
	fillGridRGBA(gp.buf, grid.Cells(), pal, hover)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the grid dimension the painter is sized for.
func (gp *GridPainter) Size() int { return gp.size }
