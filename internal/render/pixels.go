package render

import (
	"image/color"

	"lifeca/internal/catalog"
)

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// fillGridRGBA paints one pixel per cell with the palette's cell and
// background colours. A dead cell at index hover gets the hover colour;
// pass a negative hover for none.
func fillGridRGBA(buf []byte, cells []uint8, pal catalog.Palette, hover int) {
	fillBinaryRGBA(buf, cells, pal.Cell, pal.Bg)
	if hover < 0 || hover >= len(cells) || cells[hover] != 0 {
		return
	}
	base := hover * 4
	buf[base+0] = pal.Hover.R
	buf[base+1] = pal.Hover.G
	buf[base+2] = pal.Hover.B
	buf[base+3] = pal.Hover.A
}
