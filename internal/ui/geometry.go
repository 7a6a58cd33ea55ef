package ui

// MinGridLineCellPx is the smallest cell size, in pixels, at which grid
// lines are drawn; below it the lines would cover the cells.
const MinGridLineCellPx = 4

// ShowGridLines reports whether cells of cellPx pixels get grid lines.
func ShowGridLines(cellPx int) bool { return cellPx >= MinGridLineCellPx }

// CellAt maps a screen position to a cell of a size*size grid drawn at
// cellPx pixels per cell from the origin.
func CellAt(x, y, cellPx, size int) (row, col int, ok bool) {
	if cellPx <= 0 || x < 0 || y < 0 {
		return 0, 0, false
	}
	row, col = y/cellPx, x/cellPx
	if row >= size || col >= size {
		return 0, 0, false
	}
	return row, col, true
}

// HoverIndex converts a hovered cell to its row-major index, or -1.
func HoverIndex(row, col, size int, ok bool) int {
	if !ok {
		return -1
	}
	return row*size + col
}
