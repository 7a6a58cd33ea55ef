package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSize is returned when a grid dimension is not a positive integer.
	ErrInvalidSize = errors.New("invalid grid size")
	// ErrOutOfRange is returned when a coordinate lies outside the grid.
	ErrOutOfRange = errors.New("coordinate out of range")
)

// Grid stores a square grid of binary cells in row-major order.
type Grid struct {
	size int
	data []uint8
}

// NewGrid allocates an all-dead grid with size rows and size columns.
func NewGrid(size int) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Grid{size: size, data: make([]uint8, size*size)}, nil
}

// Size returns the number of rows (and columns).
func (g *Grid) Size() int { return g.size }

// Cells exposes the backing slice in row-major order. Only the owner of a
// grid may write through it; grids handed out by the engine are copies.
func (g *Grid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for (row, col).
func (g *Grid) Index(row, col int) int { return row*g.size + col }

// Contains reports whether (row, col) lies inside the grid.
func (g *Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// Wrap maps a single coordinate onto [0, size) toroidally.
func (g *Grid) Wrap(coord int) int {
	return (coord%g.size + g.size) % g.size
}

// Get returns the state of the cell at (row, col).
func (g *Grid) Get(row, col int) (bool, error) {
	if !g.Contains(row, col) {
		return false, fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfRange, row, col, g.size, g.size)
	}
	return g.data[g.Index(row, col)] != 0, nil
}

// Set updates the cell at (row, col). It is meant for edits and generators,
// never for stepping.
func (g *Grid) Set(row, col int, alive bool) error {
	if !g.Contains(row, col) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfRange, row, col, g.size, g.size)
	}
	var v uint8
	if alive {
		v = 1
	}
	g.data[g.Index(row, col)] = v
	return nil
}

// NeighborCount sums the live cells in the Moore neighbourhood of (row, col).
func (g *Grid) NeighborCount(row, col int, topo Topology) int {
	n := g.size
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if topo == Toroidal {
				r = (r + n) % n
				c = (c + n) % n
			} else if r < 0 || r >= n || c < 0 || c >= n {
				continue
			}
			count += int(g.data[r*n+c])
		}
	}
	return count
}

// Alive counts the live cells.
func (g *Grid) Alive() int {
	total := 0
	for _, c := range g.data {
		total += int(c)
	}
	return total
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{size: g.size, data: append([]uint8(nil), g.data...)}
}

// Equal reports whether both grids have the same size and cell states.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.size != other.size {
		return false
	}
	for i, c := range g.data {
		if c != other.data[i] {
			return false
		}
	}
	return true
}

// Rotate returns a copy shifted cyclically by dr rows and dc columns.
func (g *Grid) Rotate(dr, dc int) *Grid {
	out := &Grid{size: g.size, data: make([]uint8, len(g.data))}
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			out.data[g.Wrap(r+dr)*g.size+g.Wrap(c+dc)] = g.data[r*g.size+c]
		}
	}
	return out
}

// Clear marks every cell dead.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// String renders the grid with 'O' for live and '.' for dead cells.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.size * (g.size + 1))
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if g.data[r*g.size+c] != 0 {
				b.WriteByte('O')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
