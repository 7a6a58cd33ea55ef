package life

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"lifeca/internal/core"
	pcore "lifeca/pkg/core"
)

// DefaultDensity is used by random fills when no density is configured and
// by Stamp when the pattern is degenerate.
const DefaultDensity = 0.3

// ErrInvalidDensity is returned for densities outside [0,1].
var ErrInvalidDensity = errors.New("invalid density")

// Generator builds an initial grid of the requested size.
type Generator interface {
	Generate(size int) (*core.Grid, error)
}

// Empty produces an all-dead grid.
type Empty struct{}

// Generate implements Generator.
func (Empty) Generate(size int) (*core.Grid, error) {
	return core.NewGrid(size)
}

// Random marks each cell alive independently with probability Density.
type Random struct {
	Density float64
	Rand    *rand.Rand
}

// NewRandom validates density and returns a Random generator. A nil source
// is replaced by one seeded from seed.
func NewRandom(density float64, r *rand.Rand, seed int64) (Random, error) {
	if err := ValidateDensity(density); err != nil {
		return Random{}, err
	}
	if r == nil {
		r = pcore.NewRNG(seed).Source()
	}
	return Random{Density: density, Rand: r}, nil
}

// ValidateDensity reports ErrInvalidDensity for values outside [0,1].
func ValidateDensity(density float64) error {
	if density < 0 || density > 1 || density != density {
		return fmt.Errorf("%w: %v outside [0,1]", ErrInvalidDensity, density)
	}
	return nil
}

// Generate implements Generator.
func (g Random) Generate(size int) (*core.Grid, error) {
	if err := ValidateDensity(g.Density); err != nil {
		return nil, err
	}
	grid, err := core.NewGrid(size)
	if err != nil {
		return nil, err
	}
	r := g.Rand
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	pcore.FillDensity(r, grid.Cells(), g.Density)
	return grid, nil
}

// Stamp copies a pattern into the centre of an empty grid. Cells that would
// land outside the grid are skipped. A pattern without columns falls back to
// Fallback, or to a DefaultDensity random fill when Fallback is nil.
type Stamp struct {
	Cells    [][]bool
	Fallback Generator
}

// Generate implements Generator.
func (s Stamp) Generate(size int) (*core.Grid, error) {
	h, w := patternDims(s.Cells)
	if w == 0 {
		fb := s.Fallback
		if fb == nil {
			fb = Random{Density: DefaultDensity}
		}
		return fb.Generate(size)
	}
	grid, err := core.NewGrid(size)
	if err != nil {
		return nil, err
	}
	StampAt(grid, s.Cells, floorDiv(size-h, 2), floorDiv(size-w, 2))
	return grid, nil
}

// StampAt copies cells onto grid with the pattern's top-left corner at
// (row, col), skipping destinations outside the grid. It returns the number
// of cells written.
func StampAt(grid *core.Grid, cells [][]bool, row, col int) int {
	_, w := patternDims(cells)
	written := 0
	for i, line := range cells {
		for j := 0; j < w && j < len(line); j++ {
			r, c := row+i, col+j
			if !grid.Contains(r, c) {
				continue
			}
			grid.Cells()[grid.Index(r, c)] = boolCell(line[j])
			written++
		}
	}
	return written
}

func patternDims(cells [][]bool) (h, w int) {
	if len(cells) == 0 {
		return 0, 0
	}
	return len(cells), len(cells[0])
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func boolCell(alive bool) uint8 {
	if alive {
		return 1
	}
	return 0
}
