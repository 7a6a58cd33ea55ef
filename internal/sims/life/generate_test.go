package life

import (
	"errors"
	"math"
	"testing"

	pcore "lifeca/pkg/core"
)

func TestRandomDensityExtremes(t *testing.T) {
	rng := pcore.NewRNG(1).Source()
	none, err := Random{Density: 0, Rand: rng}.Generate(30)
	if err != nil {
		t.Fatalf("density 0: %v", err)
	}
	if none.Alive() != 0 {
		t.Fatalf("density 0 produced %d live cells", none.Alive())
	}
	all, err := Random{Density: 1, Rand: rng}.Generate(30)
	if err != nil {
		t.Fatalf("density 1: %v", err)
	}
	if all.Alive() != 900 {
		t.Fatalf("density 1 produced %d live cells, expected 900", all.Alive())
	}
}

func TestRandomDensityConverges(t *testing.T) {
	const size = 200
	for _, d := range []float64{0.1, 0.3, 0.5} {
		g, err := NewRandom(d, nil, 2024)
		if err != nil {
			t.Fatalf("NewRandom(%v): %v", d, err)
		}
		grid, _ := g.Generate(size)
		got := float64(grid.Alive()) / float64(size*size)
		if math.Abs(got-d) > 0.02 {
			t.Fatalf("density %v produced fraction %.4f", d, got)
		}
	}
}

func TestRandomIsDeterministicForSeed(t *testing.T) {
	a, _ := NewRandom(0.4, nil, 99)
	b, _ := NewRandom(0.4, nil, 99)
	ga, _ := a.Generate(40)
	gb, _ := b.Generate(40)
	if !ga.Equal(gb) {
		t.Fatal("same seed produced different grids")
	}
}

func TestRandomRejectsInvalidDensity(t *testing.T) {
	for _, d := range []float64{-0.01, 1.01, math.NaN()} {
		if _, err := NewRandom(d, nil, 1); !errors.Is(err, ErrInvalidDensity) {
			t.Fatalf("NewRandom(%v) err=%v", d, err)
		}
		if _, err := (Random{Density: d}).Generate(5); !errors.Is(err, ErrInvalidDensity) {
			t.Fatalf("Random{%v}.Generate err=%v", d, err)
		}
	}
}

func TestStampCentersPattern(t *testing.T) {
	grid, err := Stamp{Cells: glider}.Generate(7)
	if err != nil {
		t.Fatalf("Stamp: %v", err)
	}
	// floor((7-3)/2) = 2 for both axes.
	for i, line := range glider {
		for j, want := range line {
			got, _ := grid.Get(2+i, 2+j)
			if got != want {
				t.Fatalf("cell (%d,%d)=%v, expected %v", 2+i, 2+j, got, want)
			}
		}
	}
	if grid.Alive() != 5 {
		t.Fatalf("stamped %d cells, expected 5", grid.Alive())
	}
}

func TestStampSkipsOverflow(t *testing.T) {
	big := make([][]bool, 6)
	for i := range big {
		big[i] = make([]bool, 6)
		for j := range big[i] {
			big[i][j] = true
		}
	}
	grid, err := Stamp{Cells: big}.Generate(3)
	if err != nil {
		t.Fatalf("oversized stamp errored: %v", err)
	}
	if grid.Alive() != 9 {
		t.Fatalf("oversized stamp filled %d cells, expected 9", grid.Alive())
	}

	// Odd overflow: floor((3-4)/2) = -1, so the first pattern row is dropped.
	tall := [][]bool{{true}, {false}, {false}, {false}}
	grid, _ = Stamp{Cells: tall}.Generate(3)
	if grid.Alive() != 0 {
		t.Fatalf("row at offset -1 should be skipped, grid:\n%s", grid)
	}
}

func TestStampDegenerateFallsBack(t *testing.T) {
	grid, err := Stamp{Cells: [][]bool{{}}, Fallback: Random{Density: 1}}.Generate(4)
	if err != nil {
		t.Fatalf("Stamp: %v", err)
	}
	if grid.Alive() != 16 {
		t.Fatalf("fallback fill alive=%d, expected 16", grid.Alive())
	}
	grid, err = Stamp{}.Generate(4)
	if err != nil || grid.Size() != 4 {
		t.Fatalf("default fallback: grid=%v err=%v", grid, err)
	}
}

func TestStampAtOffsets(t *testing.T) {
	grid, _ := Empty{}.Generate(4)
	if n := StampAt(grid, block, -1, -1); n != 1 {
		t.Fatalf("StampAt(-1,-1) wrote %d, expected 1", n)
	}
	if alive, _ := grid.Get(0, 0); !alive {
		t.Fatal("expected (0,0) alive")
	}
}

func TestFloorDiv(t *testing.T) {
	cases := [][3]int{{7, 2, 3}, {-1, 2, -1}, {-2, 2, -1}, {-3, 2, -2}, {0, 2, 0}}
	for _, c := range cases {
		if got := floorDiv(c[0], c[1]); got != c[2] {
			t.Fatalf("floorDiv(%d,%d)=%d, expected %d", c[0], c[1], got, c[2])
		}
	}
}

func TestEmptyRejectsZeroSize(t *testing.T) {
	if _, err := (Empty{}).Generate(0); err == nil {
		t.Fatal("expected error for size 0")
	}
}
