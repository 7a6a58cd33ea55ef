package life

import (
	"golang.org/x/sync/errgroup"

	"lifeca/internal/core"
)

// minRowsPerWorker keeps tiny grids on the serial path where goroutine
// start-up would dominate.
const minRowsPerWorker = 16

// Evolve computes the generation after cur into a fresh grid and returns it
// with its live-cell count. cur is only read. With workers > 1 the rows are
// split into contiguous bands computed concurrently; the result is identical
// to the serial computation.
func Evolve(cur *core.Grid, rule Rule, topo core.Topology, workers int) (*core.Grid, int) {
	next, _ := core.NewGrid(cur.Size())
	size := cur.Size()
	bands := splitRows(size, workers)
	if len(bands) <= 1 {
		return next, evolveRows(cur, next, rule, topo, 0, size)
	}

	alive := make([]int, len(bands))
	var eg errgroup.Group
	start := 0
	for i, rows := range bands {
		from, to := start, start+rows
		start = to
		eg.Go(func() error {
			alive[i] = evolveRows(cur, next, rule, topo, from, to)
			return nil
		})
	}
	_ = eg.Wait()

	total := 0
	for _, n := range alive {
		total += n
	}
	return next, total
}

func evolveRows(cur, next *core.Grid, rule Rule, topo core.Topology, from, to int) int {
	size := cur.Size()
	src := cur.Cells()
	dst := next.Cells()
	alive := 0
	for row := from; row < to; row++ {
		for col := 0; col < size; col++ {
			idx := row*size + col
			n := cur.NeighborCount(row, col, topo)
			dst[idx] = 0
			if rule.Next(src[idx] != 0, n) {
				dst[idx] = 1
				alive++
			}
		}
	}
	return alive
}

// splitRows divides rows into at most workers bands whose sizes differ by at
// most one row.
func splitRows(rows, workers int) []int {
	if workers > rows/minRowsPerWorker {
		workers = rows / minRowsPerWorker
	}
	if workers <= 1 {
		return []int{rows}
	}
	each := rows / workers
	bigger := rows - each*workers
	bands := make([]int, 0, workers)
	for i := 0; i < workers; i++ {
		if i < bigger {
			bands = append(bands, each+1)
			continue
		}
		bands = append(bands, each)
	}
	return bands
}
