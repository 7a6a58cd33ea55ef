package life

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"lifeca/internal/core"
	pcore "lifeca/pkg/core"
)

// State is a consistent view of the engine between two steps.
type State struct {
	Grid       *core.Grid
	Generation int
	Living     int
	Running    bool
	Rule       Rule
	Topology   core.Topology
	Interval   time.Duration
}

// generation is the published triple; it is never modified after Store.
type generation struct {
	grid   *core.Grid
	number int
	living int
}

// Engine runs a Life-like automaton on a fixed square grid. The current
// generation is replaced wholesale on every step, so readers never observe a
// partially computed grid.
type Engine struct {
	cur atomic.Pointer[generation]

	// stepMu serialises step computations; mu guards everything below and
	// is never held while a next generation is computed.
	stepMu sync.Mutex
	mu     sync.Mutex

	size     int
	topology core.Topology
	rule     Rule
	interval time.Duration
	workers  int
	density  float64
	rng      *pcore.RNG

	running bool
	run     uint64
	epoch   uint64
	loop    *core.Loop
}

// New validates cfg and returns a stopped engine whose grid is a random fill
// at cfg.Density seeded from cfg.Seed.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		size:     cfg.Size,
		topology: cfg.Topology,
		rule:     cfg.Rule,
		interval: cfg.Interval,
		workers:  cfg.Workers,
		density:  cfg.Density,
		rng:      pcore.NewRNG(cfg.Seed),
	}
	grid, err := e.defaultGenerator().Generate(cfg.Size)
	if err != nil {
		return nil, err
	}
	e.publishLocked(grid, 0, grid.Alive())
	return e, nil
}

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "life" }

// Size returns the grid dimension.
func (e *Engine) Size() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.size
}

func (e *Engine) defaultGenerator() Generator {
	return Random{Density: e.density, Rand: e.rng.Source()}
}

func (e *Engine) publishLocked(grid *core.Grid, number, living int) {
	e.cur.Store(&generation{grid: grid, number: number, living: living})
}

// Configure changes grid size, topology and rule together. Invalid input is
// rejected before anything changes. A new size replaces the grid with an
// empty one, stops the engine and resets the generation counter; topology
// and rule changes apply from the next step.
func (e *Engine) Configure(size int, topo core.Topology, rule Rule) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", core.ErrInvalidSize, size)
	}
	if !topo.Valid() {
		return fmt.Errorf("%w: %d", core.ErrInvalidTopology, topo)
	}
	if err := rule.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.topology = topo
	e.rule = rule
	if size == e.size {
		return nil
	}
	grid, err := core.NewGrid(size)
	if err != nil {
		return err
	}
	e.size = size
	e.stopLocked()
	e.epoch++
	e.publishLocked(grid, 0, 0)
	return nil
}

// SetRule switches the rule used from the next step on.
func (e *Engine) SetRule(rule Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	e.rule = rule
	e.mu.Unlock()
	return nil
}

// SetTopology switches the topology used from the next step on.
func (e *Engine) SetTopology(topo core.Topology) error {
	if !topo.Valid() {
		return fmt.Errorf("%w: %d", core.ErrInvalidTopology, topo)
	}
	e.mu.Lock()
	e.topology = topo
	e.mu.Unlock()
	return nil
}

// SetDensity changes the density used when Reset is called without a
// generator.
func (e *Engine) SetDensity(density float64) error {
	if err := ValidateDensity(density); err != nil {
		return err
	}
	e.mu.Lock()
	e.density = density
	e.mu.Unlock()
	return nil
}

// SetSpeed sets the delay between generations while running. The new value
// applies from the next scheduled step.
func (e *Engine) SetSpeed(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, interval)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.interval = interval
	if e.loop != nil {
		e.loop.SetInterval(interval)
	}
	return nil
}

// Speed returns the delay between generations.
func (e *Engine) Speed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interval
}

// Reset stops the engine, rebuilds the grid with gen and zeroes the
// generation counter. A nil gen uses a random fill at the configured density.
func (e *Engine) Reset(gen Generator) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen == nil {
		gen = e.defaultGenerator()
	}
	grid, err := gen.Generate(e.size)
	if err != nil {
		return err
	}
	if grid.Size() != e.size {
		return fmt.Errorf("%w: generator produced %d, want %d", core.ErrInvalidSize, grid.Size(), e.size)
	}
	e.stopLocked()
	e.epoch++
	e.publishLocked(grid, 0, grid.Alive())
	return nil
}

// Start begins stepping every interval. It is a no-op when running.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}
	e.running = true
	e.run++
	id := e.run
	e.loop = core.NewLoop(e.interval, func() { e.advance(id) })
	e.loop.Start()
}

// Stop halts stepping. Once Stop returns no further scheduled step is
// applied. It is a no-op when stopped.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	if !e.running {
		return
	}
	e.running = false
	e.run++
	if e.loop != nil {
		e.loop.Stop()
		e.loop = nil
	}
}

// Running reports whether the engine is stepping on its own.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Step advances exactly one generation. It may be called while running or
// stopped and does not change the running state.
func (e *Engine) Step() {
	e.stepMu.Lock()
	defer e.stepMu.Unlock()
	e.stepLocked(func() bool { return true })
}

func (e *Engine) advance(id uint64) {
	e.stepMu.Lock()
	defer e.stepMu.Unlock()
	e.stepLocked(func() bool { return e.running && e.run == id })
}

// stepLocked computes the next generation with stepMu held. current is
// evaluated under mu before computing and again before publishing.
func (e *Engine) stepLocked(current func() bool) {
	e.mu.Lock()
	if !current() {
		e.mu.Unlock()
		return
	}
	prev := e.cur.Load()
	rule, topo, workers, epoch := e.rule, e.topology, e.workers, e.epoch
	e.mu.Unlock()

	next, living := Evolve(prev.grid, rule, topo, workers)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !current() || e.epoch != epoch {
		return
	}
	e.publishLocked(next, prev.number+1, living)
}

// ToggleCell flips one cell while stopped. Calls while running and
// coordinates outside the grid are ignored. It reports whether a cell
// changed.
func (e *Engine) ToggleCell(row, col int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return false
	}
	prev := e.cur.Load()
	if !prev.grid.Contains(row, col) {
		return false
	}
	grid := prev.grid.Clone()
	idx := grid.Index(row, col)
	grid.Cells()[idx] ^= 1
	living := prev.living - 1
	if grid.Cells()[idx] == 1 {
		living = prev.living + 1
	}
	e.epoch++
	e.publishLocked(grid, prev.number, living)
	return true
}

// Place stamps cells with their top-left corner at (row, col) while
// stopped, skipping cells that fall outside the grid. It returns the number
// of cells written.
func (e *Engine) Place(cells [][]bool, row, col int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return 0
	}
	prev := e.cur.Load()
	grid := prev.grid.Clone()
	written := StampAt(grid, cells, row, col)
	if written == 0 {
		return 0
	}
	e.epoch++
	e.publishLocked(grid, prev.number, grid.Alive())
	return written
}

// Grid returns a copy of the current generation.
func (e *Engine) Grid() *core.Grid { return e.cur.Load().grid.Clone() }

// Generation returns the number of completed steps since the last reset.
func (e *Engine) Generation() int { return e.cur.Load().number }

// LivingCells returns the live-cell count of the current generation.
func (e *Engine) LivingCells() int { return e.cur.Load().living }

// Snapshot returns the current generation together with the settings that
// will drive the next step.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	g := e.cur.Load()
	return State{
		Grid:       g.grid.Clone(),
		Generation: g.number,
		Living:     g.living,
		Running:    e.running,
		Rule:       e.rule,
		Topology:   e.topology,
		Interval:   e.interval,
	}
}
