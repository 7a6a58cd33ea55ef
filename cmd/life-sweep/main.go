package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"lifeca/internal/core"
	"lifeca/internal/sims/life"
)

type scenario struct {
	density float64
	seed    int64
}

type scenarioResult struct {
	scenario
	finalLiving int
	peakLiving  int
	settledAt   int
	period      int
	extinct     bool
}

func main() {
	steps := flag.Int("steps", 500, "maximum generations per scenario")
	size := flag.Int("size", 64, "grid dimension")
	seeds := flag.Int("seeds", 8, "seeds per density")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	ruleText := flag.String("rule", life.Conway.Notation(), "rule in S/B notation")
	topoText := flag.String("topology", core.Toroidal.String(), "bounded or toroidal")
	flag.Parse()

	rule, err := life.ParseRule(*ruleText)
	if err != nil {
		log.Fatal(err)
	}
	topo, err := core.ParseTopology(*topoText)
	if err != nil {
		log.Fatal(err)
	}

	base := life.DefaultConfig()
	base.Size = *size
	base.Rule = rule
	base.Topology = topo

	var sets []scenario
	for pct := 10; pct <= 50; pct += 5 {
		for s := 0; s < *seeds; s++ {
			sets = append(sets, scenario{density: float64(pct) / 100, seed: int64(1000 + s)})
		}
	}

	fmt.Printf("Sweeping %d scenarios of %s on %dx%d %s (%d workers, %d steps)\n",
		len(sets), rule, *size, *size, topo, *workers, *steps)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				res, err := runScenario(base, sc, *steps)
				if err != nil {
					log.Printf("density %.2f seed %d: %v", sc.density, sc.seed, err)
					continue
				}
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	byDensity := map[float64][]scenarioResult{}
	for res := range results {
		byDensity[res.density] = append(byDensity[res.density], res)
	}
	elapsed := time.Since(start)

	densities := make([]float64, 0, len(byDensity))
	for d := range byDensity {
		densities = append(densities, d)
	}
	sort.Float64s(densities)

	fmt.Printf("\nResults (elapsed %s):\n", elapsed.Round(time.Millisecond))
	fmt.Println("density  avgFinal  avgPeak  settled  blinking  extinct  avgSettleGen")
	for _, d := range densities {
		rs := byDensity[d]
		var final, peak, settled, blinking, extinct, settleGen int
		for _, r := range rs {
			final += r.finalLiving
			peak += r.peakLiving
			if r.settledAt >= 0 {
				settled++
				settleGen += r.settledAt
			}
			if r.period == 2 {
				blinking++
			}
			if r.extinct {
				extinct++
			}
		}
		avgSettle := 0.0
		if settled > 0 {
			avgSettle = float64(settleGen) / float64(settled)
		}
		fmt.Printf("  %4.0f%%  %8.1f  %7.1f  %3d/%-3d  %8d  %3d/%-3d  %12.1f\n",
			d*100, float64(final)/float64(len(rs)), float64(peak)/float64(len(rs)),
			settled, len(rs), blinking, extinct, len(rs), avgSettle)
	}
}

// runScenario steps a seeded random fill until it repeats with period one
// or two, or until steps generations have been computed.
func runScenario(base life.Config, sc scenario, steps int) (scenarioResult, error) {
	cfg := base
	cfg.Density = sc.density
	cfg.Seed = sc.seed
	engine, err := life.New(cfg)
	if err != nil {
		return scenarioResult{}, err
	}

	res := scenarioResult{scenario: sc, settledAt: -1, peakLiving: engine.LivingCells()}
	var prev, prev2 *core.Grid
	cur := engine.Grid()
	for i := 1; i <= steps; i++ {
		engine.Step()
		prev2, prev = prev, cur
		cur = engine.Grid()
		if n := engine.LivingCells(); n > res.peakLiving {
			res.peakLiving = n
		}
		if cur.Equal(prev) {
			res.settledAt, res.period = i-1, 1
			break
		}
		if prev2 != nil && cur.Equal(prev2) {
			res.settledAt, res.period = i-2, 2
			break
		}
	}
	res.finalLiving = engine.LivingCells()
	res.extinct = res.finalLiving == 0
	return res, nil
}
