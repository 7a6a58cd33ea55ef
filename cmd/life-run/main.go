package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"lifeca/internal/catalog"
	"lifeca/internal/sims/life"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	steps := flag.Int("steps", 100, "generations to compute with Step")
	every := flag.Int("every", 10, "print stats every n generations (0 for final only)")
	pattern := flag.String("pattern", "", "catalog pattern to start from (default: random fill)")
	runFor := flag.Duration("run", 0, "instead of stepping, run the timer for this long")
	printGrid := flag.Bool("print", false, "print the final grid")
	var overrides kvList
	flag.Var(&overrides, "set", "engine setting in key=value form (repeatable): size, topology, rule, density, seed, interval_ms, workers")
	flag.Parse()

	kv := map[string]string{}
	for _, o := range overrides {
		parts := strings.SplitN(o, "=", 2)
		if len(parts) != 2 {
			continue
		}
		kv[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	cfg := life.FromMap(kv)

	engine, err := life.New(cfg)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	if *pattern != "" {
		p, err := catalog.LookupPattern(*pattern)
		if err != nil {
			log.Fatal(err)
		}
		if err := engine.Reset(p.Generator(nil)); err != nil {
			log.Fatalf("reset: %v", err)
		}
	}

	fmt.Printf("Rule %s (%s), %dx%d %s, %d workers\n",
		cfg.Rule, cfg.Rule.Summary(), cfg.Size, cfg.Size, cfg.Topology, cfg.Workers)
	report(engine)

	start := time.Now()
	if *runFor > 0 {
		engine.Start()
		time.Sleep(*runFor)
		engine.Stop()
	} else {
		for i := 1; i <= *steps; i++ {
			engine.Step()
			if *every > 0 && i%*every == 0 {
				report(engine)
			}
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("\nFinal after %s:\n", elapsed.Round(time.Millisecond))
	report(engine)
	if *printGrid {
		fmt.Fprint(os.Stdout, engine.Grid().String())
	}
}

func report(e *life.Engine) {
	s := e.Snapshot()
	fmt.Printf("  generation %d: %d living\n", s.Generation, s.Living)
}
