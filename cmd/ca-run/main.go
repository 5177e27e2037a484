// Command ca-run steps a registered simulation headlessly and reports its
// cluster structure as it goes.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ca-kernel/internal/app"
	"ca-kernel/internal/core"
	_ "ca-kernel/internal/sims/briansbrain"
	_ "ca-kernel/internal/sims/elementary"
	_ "ca-kernel/internal/sims/hpp"
	_ "ca-kernel/internal/sims/lenia"
	_ "ca-kernel/internal/sims/life"
	"ca-kernel/pkg/cluster"
	kernel "ca-kernel/pkg/core"
)

type backendProvider interface {
	Backend() kernel.Backend[kernel.Vec2]
}

type summaryProvider interface {
	Summary(opts cluster.Options) cluster.Summary
}

func main() {
	cfg := app.NewConfig()
	cfg.TPS = 0
	if err := cfg.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	steps := flag.Int("steps", 100, "generations to run")
	every := flag.Int("report", 10, "print a cluster summary every n generations (0 only at the end)")
	byState := flag.Bool("by-state", false, "split clusters by cell state")
	dump := flag.String("dump", "", "write the final grid as JSON to this file")
	list := flag.Bool("list", false, "list registered simulations and exit")
	flag.Parse()

	if *list {
		for _, name := range core.Names() {
			fmt.Println(name)
		}
		return
	}

	sim, err := core.New(cfg.Sim, cfg.SimConfig())
	if err != nil {
		log.Fatalf("build %s: %v", cfg.Sim, err)
	}
	opts := cluster.Options{ByState: *byState}
	timer := core.NewFixedStep(cfg.TPS)

	start := time.Now()
	for gen := 1; gen <= *steps; gen++ {
		timer.Wait()
		if err := sim.Step(); err != nil {
			log.Fatal(err)
		}
		if *every > 0 && gen%*every == 0 && gen != *steps {
			report(sim, gen, opts)
		}
	}
	report(sim, *steps, opts)
	fmt.Printf("%s: %d generations in %s\n", sim.Name(), *steps, time.Since(start).Round(time.Millisecond))

	if *dump != "" {
		if err := writeGrid(sim, *dump); err != nil {
			log.Fatalf("dump: %v", err)
		}
	}
}

func report(sim core.Sim, gen int, opts cluster.Options) {
	p, ok := sim.(summaryProvider)
	if !ok {
		return
	}
	s := p.Summary(opts)
	fmt.Printf("gen %5d  alive=%d clusters=%d largest=%d singletons=%d mean=%.2f autonomy=%.3f\n",
		gen, s.Alive, s.Count, s.Largest, s.Singletons, s.MeanSize, s.MeanAutonomy)
}

func writeGrid(sim core.Sim, path string) error {
	p, ok := sim.(backendProvider)
	if !ok {
		return fmt.Errorf("sim %q does not expose its grid", sim.Name())
	}
	data, err := json.Marshal(p.Backend())
	if err != nil {
		return fmt.Errorf("encode grid: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
