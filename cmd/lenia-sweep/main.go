package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"ca-kernel/internal/sims"
	"ca-kernel/internal/sims/lenia"
	"ca-kernel/internal/sweepstore"
	"ca-kernel/pkg/cluster"
	kernel "ca-kernel/pkg/core"
)

type paramSet struct {
	mu    float64
	sigma float64
	dt    float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("mu=%.3f sigma=%.4f dt=%.2f", p.mu, p.sigma, p.dt)
}

func (p paramSet) config() kernel.Config {
	return kernel.Config{
		"mu":    strconv.FormatFloat(p.mu, 'g', -1, 64),
		"sigma": strconv.FormatFloat(p.sigma, 'g', -1, 64),
		"dt":    strconv.FormatFloat(p.dt, 'g', -1, 64),
	}
}

type scenarioResult struct {
	params  paramSet
	summary cluster.Summary
	score   float64
	died    int
	err     error
}

// floatList is a comma separated list of floats.
type floatList []float64

func (l *floatList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *floatList) Set(value string) error {
	*l = nil
	for _, f := range strings.Split(value, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return err
		}
		*l = append(*l, v)
	}
	return nil
}

func main() {
	steps := flag.Int("steps", 200, "generations to simulate per parameter set")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("w", 96, "grid width")
	height := flag.Int("h", 96, "grid height")
	seed := flag.Int64("seed", 1337, "seed for the initial blob")
	dbPath := flag.String("db", "", "SQLite file to record results in")
	name := flag.String("name", "", "sweep name stored with each result (default: timestamp)")
	top := flag.Int("top", 5, "number of results to print")
	mus := floatList{0.12, 0.15, 0.18, 0.21}
	sigmas := floatList{0.012, 0.017, 0.022, 0.03}
	dts := floatList{0.05, 0.1, 0.2}
	flag.Var(&mus, "mu", "growth centres to try")
	flag.Var(&sigmas, "sigma", "growth widths to try")
	flag.Var(&dts, "dt", "time steps to try")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := *name
	if sweep == "" {
		sweep = time.Now().UTC().Format("20060102T150405")
	}
	var store *sweepstore.Store
	if *dbPath != "" {
		var err error
		store, err = sweepstore.Open(*dbPath)
		if err != nil {
			log.Fatalf("open result store: %v", err)
		}
		defer store.Close()
	}

	var sets []paramSet
	for _, mu := range mus {
		for _, sigma := range sigmas {
			for _, dt := range dts {
				sets = append(sets, paramSet{mu: mu, sigma: sigma, dt: dt})
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	opts := sims.Options{Width: *width, Height: *height, Seed: *seed}
	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < max(*workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(opts, params, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, params := range sets {
			select {
			case jobs <- params:
			case <-ctx.Done():
				return
			}
		}
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			log.Printf("%s: %v", res.params, res.err)
			continue
		}
		all = append(all, res)
		if store == nil {
			continue
		}
		_, err := store.Save(ctx, sweepstore.Result{
			Sweep:        sweep,
			Mu:           res.params.mu,
			Sigma:        res.params.sigma,
			DT:           res.params.dt,
			Steps:        *steps,
			Seed:         *seed,
			Alive:        res.summary.Alive,
			Clusters:     res.summary.Count,
			Largest:      res.summary.Largest,
			MeanAutonomy: res.summary.MeanAutonomy,
			Score:        res.score,
		})
		if err != nil {
			log.Printf("save %s: %v", res.params, err)
		}
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d results (elapsed %s):\n", min(*top, len(all)), elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		res := all[i]
		s := res.summary
		fmt.Printf("%2d) score=%.4f alive=%d clusters=%d largest=%d autonomy=%.3f died=%d %s\n",
			i+1, res.score, s.Alive, s.Count, s.Largest, s.MeanAutonomy, res.died, res.params)
	}
	if store != nil {
		fmt.Printf("\nResults stored in %s as sweep %q\n", *dbPath, sweep)
	}
}

// runScenario steps a seeded Lenia field and scores the final state. died is
// the generation the field emptied out, or 0 if it survived.
func runScenario(opts sims.Options, params paramSet, steps int) scenarioResult {
	opts.Rule = params.config()
	s, err := sims.New(lenia.Definition(), opts)
	if err != nil {
		return scenarioResult{params: params, err: err}
	}
	died := 0
	for i := 0; i < steps; i++ {
		if err := s.Step(); err != nil {
			return scenarioResult{params: params, err: err}
		}
		if kernel.AliveCount(s.Backend()) == 0 {
			died = i + 1
			break
		}
	}
	summary := s.Summary(cluster.Options{})
	return scenarioResult{
		params:  params,
		summary: summary,
		score:   score(summary, opts.Width*opts.Height),
		died:    died,
	}
}

// score favours fields that keep a few large, self-contained structures
// without filling the grid. Empty and saturated fields score 0.
func score(s cluster.Summary, area int) float64 {
	if s.Alive == 0 || area <= 0 {
		return 0
	}
	fill := float64(s.Alive) / float64(area)
	return s.MeanAutonomy * (float64(s.Largest) / float64(s.Alive)) * fill * (1 - fill) * 4
}
