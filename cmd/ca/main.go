//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"ca-kernel/internal/app"
	"ca-kernel/internal/core"
	_ "ca-kernel/internal/sims/briansbrain"
	_ "ca-kernel/internal/sims/elementary"
	_ "ca-kernel/internal/sims/hpp"
	_ "ca-kernel/internal/sims/lenia"
	_ "ca-kernel/internal/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := core.New(cfg.Sim, cfg.SimConfig())
	if err != nil {
		log.Fatalf("build %s: %v", cfg.Sim, err)
	}

	game := app.New(sim, cfg.Scale, cfg.Seed)

	ebiten.SetWindowTitle("ca: " + sim.Name())
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	} else {
		ebiten.SetTPS(ebiten.SyncWithFPS)
	}
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
