//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"lifeca/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := app.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	sess, err := cfg.NewSession()
	if err != nil {
		log.Fatalf("setup: %v", err)
	}

	game := app.New(sess, cfg.Scale, cfg.HUDWidth)
	side := sess.Engine().Size() * cfg.Scale

	ebiten.SetWindowTitle("Game of Life")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(side+cfg.HUDWidth, side)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
