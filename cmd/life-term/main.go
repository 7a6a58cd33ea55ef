package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"lifeca/internal/app"
	"lifeca/internal/term"
)

func main() {
	fs := flag.CommandLine
	invert := fs.Bool("invert", false, "invert foreground/background colors")
	refresh := fs.Duration("refresh", term.DefaultRefresh, "screen refresh interval")
	cfg, err := app.Load(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	sess, err := cfg.NewSession()
	if err != nil {
		log.Fatalf("setup: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err = screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ui := term.New(sess, screen, term.Options{Refresh: *refresh, Invert: *invert})
	if err := ui.Run(ctx); err != nil && ctx.Err() == nil {
		screen.Fini()
		log.Fatal(err)
	}
}
