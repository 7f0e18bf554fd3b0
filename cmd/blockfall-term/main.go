// Command blockfall-term plays the game in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockfall/app"
	"github.com/plus3/blockfall/autoplay"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/logging"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/ui/termui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "blockfall-term:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	// stderr shares the screen, so logs go to a file unless told otherwise.
	if cfg.LogFile == "" {
		cfg.LogFile = "blockfall.log"
	}
	cfg.BindFlags(flag.CommandLine)
	demo := flag.Bool("demo", false, "let the computer play")
	demoEvery := flag.Int("demo-every", 6, "frames between computer moves")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closer, err := logging.Open(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer session.Close()

	var input loop.InputSource
	if *demo {
		player := autoplay.New()
		player.Every = *demoEvery
		input = player
	}

	scheduler := session.Build(input, termui.NewView(screen, session.Best))

	ctx, quit := context.WithCancel(ctx)
	defer quit()
	go termui.Pump(ctx, screen, scheduler, quit)

	log.Info().Bool("demo", *demo).Msg("starting")
	scheduler.Run(ctx, cfg.FrameInterval)

	log.Info().Int("score", session.Engine.Score()).Int("lines", session.Engine.Lines()).Msg("bye")
	return nil
}
