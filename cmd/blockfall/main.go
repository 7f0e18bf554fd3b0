// Command blockfall opens a window and plays a game of falling blocks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockfall/app"
	"github.com/plus3/blockfall/autoplay"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/logging"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/ui/ebitenui"
)

const title = "blockfall"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "blockfall:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	cfg.BindFlags(flag.CommandLine)
	demo := flag.Bool("demo", false, "let the computer play")
	demoEvery := flag.Int("demo-every", 4, "frames between computer moves")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, closer, err := logging.Open(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer session.Close()

	view := ebitenui.NewView(session.Best)

	var backend *debugui_ebiten.ImguiBackend
	if cfg.Debug {
		w, h := view.Size()
		backend = debugui_ebiten.NewImguiBackend(title, w+820, max(h, 720))
	}

	var input loop.InputSource
	var keyboard *ebitenui.Keyboard
	if *demo {
		player := autoplay.New()
		player.Every = *demoEvery
		input = player
	} else {
		keyboard = ebitenui.NewKeyboard()
		keyboard.Step = cfg.FrameInterval
		input = keyboard
	}

	scheduler := session.Build(input, view)
	if cfg.Debug {
		overlay := debugui.New(scheduler)
		scheduler.Register(overlay)
		if keyboard != nil {
			keyboard.Captured = overlay.CapturesKeyboard
		}
	}

	ebiten.SetTPS(int(time.Second / cfg.FrameInterval))

	log.Info().Bool("demo", *demo).Bool("debug", cfg.Debug).Msg("starting")
	err = ebitenui.Run(&ebitenui.Game{
		Scheduler: scheduler,
		View:      view,
		Debug:     backend,
		Step:      cfg.FrameInterval,
		Done:      ctx.Done(),
	}, title)
	if err != nil {
		return err
	}

	stats := scheduler.GetStats()
	log.Info().Int64("frames", stats.Frames).Int("score", session.Engine.Score()).Msg("bye")
	return nil
}
