package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"acoverlay/accessor"
	"acoverlay/config"
	"acoverlay/overlay"
	"acoverlay/process"
	"acoverlay/render"
	"acoverlay/scheduler"
	"acoverlay/window"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	log := logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "acoverlay"))

	var (
		acc *accessor.Accessor
		err error
	)
	if cfg.ReplayDir != "" {
		acc, err = accessor.AttachDump(cfg.ReplayDir, cfg.ProcessName, cfg.Pointer())
	} else {
		acc, err = accessor.Attach(nativeOpener(), cfg.ProcessName, cfg.Pointer())
	}
	if err != nil {
		return err
	}

	rect, err := window.Chain(window.Native(), cfg.StaticWindow()).Locate(cfg.WindowTitle)
	if err != nil {
		acc.Close()
		return err
	}
	log.Infoln("Overlay area", rect.String())

	session, err := overlay.NewSession(acc, overlay.Options{
		Offsets:    cfg.OffsetTable(),
		SkipFirst:  cfg.SkipFirst,
		MaxPlayers: cfg.MaxPlayers,
		Width:      rect.Width,
		Height:     rect.Height,
		Interval:   cfg.Interval,
	})
	if err != nil {
		acc.Close()
		return err
	}
	defer session.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	go pollKeys(screen, cancel)

	surface := render.NewTerminalSurface(screen, rect.Width, rect.Height)
	return scheduler.New(cfg.Interval).Run(ctx, func(context.Context) error {
		err := session.Step(surface)
		if errors.Is(err, process.ErrProcessExited) {
			log.Infoln("Target exited")
			return scheduler.ErrStop
		}
		return err
	})
}

// pollKeys cancels on q, Esc or Ctrl-C. It returns when the screen is finalised.
func pollKeys(screen tcell.Screen, cancel context.CancelFunc) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				cancel()
				return
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
