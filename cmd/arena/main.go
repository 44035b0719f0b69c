package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/tickbrain/internal/config"
	"github.com/zeusync/tickbrain/internal/core/events/bus"
	"github.com/zeusync/tickbrain/internal/core/observability/log"
	"github.com/zeusync/tickbrain/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "path to the arena YAML config, e.g. cmd/arena/arena.yaml")
	ticks := flag.Int("ticks", -1, "stop after this many ticks, overrides the config when >= 0")
	noMonitor := flag.Bool("no-monitor", false, "disable the websocket monitor")
	flag.Parse()

	if err := run(*configPath, *ticks, *noMonitor); err != nil {
		fmt.Fprintln(os.Stderr, "arena:", err)
		os.Exit(1)
	}
}

func run(configPath string, ticks int, noMonitor bool) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if ticks >= 0 {
		cfg.Ticks = ticks
	}
	if noMonitor {
		cfg.Monitor.Enabled = false
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	if l, ok := app.Logger.(*log.Logger); ok {
		defer func() { _ = l.Sync() }()
	}

	app.World.Events().Subscribe(bus.Wildcard, func(e bus.Event) error {
		app.Logger.Info("arena event",
			log.String("type", e.Type),
			log.Any("tick", e.Tick),
			log.String("actor", e.Actor.String()),
			log.Any("data", e.Data))
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	runCtx, finish := context.WithCancel(ctx)
	defer finish()
	g.Go(func() error {
		// a finite run ends the monitor too
		defer finish()
		return app.World.Run(runCtx, cfg.TickInterval(), cfg.Ticks, app.Monitor.Publish)
	})
	if cfg.Monitor.Enabled {
		g.Go(func() error { return app.HTTP.Run(runCtx) })
	}
	return g.Wait()
}
