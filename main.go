package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/AkatukiSora/pokergraph/internal/application"
	"github.com/AkatukiSora/pokergraph/internal/applog"
	"github.com/AkatukiSora/pokergraph/internal/config"
	"github.com/AkatukiSora/pokergraph/internal/debugserver"
	"github.com/AkatukiSora/pokergraph/internal/filter"
	"github.com/AkatukiSora/pokergraph/internal/persistence"
	"github.com/AkatukiSora/pokergraph/internal/plot"
	"github.com/AkatukiSora/pokergraph/internal/ui"
)

var (
	version   = "dev"
	commit    = "local"
	buildDate = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to pokergraph.toml")
		debug      = flag.Bool("debug", false, "enable debug logging")
		logFile    = flag.String("log", "", `log file path ("-" for stderr only)`)
		addr       = flag.String("addr", "", "serve /metrics and /graph.png on this address")
		exportPath = flag.String("export", "", "render the ring graph with default filters to this PNG and exit")
		tourney    = flag.Bool("tourney", false, "with -export, graph tournament results")
	)
	flag.Parse()

	if err := run(*configPath, *debug, *logFile, *addr, *exportPath, *tourney); err != nil {
		fmt.Fprintln(os.Stderr, "pokergraph:", err)
		os.Exit(1)
	}
}

func run(configPath string, debug bool, logFile, addr, exportPath string, tourney bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	closeLog := applog.Init(applog.Options{Debug: debug || cfg.Debug, File: logFile})
	defer closeLog()
	slog.Info("starting", "version", version, "commit", commit, "build_date", buildDate)

	openCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := persistence.Open(openCtx, cfg.Database)
	if err != nil {
		cancel()
		return err
	}
	if n, err := store.HandCount(openCtx); err == nil {
		slog.Info("hands in database", "count", n)
	} else {
		slog.Warn("count hands", "error", err)
	}
	cancel()
	service := application.NewService(store, cfg)
	size := plot.Size{Width: cfg.Graph.Width, Height: cfg.Graph.Height}

	if exportPath != "" {
		defer service.Close()
		display := filter.GraphDisplay()
		if tourney {
			display = filter.TourneyDisplay()
		}
		return exportOnce(service, display, size, exportPath)
	}

	if addr == "" {
		addr = cfg.DebugAddr
	}
	if addr != "" {
		srv, err := debugserver.Start(addr, service)
		if err != nil {
			slog.Warn("debug server disabled", "error", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = srv.Shutdown(ctx)
			}()
		}
	}

	meta := ui.Meta{Version: version, GraphSize: size}
	if cfg.Database.Driver == config.DriverSQLite {
		meta.DBPath = cfg.Database.Path
	}
	ui.Run(service, meta)
	return nil
}

// exportOnce draws one graph with every filter option selected and writes
// it without starting the window.
func exportOnce(service *application.Service, display filter.Display, size plot.Size, path string) error {
	ctx := context.Background()
	st, err := service.NewFilterState(ctx, display)
	if err != nil {
		return err
	}
	res, err := service.GenerateGraph(ctx, st, size)
	if err != nil {
		return err
	}
	written, _, err := service.Export(path)
	if err != nil {
		return err
	}
	slog.Info("headless export done", "path", written, "hands", res.Graph.Hands, "placeholder", res.Graph.Placeholder)
	return nil
}
