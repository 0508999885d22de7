package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VitalyChait/MetaBet/config"
	"github.com/VitalyChait/MetaBet/internal/adapters/notify"
	"github.com/VitalyChait/MetaBet/internal/adapters/polymarket"
	"github.com/VitalyChait/MetaBet/internal/application/suspect"
	"github.com/VitalyChait/MetaBet/internal/domain"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	windowDays := flag.Int("window", 0, "days of settled markets to scan (overrides config)")
	maxMarkets := flag.Int("max-markets", 0, "max markets to inspect per run (overrides config)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	if *windowDays > 0 {
		cfg.Suspect.WindowDays = *windowDays
	}
	if *maxMarkets > 0 {
		cfg.Suspect.MaxMarkets = *maxMarkets
	}

	slog.Info("metabet suspect scan starting",
		"window_days", cfg.Suspect.WindowDays,
		"max_markets", cfg.Suspect.MaxMarkets,
	)

	client := polymarket.NewClient(cfg.API.DataBase, cfg.API.GammaBase, cfg.RetryBackoff())

	scanner := suspect.NewScanner(suspect.Config{
		Window:     cfg.SuspectWindow(),
		MaxMarkets: cfg.Suspect.MaxMarkets,
		Bounds: domain.SettledBounds{
			Hi: cfg.Suspect.SettledHi,
			Lo: cfg.Suspect.SettledLo,
		},
		Timing: domain.TimingThresholds{
			LateEntry: time.Duration(cfg.Suspect.LateEntryHours) * time.Hour,
			EarlyExit: time.Duration(cfg.Suspect.EarlyExitHours) * time.Hour,
		},
	}, client, client)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	results, err := scanner.Run(ctx)
	if err != nil {
		slog.Error("suspect scan exited with error", "err", err)
		os.Exit(1)
	}

	console := notify.NewConsole(true)
	for _, r := range results {
		console.PrintSuspects(r.Market, r.Suspects)
	}

	slog.Info("suspect scan stopped cleanly", "markets_flagged", len(results))
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
