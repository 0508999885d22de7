package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/VitalyChait/MetaBet/config"
	"github.com/VitalyChait/MetaBet/internal/adapters/csvio"
	"github.com/VitalyChait/MetaBet/internal/adapters/polymarket"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	output := flag.String("output", "leaderboard.csv", "output CSV path")
	period := flag.String("period", "month", "leaderboard period: day|week|month|all")
	orderBy := flag.String("order-by", "PNL", "leaderboard ordering: PNL|VOLUME")
	count := flag.Int("count", 100, "how many top users to fetch")
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

	slog.Info("metabet leaderboard starting",
		"period", *period,
		"order_by", *orderBy,
		"count", *count,
		"output", *output,
	)

	client := polymarket.NewClient(cfg.API.DataBase, cfg.API.GammaBase, cfg.RetryBackoff())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	users, err := client.FetchLeaderboard(ctx, *period, *orderBy, *count)
	if err != nil {
		slog.Error("leaderboard fetch failed", "err", err)
		os.Exit(1)
	}

	if err := csvio.WriteLeaderboard(*output, users); err != nil {
		slog.Error("failed to write output", "err", err, "path", *output)
		os.Exit(1)
	}

	slog.Info("leaderboard written", "users", len(users), "output", *output)
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
