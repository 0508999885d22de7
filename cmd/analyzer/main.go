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
	"github.com/VitalyChait/MetaBet/internal/adapters/notify"
	"github.com/VitalyChait/MetaBet/internal/adapters/polymarket"
	"github.com/VitalyChait/MetaBet/internal/adapters/storage"
	"github.com/VitalyChait/MetaBet/internal/application/analyzer"
	"github.com/VitalyChait/MetaBet/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	input := flag.String("input", "leaderboard.csv", "input CSV with Name and Profile URL columns")
	output := flag.String("output", "user_analysis.csv", "output CSV path")
	limit := flag.Int("limit", 0, "analyze only the top N users from the input (0 = all)")
	noDB := flag.Bool("no-db", false, "skip SQLite run persistence")
	table := flag.Bool("table", false, "print full result table (default: compact 1-line)")
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

	if *limit > 0 {
		cfg.Analyzer.UserLimit = *limit
	}

	slog.Info("metabet analyzer starting",
		"config", *configPath,
		"input", *input,
		"output", *output,
		"limit", cfg.Analyzer.UserLimit,
		"workers", cfg.Analyzer.Workers,
	)

	client := polymarket.NewClient(cfg.API.DataBase, cfg.API.GammaBase, cfg.RetryBackoff())

	writer, err := csvio.NewSummaryFile(*output)
	if err != nil {
		slog.Error("failed to open output", "err", err, "path", *output)
		os.Exit(1)
	}
	defer writer.Close()

	var store *storage.SQLiteStorage
	if !*noDB {
		store, err = storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer store.Close()
	}

	a := analyzer.NewAnalyzer(analyzer.Config{
		Workers:   cfg.Analyzer.Workers,
		Epsilon:   cfg.Analyzer.Epsilon,
		UserLimit: cfg.Analyzer.UserLimit,
	}, client, client)

	runner := analyzer.NewRunner(a,
		csvio.UserFile{Path: *input},
		writer,
		storageOrNil(store),
		notify.NewConsole(*table),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if _, err := runner.Run(ctx); err != nil {
		slog.Error("analyzer exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("analyzer stopped cleanly", "output", *output)
}

// storageOrNil evita colar un *SQLiteStorage nil dentro de una interfaz no nil.
func storageOrNil(s *storage.SQLiteStorage) ports.SummaryStorage {
	if s == nil {
		return nil
	}
	return s
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
