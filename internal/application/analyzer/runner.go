package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/VitalyChait/MetaBet/internal/domain"
	"github.com/VitalyChait/MetaBet/internal/ports"
)

// Runner ejecuta un run completo: carga usuarios, los analiza en paralelo
// y va volcando cada resumen al writer y al storage a medida que llegan.
type Runner struct {
	analyzer *Analyzer
	source   ports.UserSource
	writer   ports.SummaryWriter
	storage  ports.SummaryStorage
	notifier ports.SummaryNotifier
}

// NewRunner crea un Runner con todas las dependencias inyectadas.
// storage y notifier pueden ser nil; writer y source son obligatorios.
func NewRunner(
	a *Analyzer,
	source ports.UserSource,
	writer ports.SummaryWriter,
	storage ports.SummaryStorage,
	notifier ports.SummaryNotifier,
) *Runner {
	return &Runner{
		analyzer: a,
		source:   source,
		writer:   writer,
		storage:  storage,
		notifier: notifier,
	}
}

// Run ejecuta el run completo y devuelve los resúmenes producidos.
func (r *Runner) Run(ctx context.Context) ([]domain.UserSummary, error) {
	start := time.Now()

	users, err := r.source.Load()
	if err != nil {
		return nil, fmt.Errorf("analyzer.Run: load users: %w", err)
	}
	if limit := r.analyzer.cfg.UserLimit; limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	if len(users) == 0 {
		slog.Info("no users to analyze")
		return nil, nil
	}

	slog.Info("analysis run starting",
		"users", len(users),
		"workers", r.analyzer.cfg.Workers,
		"epsilon", r.analyzer.cfg.Epsilon,
	)

	var runID string
	if r.storage != nil {
		params := fmt.Sprintf("users=%d workers=%d epsilon=%g",
			len(users), r.analyzer.cfg.Workers, r.analyzer.cfg.Epsilon)
		runID, err = r.storage.BeginRun(ctx, start.UTC(), params)
		if err != nil {
			// el CSV sigue siendo la salida primaria; la DB es histórico
			slog.Warn("storage begin run failed, continuing without persistence", "err", err)
			runID = ""
		}
	}

	// Collector único: serializa writer y storage sin locks.
	summaries := make([]domain.UserSummary, 0, len(users))
	for summary := range analyzeUsersConcurrent(ctx, r.analyzer, users, r.analyzer.cfg.Workers) {
		summaries = append(summaries, summary)

		if err := r.writer.Append(summary); err != nil {
			return summaries, fmt.Errorf("analyzer.Run: write summary %s: %w", summary.Wallet, err)
		}
		if runID != "" {
			if err := r.storage.SaveSummary(ctx, runID, summary); err != nil {
				slog.Warn("storage save failed", "wallet", summary.Wallet, "err", err)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return summaries, err
	}

	if runID != "" {
		if err := r.storage.FinishRun(ctx, runID, len(summaries)); err != nil {
			slog.Warn("storage finish run failed", "err", err)
		}
	}

	if r.notifier != nil {
		if err := r.notifier.Notify(ctx, summaries); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	slog.Info("analysis run complete",
		"users", len(summaries),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return summaries, nil
}
