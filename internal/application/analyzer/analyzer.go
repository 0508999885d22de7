// Package analyzer orquesta el análisis de historial de apuestas: por
// cada usuario reconstruye su ledger de mercados a partir de actividad y
// posiciones, y lo reduce a un resumen de wins/losses/duplicados/hedges.
package analyzer

import (
	"context"
	"log/slog"

	"github.com/VitalyChait/MetaBet/internal/domain"
	"github.com/VitalyChait/MetaBet/internal/ports"
)

// Config contiene la configuración del analyzer.
type Config struct {
	// Workers acota el pool de análisis paralelo. Fijo y bajo a propósito:
	// cada worker pagina contra la misma API y el límite real es el rate
	// limit upstream, no la CPU.
	Workers int
	// Epsilon es la zona muerta alrededor de cero del clasificador.
	Epsilon float64
	// UserLimit acota cuántos usuarios del top del input se procesan.
	// 0 = sin límite.
	UserLimit int
}

// DefaultConfig devuelve la configuración por defecto.
func DefaultConfig() Config {
	return Config{Workers: 3, Epsilon: domain.DefaultEpsilon}
}

// Analyzer reconstruye el resumen de un usuario a partir de sus fuentes.
type Analyzer struct {
	cfg       Config
	activity  ports.ActivityProvider
	positions ports.PositionProvider
}

// NewAnalyzer crea un Analyzer con las fuentes inyectadas.
func NewAnalyzer(cfg Config, activity ports.ActivityProvider, positions ports.PositionProvider) *Analyzer {
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = domain.DefaultEpsilon
	}
	return &Analyzer{cfg: cfg, activity: activity, positions: positions}
}

// AnalyzeUser construye el ledger completo del usuario y lo resume.
// Un fallo de fetch no aborta: el resumen se emite con lo acumulado hasta
// el error, marcado como parcial. Solo la cancelación de contexto escala.
func (a *Analyzer) AnalyzeUser(ctx context.Context, user domain.User) (domain.UserSummary, error) {
	ledger := domain.NewLedger()
	partial := false

	events, err := a.activity.FetchActivity(ctx, user.Wallet)
	for _, ev := range events {
		ledger.Apply(ev)
	}
	if err != nil {
		if ctx.Err() != nil {
			return domain.UserSummary{}, ctx.Err()
		}
		slog.Warn("activity fetch failed, degrading to partial summary",
			"wallet", user.Wallet, "events", len(events), "err", err)
		partial = true
	}

	// Las posiciones abiertas solo se suman si la actividad llegó entera;
	// un holding sobre actividad incompleta distorsionaría el neto.
	if !partial {
		holdings, err := a.positions.FetchPositions(ctx, user.Wallet)
		for _, ev := range holdings {
			ledger.Apply(ev)
		}
		if err != nil {
			if ctx.Err() != nil {
				return domain.UserSummary{}, ctx.Err()
			}
			slog.Warn("positions fetch failed, degrading to partial summary",
				"wallet", user.Wallet, "err", err)
			partial = true
		}
	}

	summary := domain.Summarize(ledger, a.cfg.Epsilon)
	summary.Name = user.Name
	summary.Wallet = user.Wallet
	summary.ProfileURL = user.ProfileURL
	summary.Partial = partial

	slog.Debug("user analyzed",
		"wallet", user.Wallet,
		"markets", ledger.Len(),
		"wins", summary.Wins,
		"losses", summary.Losses,
		"partial", partial,
	)
	return summary, nil
}
