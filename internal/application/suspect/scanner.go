// Package suspect orquesta el scan de traders sospechosos: mercados
// binarios liquidados recientes cuyos ganadores entraron tarde y contra
// el volumen mayoritario.
package suspect

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/VitalyChait/MetaBet/internal/domain"
	"github.com/VitalyChait/MetaBet/internal/ports"
)

// Config contiene la configuración del scan.
type Config struct {
	// Window acota cuán atrás se buscan mercados liquidados.
	Window time.Duration
	// MaxMarkets acota cuántos mercados se inspeccionan por run.
	MaxMarkets int
	// Bounds decide cuándo unos outcomePrices cuentan como liquidados.
	Bounds domain.SettledBounds
	// Timing son los umbrales de entrada tardía / salida temprana.
	Timing domain.TimingThresholds
}

// DefaultConfig devuelve la configuración por defecto: una semana de
// mercados, máximo 25 por run.
func DefaultConfig() Config {
	return Config{
		Window:     7 * 24 * time.Hour,
		MaxMarkets: 25,
		Bounds:     domain.DefaultSettledBounds(),
		Timing:     domain.DefaultTimingThresholds(),
	}
}

// Result agrupa los sospechosos encontrados en un mercado.
type Result struct {
	Market   domain.ClosedMarket
	Suspects []domain.Suspect
}

// Scanner recorre mercados liquidados buscando patrones sospechosos.
type Scanner struct {
	cfg     Config
	markets ports.ClosedMarketProvider
	trades  ports.MarketTradeProvider
}

// NewScanner crea un Scanner con los providers inyectados.
func NewScanner(cfg Config, markets ports.ClosedMarketProvider, trades ports.MarketTradeProvider) *Scanner {
	if cfg.Window <= 0 {
		cfg.Window = 7 * 24 * time.Hour
	}
	if cfg.MaxMarkets <= 0 {
		cfg.MaxMarkets = 25
	}
	return &Scanner{cfg: cfg, markets: markets, trades: trades}
}

// Run ejecuta un scan completo y devuelve solo los mercados con hallazgos.
func (s *Scanner) Run(ctx context.Context) ([]Result, error) {
	now := time.Now().UTC()
	markets, err := s.markets.FetchClosedMarkets(ctx, now.Add(-s.cfg.Window), now)
	if err != nil {
		return nil, fmt.Errorf("suspect.Run: fetch markets: %w", err)
	}

	candidates := filterSettled(markets, s.cfg.Bounds)
	if len(candidates) > s.cfg.MaxMarkets {
		candidates = candidates[:s.cfg.MaxMarkets]
	}

	slog.Info("suspect scan starting",
		"markets", len(markets),
		"candidates", len(candidates),
		"window", s.cfg.Window,
	)

	var results []Result
	for _, m := range candidates {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		trades, err := s.trades.FetchMarketTrades(ctx, m.ConditionID)
		if err != nil {
			// un mercado sin trades legibles no tumba el scan
			slog.Warn("trades fetch failed, skipping market",
				"condition_id", m.ConditionID, "err", err)
			continue
		}

		suspects := domain.FindSuspects(m, trades, s.cfg.Timing)
		if len(suspects) == 0 {
			continue
		}

		slog.Debug("suspects found",
			"market", m.Question,
			"suspects", len(suspects),
			"trades", len(trades),
		)
		results = append(results, Result{Market: m, Suspects: suspects})
	}

	slog.Info("suspect scan complete", "markets_flagged", len(results))
	return results, nil
}

// filterSettled se queda con los mercados binarios liquidados.
func filterSettled(markets []domain.ClosedMarket, b domain.SettledBounds) []domain.ClosedMarket {
	var out []domain.ClosedMarket
	for _, m := range markets {
		if m.IsBinary() && m.IsSettled(b) {
			out = append(out, m)
		}
	}
	return out
}
