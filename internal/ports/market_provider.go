package ports

import (
	"context"
	"time"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

// ClosedMarketProvider obtiene mercados cerrados de Gamma por ventana de
// endDate, para el scan de traders sospechosos.
type ClosedMarketProvider interface {
	// FetchClosedMarkets devuelve los mercados cuyo endDate cae en
	// [from, to]. Pagina internamente y filtra en cliente aunque el
	// servidor soporte el filtro de rango.
	FetchClosedMarkets(ctx context.Context, from, to time.Time) ([]domain.ClosedMarket, error)
}

// MarketTradeProvider obtiene los trades de un mercado por condition_id.
type MarketTradeProvider interface {
	FetchMarketTrades(ctx context.Context, conditionID string) ([]domain.MarketTrade, error)
}

// LeaderboardProvider obtiene el leaderboard público de la Data API.
type LeaderboardProvider interface {
	// FetchLeaderboard devuelve los primeros count usuarios del ranking
	// del periodo dado ("month", "week", ...) ordenados por orderBy.
	FetchLeaderboard(ctx context.Context, period, orderBy string, count int) ([]domain.User, error)
}
