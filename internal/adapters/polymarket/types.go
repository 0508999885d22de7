package polymarket

import "encoding/json"

// DTOs raw de la Data API y Gamma. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.

// --- Data API ---

// activityItem es un registro de GET /activity. Los campos numéricos llegan
// como número o como string según el deployment, usamos json.Number.
type activityItem struct {
	Type      string      `json:"type"` // TRADE | REDEEM | MERGE | SPLIT | REWARD | CONVERSION
	Side      string      `json:"side"` // BUY | SELL (solo TRADE)
	UsdcSize  json.Number `json:"usdcSize"`
	Outcome   string      `json:"outcome"`
	Slug      string      `json:"slug"`
	Title     string      `json:"title"`
	Timestamp json.Number `json:"timestamp"`
}

// positionItem es un registro de GET /positions (posiciones aún abiertas).
type positionItem struct {
	Slug         string      `json:"slug"`
	EventSlug    string      `json:"eventSlug"`
	Outcome      string      `json:"outcome"`
	Size         json.Number `json:"size"`
	CurrentValue json.Number `json:"currentValue"`
}

// leaderboardEntry es un registro de GET /v1/leaderboard.
type leaderboardEntry struct {
	Rank        json.Number `json:"rank"`
	ProxyWallet string      `json:"proxyWallet"`
	UserName    string      `json:"userName"`
}

// dataTrade es un trade de mercado de GET /trades.
type dataTrade struct {
	ProxyWallet string      `json:"proxyWallet"`
	Maker       string      `json:"maker"`
	Side        string      `json:"side"`
	Outcome     string      `json:"outcome"`
	Size        json.Number `json:"size"`
	Timestamp   json.Number `json:"timestamp"`
}

// tradesEnvelope cubre los dos formatos de respuesta de /trades:
// un array plano o un objeto {"trades": [...]}.
type tradesEnvelope struct {
	Trades []dataTrade `json:"trades"`
}

// --- Gamma API ---

// gammaMarket es la metadata de un mercado de GET /markets de Gamma.
// outcomes y outcomePrices llegan a veces como array JSON y a veces como
// string conteniendo JSON; se decodifican con helpers en mapping.go.
type gammaMarket struct {
	ConditionID   string          `json:"conditionId"`
	Question      string          `json:"question"`
	Slug          string          `json:"slug"`
	EndDate       string          `json:"endDate"`
	EndDateISO    string          `json:"endDateIso"`
	ClosedTime    string          `json:"closedTime"`
	Outcomes      json.RawMessage `json:"outcomes"`
	OutcomePrices json.RawMessage `json:"outcomePrices"`
	Volume        json.Number     `json:"volume"`
	Active        *bool           `json:"active"`
	Closed        *bool           `json:"closed"`
}
