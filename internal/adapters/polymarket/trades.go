package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

const (
	tradesPerPage  = 1000
	tradesMaxPages = 3
)

// FetchMarketTrades obtiene los trades de un mercado por condition_id
// desde la Data API. La respuesta puede ser un array plano o un objeto
// {"trades": [...]} según el deployment.
func (c *Client) FetchMarketTrades(ctx context.Context, conditionID string) ([]domain.MarketTrade, error) {
	var all []domain.MarketTrade

	for page := 0; page < tradesMaxPages; page++ {
		offset := page * tradesPerPage
		url := fmt.Sprintf("%s/trades?market=%s&limit=%d&offset=%d",
			c.dataBase, conditionID, tradesPerPage, offset)

		var raw json.RawMessage
		if err := c.getJSON(ctx, c.dataLimiter, url, &raw); err != nil {
			return all, fmt.Errorf("data-api.FetchMarketTrades: offset %d: %w", offset, err)
		}

		batch := unwrapTrades(raw)
		if len(batch) == 0 {
			break
		}

		for _, t := range batch {
			if mt, ok := mapTrade(t); ok {
				all = append(all, mt)
			}
		}

		slog.Debug("fetched trades page",
			"condition_id", shortWallet(conditionID),
			"page", page,
			"count", len(batch),
			"total", len(all),
		)

		if len(batch) < tradesPerPage {
			break
		}
	}

	return all, nil
}

// unwrapTrades acepta los dos formatos de respuesta de /trades.
func unwrapTrades(raw json.RawMessage) []dataTrade {
	if len(raw) == 0 {
		return nil
	}

	var flat []dataTrade
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat
	}

	var env tradesEnvelope
	if err := json.Unmarshal(raw, &env); err == nil {
		return env.Trades
	}
	return nil
}
