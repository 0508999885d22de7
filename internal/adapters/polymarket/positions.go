package polymarket

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

const positionsPageLimit = 100

// FetchPositions pagina GET /positions para un wallet y devuelve las
// posiciones abiertas como eventos HOLDING. Mismo contrato de paginación y
// de resultado parcial que FetchActivity.
func (c *Client) FetchPositions(ctx context.Context, wallet string) ([]domain.Event, error) {
	var events []domain.Event

	for offset := 0; ; offset += positionsPageLimit {
		url := fmt.Sprintf("%s/positions?user=%s&limit=%d&offset=%d",
			c.dataBase, wallet, positionsPageLimit, offset)

		var page []positionItem
		if err := c.getJSON(ctx, c.dataLimiter, url, &page); err != nil {
			return events, fmt.Errorf("data-api.FetchPositions: offset %d: %w", offset, err)
		}

		if len(page) == 0 {
			break
		}

		for _, it := range page {
			if ev, ok := mapPositionItem(it); ok {
				events = append(events, ev)
			}
		}

		slog.Debug("fetched positions page",
			"wallet", shortWallet(wallet),
			"offset", offset,
			"records", len(page),
		)

		if len(page) < positionsPageLimit {
			break
		}
	}

	return events, nil
}
