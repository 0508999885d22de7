package polymarket

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

const activityPageLimit = 100

// FetchActivity pagina GET /activity para un wallet y devuelve los eventos
// económicos normalizados. La paginación es secuencial: el offset de la
// siguiente página depende del tamaño de la anterior, y se corta con una
// página vacía o corta. Si una página falla, devuelve lo acumulado junto
// con el error para que el caller degrade a resumen parcial.
func (c *Client) FetchActivity(ctx context.Context, wallet string) ([]domain.Event, error) {
	var events []domain.Event

	for offset := 0; ; offset += activityPageLimit {
		url := fmt.Sprintf("%s/activity?user=%s&limit=%d&offset=%d",
			c.dataBase, wallet, activityPageLimit, offset)

		var page []activityItem
		if err := c.getJSON(ctx, c.dataLimiter, url, &page); err != nil {
			return events, fmt.Errorf("data-api.FetchActivity: offset %d: %w", offset, err)
		}

		if len(page) == 0 {
			break
		}

		for _, it := range page {
			if ev, ok := mapActivityItem(it); ok {
				events = append(events, ev)
			}
		}

		slog.Debug("fetched activity page",
			"wallet", shortWallet(wallet),
			"offset", offset,
			"records", len(page),
			"events", len(events),
		)

		if len(page) < activityPageLimit {
			break
		}
	}

	return events, nil
}
