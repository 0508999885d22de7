package polymarket

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

const (
	gammaMarketsPath    = "/markets"
	gammaPageLimit      = 100
	gammaMaxMarketPages = 50
)

// FetchClosedMarkets obtiene de Gamma los mercados cuyo endDate cae en
// [from, to]. Pide el filtro de rango al servidor pero SIEMPRE re-filtra en
// cliente: el soporte server-side varía entre deployments.
func (c *Client) FetchClosedMarkets(ctx context.Context, from, to time.Time) ([]domain.ClosedMarket, error) {
	var all []domain.ClosedMarket

	for page := 0; page < gammaMaxMarketPages; page++ {
		offset := page * gammaPageLimit

		q := url.Values{}
		q.Set("limit", fmt.Sprint(gammaPageLimit))
		q.Set("offset", fmt.Sprint(offset))
		q.Set("order", "endDate")
		q.Set("ascending", "false")
		q.Set("end_date_min", from.UTC().Format(time.RFC3339))
		q.Set("end_date_max", to.UTC().Format(time.RFC3339))

		var resp []gammaMarket
		if err := c.getJSON(ctx, c.gammaLimiter, c.gammaBase+gammaMarketsPath+"?"+q.Encode(), &resp); err != nil {
			return all, fmt.Errorf("gamma.FetchClosedMarkets: offset %d: %w", offset, err)
		}

		if len(resp) == 0 {
			break
		}

		for _, gm := range resp {
			m := mapGammaMarket(gm)
			if m.EndDate.IsZero() || m.EndDate.Before(from) || m.EndDate.After(to) {
				continue
			}
			all = append(all, m)
		}

		slog.Debug("fetched gamma markets page",
			"page", page,
			"returned", len(resp),
			"in_range", len(all),
		)

		if len(resp) < gammaPageLimit {
			break
		}
	}

	return all, nil
}
