package polymarket

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VitalyChait/MetaBet/internal/domain"
)

const (
	leaderboardPageSize = 20
	profileBaseURL      = "https://polymarket.com/profile/"
)

// FetchLeaderboard pagina GET /v1/leaderboard y devuelve los primeros
// count usuarios del ranking. Usuarios sin username usan el wallet como
// nombre visible; usuarios sin wallet se descartan.
func (c *Client) FetchLeaderboard(ctx context.Context, period, orderBy string, count int) ([]domain.User, error) {
	var users []domain.User

	for offset := 0; len(users) < count; offset += leaderboardPageSize {
		url := fmt.Sprintf("%s/v1/leaderboard?timePeriod=%s&orderBy=%s&category=overall&limit=%d&offset=%d",
			c.dataBase, period, orderBy, leaderboardPageSize, offset)

		var page []leaderboardEntry
		if err := c.getJSON(ctx, c.dataLimiter, url, &page); err != nil {
			return users, fmt.Errorf("data-api.FetchLeaderboard: offset %d: %w", offset, err)
		}

		if len(page) == 0 {
			break
		}

		for _, entry := range page {
			if entry.ProxyWallet == "" {
				continue
			}
			name := entry.UserName
			if name == "" {
				name = entry.ProxyWallet
			}
			rank, _ := entry.Rank.Int64()
			users = append(users, domain.User{
				Rank:       int(rank),
				Name:       name,
				Wallet:     entry.ProxyWallet,
				ProfileURL: profileBaseURL + entry.ProxyWallet,
			})
		}

		slog.Debug("fetched leaderboard page", "offset", offset, "users", len(users))

		if len(page) < leaderboardPageSize {
			break
		}
	}

	if len(users) > count {
		users = users[:count]
	}
	return users, nil
}
