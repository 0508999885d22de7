package polymarket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

const (
	defaultDataBase  = "https://data-api.polymarket.com"
	defaultGammaBase = "https://gamma-api.polymarket.com"

	// La Data API no documenta límites; el script original dormía 100ms
	// entre páginas, así que nos quedamos por debajo de 10 req/s.
	dataRatePerSec = 8
	// Gamma /markets: 300/10s documentado → 60% → 18/s.
	gammaRatePerSec = 18

	// Errores de red y 5xx reintentan un número acotado de veces;
	// un 429 reintenta la MISMA página indefinidamente (acotado por ctx).
	maxRetries          = 3
	defaultRetryBackoff = 2 * time.Second
)

// errRateLimited marca una respuesta 429: reintentable sin límite.
var errRateLimited = errors.New("rate limited")

// Client es el HTTP client de la Data API y Gamma, con rate limiting y
// retries. Es una única instancia de larga vida compartida por todos los
// workers — el pooling de conexiones lo hace http.Client por debajo.
type Client struct {
	http         *http.Client
	dataBase     string
	gammaBase    string
	dataLimiter  *rate.Limiter
	gammaLimiter *rate.Limiter
	retryBackoff time.Duration
}

// NewClient crea un Client con los base URLs dados.
// Strings vacíos usan los URLs de producción; retryBackoff 0 usa el default.
func NewClient(dataBase, gammaBase string, retryBackoff time.Duration) *Client {
	if dataBase == "" {
		dataBase = defaultDataBase
	}
	if gammaBase == "" {
		gammaBase = defaultGammaBase
	}
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}
	return &Client{
		http:         &http.Client{Timeout: 10 * time.Second},
		dataBase:     dataBase,
		gammaBase:    gammaBase,
		dataLimiter:  rate.NewLimiter(dataRatePerSec, 4),
		gammaLimiter: rate.NewLimiter(gammaRatePerSec, 10),
		retryBackoff: retryBackoff,
	}
}

// getJSON hace un GET con rate limiting y decodifica la respuesta en out.
// Política de retry: 429 espera un intervalo fijo y repite indefinidamente;
// errores de red y 5xx repiten hasta maxRetries; 4xx es permanente.
func (c *Client) getJSON(ctx context.Context, limiter *rate.Limiter, url string, out any) error {
	attempts := 0

	op := func() error {
		if err := limiter.Wait(ctx); err != nil {
			return backoff.Permanent(fmt.Errorf("rate limiter: %w", err))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			attempts++
			if attempts > maxRetries {
				return backoff.Permanent(fmt.Errorf("request failed after %d retries: %w", maxRetries, err))
			}
			return err
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			resp.Body.Close()
			slog.Warn("rate limited by API, backing off", "wait", c.retryBackoff)
			return errRateLimited

		case resp.StatusCode >= 500:
			resp.Body.Close()
			attempts++
			if attempts > maxRetries {
				return backoff.Permanent(fmt.Errorf("server error %d after %d retries", resp.StatusCode, maxRetries))
			}
			return fmt.Errorf("server error %d", resp.StatusCode)

		case resp.StatusCode >= 400:
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return backoff.Permanent(fmt.Errorf("client error %d: %s", resp.StatusCode, string(body)))
		}

		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		return nil
	}

	bo := backoff.WithContext(backoff.NewConstantBackOff(c.retryBackoff), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			return perm.Unwrap()
		}
		return err
	}
	return nil
}

func shortWallet(wallet string) string {
	if len(wallet) <= 10 {
		return wallet
	}
	return wallet[:10] + "..."
}
