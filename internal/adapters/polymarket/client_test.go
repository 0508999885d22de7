package polymarket_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/VitalyChait/MetaBet/internal/adapters/polymarket"
	"github.com/VitalyChait/MetaBet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(dataSrv, gammaSrv *httptest.Server) *polymarket.Client {
	dataURL := ""
	gammaURL := ""
	if dataSrv != nil {
		dataURL = dataSrv.URL
	}
	if gammaSrv != nil {
		gammaURL = gammaSrv.URL
	}
	// backoff corto para que los tests de retry no tarden
	return polymarket.NewClient(dataURL, gammaURL, 10*time.Millisecond)
}

// tradePage genera n items TRADE/BUY válidos (todo evento entra al ledger).
func tradePage(n int, slug string) []map[string]any {
	page := make([]map[string]any, n)
	for i := range page {
		page[i] = map[string]any{
			"type":      "TRADE",
			"side":      "BUY",
			"usdcSize":  "10.5",
			"outcome":   "Yes",
			"slug":      slug,
			"timestamp": 1700000000 + i,
		}
	}
	return page
}

func TestFetchActivity_PaginationTermination(t *testing.T) {
	// Páginas de 100, 100 y 40 → debe parar tras la tercera con 240 eventos
	pages := [][]map[string]any{
		tradePage(100, "mkt"),
		tradePage(100, "mkt"),
		tradePage(40, "mkt"),
	}
	var offsets []int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activity", r.URL.Path)
		assert.Equal(t, "0xwallet", r.URL.Query().Get("user"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		offsets = append(offsets, offset)

		page := offset / 100
		w.Header().Set("Content-Type", "application/json")
		if page >= len(pages) {
			json.NewEncoder(w).Encode([]any{})
			return
		}
		json.NewEncoder(w).Encode(pages[page])
	}))
	defer srv.Close()

	client := newTestClient(srv, nil)
	events, err := client.FetchActivity(context.Background(), "0xwallet")

	require.NoError(t, err)
	assert.Len(t, events, 240)
	assert.Equal(t, []int{0, 100, 200}, offsets, "la página corta termina la paginación")
}

func TestFetchActivity_RateLimitRetriesSamePage(t *testing.T) {
	// 429 en la página 2 → reintenta la página 2 (mismo offset), no la 3
	var offsets []int
	rateLimited := false

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		offsets = append(offsets, offset)

		w.Header().Set("Content-Type", "application/json")
		switch offset {
		case 0:
			json.NewEncoder(w).Encode(tradePage(100, "mkt"))
		case 100:
			if !rateLimited {
				rateLimited = true
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			json.NewEncoder(w).Encode(tradePage(30, "mkt"))
		default:
			t.Errorf("unexpected offset %d", offset)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv, nil)
	events, err := client.FetchActivity(context.Background(), "0xwallet")

	require.NoError(t, err)
	assert.Len(t, events, 130, "el retry no altera el total de registros")
	assert.Equal(t, []int{0, 100, 100}, offsets)
}

func TestFetchActivity_PartialOnServerError(t *testing.T) {
	// Primera página OK, segunda siempre 500 → devuelve lo acumulado + error
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		if offset == 0 {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(tradePage(100, "mkt"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv, nil)
	events, err := client.FetchActivity(context.Background(), "0xwallet")

	require.Error(t, err)
	assert.Len(t, events, 100)
}

func TestFetchActivity_SkipsNonEconomicRecords(t *testing.T) {
	page := []map[string]any{
		{"type": "TRADE", "side": "BUY", "usdcSize": "10", "outcome": "Yes", "slug": "m1"},
		{"type": "TRADE", "side": "SELL", "usdcSize": "4", "slug": "m1"},
		{"type": "REDEEM", "usdcSize": "25", "slug": "m1"},
		{"type": "MERGE", "usdcSize": "2", "slug": "m1"},
		{"type": "SPLIT", "usdcSize": "5", "slug": "m1"},            // sin efecto económico
		{"type": "TRADE", "side": "BUY", "usdcSize": "9", "slug": ""}, // sin market key
		{"type": "TRADE", "side": "BUY", "slug": "m1"},                // sin usdcSize
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	client := newTestClient(srv, nil)
	events, err := client.FetchActivity(context.Background(), "0xwallet")

	require.NoError(t, err)
	require.Len(t, events, 4)

	assert.Equal(t, domain.KindEntry, events[0].Kind)
	assert.InDelta(t, -10.0, events[0].Amount, 1e-9)
	assert.Equal(t, "Yes", events[0].Outcome)

	assert.Equal(t, domain.KindExit, events[1].Kind)
	assert.InDelta(t, 4.0, events[1].Amount, 1e-9)

	assert.Equal(t, domain.KindSettlement, events[2].Kind)
	assert.InDelta(t, 25.0, events[2].Amount, 1e-9)

	assert.Equal(t, domain.KindSettlement, events[3].Kind)
	assert.InDelta(t, 2.0, events[3].Amount, 1e-9)
}

func TestFetchPositions_MapsHoldings(t *testing.T) {
	page := []map[string]any{
		{"slug": "mkt-a", "currentValue": "12.34", "size": "20", "outcome": "Yes"},
		{"eventSlug": "evt-b", "currentValue": "0.5", "size": "1"},
		{"currentValue": "9.9", "size": "5"}, // sin slug ni eventSlug → drop
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/positions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	client := newTestClient(srv, nil)
	events, err := client.FetchPositions(context.Background(), "0xwallet")

	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, domain.MarketKey("mkt-a"), events[0].Market)
	assert.Equal(t, domain.KindHolding, events[0].Kind)
	assert.InDelta(t, 12.34, events[0].Amount, 1e-9)
	// el outcome de una posición no debe contar como entry
	assert.Empty(t, events[0].Outcome)

	assert.Equal(t, domain.MarketKey("evt-b"), events[1].Market)
}

func TestFetchActivity_ClientErrorIsPermanent(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := newTestClient(srv, nil)
	_, err := client.FetchActivity(context.Background(), "0xwallet")

	require.Error(t, err)
	assert.Equal(t, 1, calls, "un 4xx no se reintenta")
}

func TestFetchLeaderboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/leaderboard", r.URL.Path)
		assert.Equal(t, "month", r.URL.Query().Get("timePeriod"))
		assert.Equal(t, "PNL", r.URL.Query().Get("orderBy"))

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		w.Header().Set("Content-Type", "application/json")

		if offset >= 40 {
			json.NewEncoder(w).Encode([]any{})
			return
		}
		page := make([]map[string]any, 20)
		for i := range page {
			rank := offset + i + 1
			entry := map[string]any{
				"rank":        rank,
				"proxyWallet": fmt.Sprintf("0xwallet%03d", rank),
			}
			if rank != 2 {
				entry["userName"] = fmt.Sprintf("trader%d", rank)
			}
			page[i] = entry
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	client := newTestClient(srv, nil)
	users, err := client.FetchLeaderboard(context.Background(), "month", "PNL", 30)

	require.NoError(t, err)
	require.Len(t, users, 30)

	assert.Equal(t, 1, users[0].Rank)
	assert.Equal(t, "trader1", users[0].Name)
	assert.Equal(t, "0xwallet001", users[0].Wallet)
	assert.Equal(t, "https://polymarket.com/profile/0xwallet001", users[0].ProfileURL)

	// sin userName → el wallet es el nombre visible
	assert.Equal(t, "0xwallet002", users[1].Name)
}

func TestFetchClosedMarkets_FiltersWindow(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)

	markets := []map[string]any{
		{
			"conditionId":   "0xin",
			"question":      "In range?",
			"slug":          "in-range",
			"endDate":       "2024-06-01T00:00:00Z",
			"outcomes":      `["Yes","No"]`,
			"outcomePrices": `["0.99","0.01"]`,
			"volume":        "1234.5",
		},
		{
			"conditionId": "0xout",
			"question":    "Out of range?",
			"endDate":     "2025-06-01T00:00:00Z",
			"outcomes":    `["Yes","No"]`,
		},
		{
			"conditionId": "0xnodate",
			"question":    "No date?",
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/markets", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(markets)
	}))
	defer srv.Close()

	client := newTestClient(nil, srv)
	got, err := client.FetchClosedMarkets(context.Background(), from, to)

	require.NoError(t, err)
	require.Len(t, got, 1, "el filtro de ventana se aplica en cliente")

	m := got[0]
	assert.Equal(t, "0xin", m.ConditionID)
	assert.Equal(t, []string{"Yes", "No"}, m.Outcomes)
	assert.Equal(t, []float64{0.99, 0.01}, m.OutcomePrices)
	assert.InDelta(t, 1234.5, m.Volume, 1e-9)
	assert.True(t, m.IsBinary())
	assert.True(t, m.IsSettled(domain.DefaultSettledBounds()))
}

func TestFetchMarketTrades_BothEnvelopes(t *testing.T) {
	flat := []map[string]any{
		{"proxyWallet": "0xa", "outcome": "Yes", "size": "10", "timestamp": 1700000000},
	}
	wrapped := map[string]any{"trades": []map[string]any{
		{"maker": "0xb", "outcome": "No", "size": "5.5", "timestamp": 1700000100},
	}}

	for name, body := range map[string]any{"flat": flat, "wrapped": wrapped} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/trades", r.URL.Path)
				assert.Equal(t, "0xcond", r.URL.Query().Get("market"))
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(body)
			}))
			defer srv.Close()

			client := newTestClient(srv, nil)
			trades, err := client.FetchMarketTrades(context.Background(), "0xcond")

			require.NoError(t, err)
			require.Len(t, trades, 1)
			assert.NotEmpty(t, trades[0].Wallet)
			assert.False(t, trades[0].Timestamp.IsZero())
		})
	}
}
