package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settledMarket(end time.Time) ClosedMarket {
	return ClosedMarket{
		ConditionID:   "0xcond",
		Question:      "Will it happen?",
		EndDate:       end,
		Outcomes:      []string{"Yes", "No"},
		OutcomePrices: []float64{0.01, 0.99}, // ganó "no"
	}
}

func TestClosedMarket_IsSettled(t *testing.T) {
	b := DefaultSettledBounds()

	m := settledMarket(time.Now())
	assert.True(t, m.IsSettled(b))

	m.OutcomePrices = []float64{0.6, 0.4}
	assert.False(t, m.IsSettled(b))

	m.OutcomePrices = []float64{0.99}
	assert.False(t, m.IsSettled(b))

	// límites configurables
	m.OutcomePrices = []float64{0.95, 0.05}
	assert.False(t, m.IsSettled(b))
	assert.True(t, m.IsSettled(SettledBounds{Hi: 0.9, Lo: 0.1}))
}

func TestClosedMarket_Winner(t *testing.T) {
	m := settledMarket(time.Now())
	w, ok := m.Winner()
	require.True(t, ok)
	assert.Equal(t, "no", w)

	m.OutcomePrices = []float64{0.99, 0.01}
	w, _ = m.Winner()
	assert.Equal(t, "yes", w)

	m.OutcomePrices = nil
	_, ok = m.Winner()
	assert.False(t, ok)
}

func TestFindSuspects(t *testing.T) {
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	m := settledMarket(end) // ganador: "no"
	th := DefaultTimingThresholds()

	trades := []MarketTrade{
		// La mayoría del volumen apuesta "yes"
		{Wallet: "0xmajority1", Outcome: "Yes", Size: 500, Timestamp: end.Add(-72 * time.Hour)},
		{Wallet: "0xmajority2", Outcome: "Yes", Size: 400, Timestamp: end.Add(-50 * time.Hour)},
		// Contrarian que entra tarde y gana → sospechoso
		{Wallet: "0xlatecomer", Outcome: "No", Size: 300, Timestamp: end.Add(-3 * time.Hour)},
		// Contrarian que gana pero entró con tiempo → no sospechoso
		{Wallet: "0xearly", Outcome: "No", Size: 200, Timestamp: end.Add(-200 * time.Hour)},
	}

	suspects := FindSuspects(m, trades, th)

	require.Len(t, suspects, 1)
	s := suspects[0]
	assert.Equal(t, "0xlatecomer", s.Wallet)
	assert.Equal(t, "no", s.Position)
	assert.True(t, s.Contrarian)
	assert.True(t, s.Won)
	assert.InDelta(t, 300.0, s.Volume, 1e-9)
	assert.True(t, s.Timing.LateEntry(th))
}

func TestFindSuspects_SortedByVolume(t *testing.T) {
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	m := settledMarket(end)
	th := DefaultTimingThresholds()

	trades := []MarketTrade{
		{Wallet: "0xyes", Outcome: "Yes", Size: 1000, Timestamp: end.Add(-100 * time.Hour)},
		{Wallet: "0xsmall", Outcome: "No", Size: 10, Timestamp: end.Add(-1 * time.Hour)},
		{Wallet: "0xbig", Outcome: "No", Size: 100, Timestamp: end.Add(-2 * time.Hour)},
	}

	suspects := FindSuspects(m, trades, th)
	require.Len(t, suspects, 2)
	assert.Equal(t, "0xbig", suspects[0].Wallet)
	assert.Equal(t, "0xsmall", suspects[1].Wallet)
}

func TestFindSuspects_NoWinner(t *testing.T) {
	m := ClosedMarket{Outcomes: []string{"TeamA", "TeamB"}, OutcomePrices: []float64{0.99, 0.01}}
	// ganador no es yes/no → la heurística no aplica
	assert.Nil(t, FindSuspects(m, []MarketTrade{
		{Wallet: "0xw", Outcome: "TeamA", Size: 10, Timestamp: time.Now()},
	}, DefaultTimingThresholds()))
}

func TestComputeTiming(t *testing.T) {
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	timing, ok := ComputeTiming([]time.Time{
		end.Add(-30 * time.Hour),
		end.Add(-10 * time.Hour),
		end.Add(-20 * time.Hour),
	}, end)

	require.True(t, ok)
	assert.InDelta(t, 10.0, timing.HoursBeforeEnd, 1e-9)
	assert.InDelta(t, 20.0, timing.HoursActive, 1e-9)
	assert.Equal(t, 3, timing.Trades)

	_, ok = ComputeTiming(nil, end)
	assert.False(t, ok)

	_, ok = ComputeTiming([]time.Time{time.Now()}, time.Time{})
	assert.False(t, ok)
}
