package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/VitalyChait/MetaBet/internal/adapters/storage"
	"github.com/VitalyChait/MetaBet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSummary(wallet string, totalWon float64) domain.UserSummary {
	return domain.UserSummary{
		Name:       "trader-" + wallet,
		Wallet:     wallet,
		ProfileURL: "https://polymarket.com/profile/" + wallet,
		Wins:       3,
		Losses:     1,
		TotalWon:   totalWon,
		TotalLost:  4.5,
	}
}

func TestSQLiteStorage_RunLifecycle(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	runID, err := db.BeginRun(ctx, time.Now().UTC(), "limit=2 workers=3")
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	require.NoError(t, db.SaveSummary(ctx, runID, makeSummary("0xaaa", 42.0)))
	require.NoError(t, db.SaveSummary(ctx, runID, makeSummary("0xbbb", 7.25)))
	require.NoError(t, db.FinishRun(ctx, runID, 2))

	got, err := db.GetRunSummaries(ctx, runID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordenados por total ganado desc
	assert.Equal(t, "0xaaa", got[0].Wallet)
	assert.InDelta(t, 42.0, got[0].TotalWon, 0.001)
	assert.Equal(t, "0xbbb", got[1].Wallet)
}

func TestSQLiteStorage_SaveSummaryUpserts(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	runID, err := db.BeginRun(ctx, time.Now().UTC(), "")
	require.NoError(t, err)

	// Guardado parcial primero, completo después — misma fila
	partial := makeSummary("0xaaa", 10)
	partial.Partial = true
	require.NoError(t, db.SaveSummary(ctx, runID, partial))
	require.NoError(t, db.SaveSummary(ctx, runID, makeSummary("0xaaa", 42.0)))

	got, err := db.GetRunSummaries(ctx, runID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 42.0, got[0].TotalWon, 0.001)
	assert.False(t, got[0].Partial)
}

func TestSQLiteStorage_NotesRoundTrip(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	runID, err := db.BeginRun(ctx, time.Now().UTC(), "")
	require.NoError(t, err)

	sum := makeSummary("0xaaa", 1)
	sum.DuplicatedBets = 2
	sum.DiffOutcomeCount = 2
	sum.DiffOutcomeDetails = []string{
		"market-a: Different outcomes (No, Yes)",
		"market-b: Different outcomes (Chargers, Texans)",
	}
	require.NoError(t, db.SaveSummary(ctx, runID, sum))

	got, err := db.GetRunSummaries(ctx, runID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sum.DiffOutcomeDetails, got[0].DiffOutcomeDetails)
}

func TestSQLiteStorage_RunsAreIsolated(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()

	run1, err := db.BeginRun(ctx, time.Now().UTC(), "")
	require.NoError(t, err)
	run2, err := db.BeginRun(ctx, time.Now().UTC(), "")
	require.NoError(t, err)
	require.NotEqual(t, run1, run2)

	require.NoError(t, db.SaveSummary(ctx, run1, makeSummary("0xaaa", 1)))
	require.NoError(t, db.SaveSummary(ctx, run2, makeSummary("0xbbb", 2)))

	got, err := db.GetRunSummaries(ctx, run1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "0xaaa", got[0].Wallet)
}
