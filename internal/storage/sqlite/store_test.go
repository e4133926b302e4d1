package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyike/MarketMindGo/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestJournalRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	runID, err := store.CreateRun(ctx, 100.0, 3)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	records := []models.StepRecord{
		{
			Timestep: 1,
			Price:    101.5,
			News:     models.News{Content: "tech giant beats earnings", Sentiment: models.SentimentPositive},
			Trades: []models.Trade{
				{AgentName: "optimistic investor A", Action: models.ActionBuy, Quantity: 20, Price: 100.0, Cost: "2000"},
			},
		},
		{
			Timestep: 2,
			Price:    99.8,
			News:     models.News{Content: "calm day", Sentiment: models.SentimentNeutral, Timestamp: 1},
		},
	}
	for _, record := range records {
		require.NoError(t, store.AppendStep(ctx, runID, record))
	}

	loaded, err := store.Steps(ctx, runID)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, records[0], loaded[0])
	assert.Equal(t, records[1], loaded[1])
}

func TestAppendStepUpsertsOnTimestep(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	runID, err := store.CreateRun(ctx, 100.0, 3)
	require.NoError(t, err)

	require.NoError(t, store.AppendStep(ctx, runID, models.StepRecord{Timestep: 1, Price: 100.0}))
	require.NoError(t, store.AppendStep(ctx, runID, models.StepRecord{Timestep: 1, Price: 105.0}))

	loaded, err := store.Steps(ctx, runID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 105.0, loaded[0].Price)
}

func TestFinishRunAndListRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	runID, err := store.CreateRun(ctx, 100.0, 3)
	require.NoError(t, err)
	require.NoError(t, store.AppendStep(ctx, runID, models.StepRecord{Timestep: 1, Price: 101.0}))
	require.NoError(t, store.AppendStep(ctx, runID, models.StepRecord{Timestep: 2, Price: 102.0}))

	stats := models.SimulationStatistics{TotalTrades: 5, NumAgents: 3}
	require.NoError(t, store.FinishRun(ctx, runID, stats))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, 100.0, runs[0].InitialPrice)
	assert.Equal(t, 3, runs[0].NumAgents)
	assert.Equal(t, 2, runs[0].Steps)
}

func TestRunLoadsOneSummary(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	runID, err := store.CreateRun(ctx, 250.0, 4)
	require.NoError(t, err)
	require.NoError(t, store.AppendStep(ctx, runID, models.StepRecord{Timestep: 1, Price: 251.0}))

	run, err := store.Run(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, runID, run.ID)
	assert.Equal(t, 250.0, run.InitialPrice)
	assert.Equal(t, 4, run.NumAgents)
	assert.Equal(t, 1, run.Steps)

	_, err = store.Run(ctx, "no-such-run")
	assert.Error(t, err)
}

func TestStepsUnknownRunIsEmpty(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Steps(context.Background(), "no-such-run")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
