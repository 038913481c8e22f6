package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig() simConfig {
	return simConfig{
		Games:    3,
		Strategy: "greedy",
		Seed:     5,
		DeltaT:   1.0 / 60,
		MaxTicks: 3000,
	}
}

func TestRun(t *testing.T) {
	for _, deferred := range []bool{false, true} {
		cfg := testConfig()
		cfg.Deferred = deferred

		report, err := run(context.Background(), cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		require.Len(t, report.Results, 3)

		for _, res := range report.Results {
			assert.Zero(t, res.Rejected)
			assert.Positive(t, res.Moves)
			assert.GreaterOrEqual(t, res.Score, res.Moves)
			assert.GreaterOrEqual(t, res.Hands, 1)
		}
		assert.Equal(t, report.Scores.Max, report.Best)
		assert.Positive(t, report.TotalTicks)
		assert.NotEmpty(t, report.Systems)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	scores := func() []int {
		report, err := run(context.Background(), testConfig(), zaptest.NewLogger(t))
		require.NoError(t, err)
		var out []int
		for _, res := range report.Results {
			out = append(out, res.Score)
		}
		return out
	}
	assert.Equal(t, scores(), scores())
}

func TestRunUnknownStrategy(t *testing.T) {
	cfg := testConfig()
	cfg.Strategy = "psychic"
	_, err := run(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := run(ctx, testConfig(), zaptest.NewLogger(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Games:    2,
		Strategy: "first",
		Seed:     9,
		Results: []GameResult{
			{Index: 1, Score: 120, Moves: 30, Hands: 10},
			{Index: 2, Score: 80, Moves: 20, Hands: 7, Truncated: true},
		},
		Best: 120,
	}
	report.Finalize()
	assert.Equal(t, IntStats{Min: 80, Max: 120, Total: 200, Avg: 100}, report.Scores)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# Blockfit Autoplay Report")
	assert.Contains(t, out, "| 1 | 120 | 30 |")
	assert.Contains(t, out, "| 2 | 80* | 20 |")
	assert.Contains(t, out, "avg 100.0, min 80, max 120")
	assert.Contains(t, out, "hit the tick limit")
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3, 1, 2}}
	s.Finalize()
	assert.Equal(t, time.Duration(1), s.Min)
	assert.Equal(t, time.Duration(3), s.Max)
	assert.Equal(t, time.Duration(2), s.Avg)
}
