package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rocket-Z/Astra-Do/experiments/metrics"
	"github.com/Rocket-Z/Astra-Do/game"
	"github.com/Rocket-Z/Astra-Do/searcher"
)

type mockSearcher struct {
	move  game.Cell
	calls int
}

func (m *mockSearcher) FindNextMove(ctx context.Context, pos game.Position) (game.Cell, metrics.SearchMetric) {
	m.calls++
	return m.move, metrics.SearchMetric{Episodes: 7}
}

func TestEvaluationAgent(t *testing.T) {
	s := &mockSearcher{move: 29}
	a := NewEvaluationAgent(s)

	move, metric := a.FindMove(context.Background(), game.NewPosition())

	require.Equal(t, game.Cell(29), move)
	require.Equal(t, 7, metric.Episodes)
	require.Equal(t, 1, s.calls)
}

func TestAdjustTemperature(t *testing.T) {
	policy := map[game.Cell]float64{11: 1, 29: 3}

	t.Run("temperature one normalizes visits", func(t *testing.T) {
		got := adjustTemperature(policy, 1)

		require.InDelta(t, 0.25, got[11], 1e-9)
		require.InDelta(t, 0.75, got[29], 1e-9)
	})

	t.Run("low temperature sharpens", func(t *testing.T) {
		got := adjustTemperature(policy, 0.5)

		require.InDelta(t, 0.1, got[11], 1e-9)
		require.InDelta(t, 0.9, got[29], 1e-9)
	})

	t.Run("no visits falls back to uniform", func(t *testing.T) {
		got := adjustTemperature(map[game.Cell]float64{2: 0, 20: 0}, 1)

		require.Equal(t, map[game.Cell]float64{2: 0.5, 20: 0.5}, got)
	})
}

func TestSample(t *testing.T) {
	policy := map[game.Cell]float64{47: 0.5, 11: 0.2, 29: 0.3}

	require.Equal(t, game.Cell(11), sample(policy, 0.1))
	require.Equal(t, game.Cell(29), sample(policy, 0.3))
	require.Equal(t, game.Cell(47), sample(policy, 0.99))
	require.Equal(t, game.Cell(47), sample(policy, 1.0), "Rounding overflow should fall back to the last move")
	require.Equal(t, game.Pass, sample(map[game.Cell]float64{}, 0.5))
}

func TestTrainingAgent(t *testing.T) {
	t.Run("forced move", func(t *testing.T) {
		a := NewTrainingAgent(searcher.NewMCTS(searcher.WithIterations(50)), 1, 1)
		pos := game.NewPositionFrom([]game.Cell{32}, []game.Cell{33}, true)

		move, _ := a.FindMove(context.Background(), pos)

		require.Equal(t, game.Cell(34), move)
	})

	t.Run("blocked side passes", func(t *testing.T) {
		a := NewTrainingAgent(searcher.NewMCTS(searcher.WithIterations(50)), 1, 1)
		pos := game.NewPositionFrom([]game.Cell{0}, []game.Cell{53}, true)

		move, _ := a.FindMove(context.Background(), pos)

		require.Equal(t, game.Pass, move)
	})

	t.Run("seeded agents replay the same move", func(t *testing.T) {
		pos := game.NewPosition()
		newAgent := func() Agent {
			return NewTrainingAgent(searcher.NewMCTS(searcher.WithIterations(200), searcher.WithSeed(4)), 1, 9)
		}

		move1, _ := newAgent().FindMove(context.Background(), pos)
		move2, _ := newAgent().FindMove(context.Background(), pos)

		require.True(t, pos.IsLegal(move1))
		require.Equal(t, move1, move2)
	})
}
