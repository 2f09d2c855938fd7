package searcher

import (
	"context"

	"github.com/Rocket-Z/Astra-Do/experiments/metrics"
	"github.com/Rocket-Z/Astra-Do/game"
)

type Searcher interface {
	FindNextMove(ctx context.Context, pos game.Position) (game.Cell, metrics.SearchMetric)
}

// BestMove searches pos for the given number of iterations with default
// settings and returns the chosen move, or game.Pass when there is none.
// A non-positive count searches DefaultIterations times.
func BestMove(pos game.Position, iterations int) game.Cell {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	move, _ := NewMCTS(WithIterations(iterations)).FindNextMove(context.Background(), pos)
	return move
}
