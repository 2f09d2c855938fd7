package agent

import (
	"context"

	"github.com/Rocket-Z/Astra-Do/experiments/metrics"
	"github.com/Rocket-Z/Astra-Do/game"
)

type Agent interface {
	// FindMove returns the move to play in pos and performance metrics (if collected) from the search
	FindMove(ctx context.Context, pos game.Position) (game.Cell, metrics.SearchMetric)
}
