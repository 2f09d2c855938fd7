package engine

import (
	"context"

	"github.com/Rocket-Z/Astra-Do/experiments/metrics"
)

type Engine interface {
	// Run plays a game till both sides are blocked or a max number of turns is reached
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
