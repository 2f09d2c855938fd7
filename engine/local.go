package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rocket-Z/Astra-Do/experiments/metrics"
	"github.com/Rocket-Z/Astra-Do/game"
	"github.com/Rocket-Z/Astra-Do/meta"
	"github.com/Rocket-Z/Astra-Do/searcher/agent"
)

type Option func(e *LocalEngine)

// WithPosition starts the game from pos instead of the opening.
func WithPosition(pos game.Position) Option {
	return func(e *LocalEngine) {
		e.Position = pos
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

type LocalEngine struct {
	Position game.Position
	black    agent.Agent
	white    agent.Agent
	maxTurns int
}

func NewLocalEngine(black, white agent.Agent, options ...Option) *LocalEngine {
	if black == nil || white == nil {
		panic("need an agent for each side")
	}
	e := &LocalEngine{
		Position: game.NewPosition(),
		black:    black,
		white:    white,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until both sides are blocked.
func (e *LocalEngine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", e.Position.ToMove())

	turnCount := 1
	for !e.Position.IsTerminal() && turnCount <= e.maxTurns {
		if err := ctx.Err(); err != nil {
			return gameMetric, moveMetrics, err
		}

		side := e.Position.ToMove()
		current := e.white
		if side == game.Black {
			current = e.black
		}

		move, searchMetric := current.FindMove(ctx, e.Position)
		next, err := e.Position.PlayChecked(move)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("turn %d: %s agent: %w", turnCount, side, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turnCount,
			Side:         side,
			Move:         move,
			SearchMetric: searchMetric,
		})
		if move == game.Pass {
			gameMetric.Passes++
		}
		log.Debug().Msgf("turn %d: %s plays %s after %d episodes", turnCount, side, move, searchMetric.Episodes)

		e.Position = next
		turnCount++
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Black, gameMetric.White = e.Position.PieceCounts()
	gameMetric.Winner = e.Position.Winner()

	if gameMetric.Winner == game.None {
		log.Warn().Msgf("stopped after %d turns (no winner yet)", e.maxTurns)
	} else {
		log.Info().Msgf("game over after %d moves: %s (black %d, white %d)",
			gameMetric.TotalMoves, gameMetric.Winner, gameMetric.Black, gameMetric.White)
	}

	return gameMetric, moveMetrics, nil
}
