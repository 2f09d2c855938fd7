package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rocket-Z/Astra-Do/engine"
	"github.com/Rocket-Z/Astra-Do/experiments/metrics"
	"github.com/Rocket-Z/Astra-Do/game"
	"github.com/Rocket-Z/Astra-Do/searcher"
	"github.com/Rocket-Z/Astra-Do/searcher/agent"
)

const TimeBudget = 10 * time.Millisecond

type Experiment struct {
	Name     string
	OutDir   string
	Games    int // Per match up
	MaxTurns int
	Configs  []metrics.AgentConfig
	MatchUps [][]metrics.AgentConfig
}

// Result is the tally of one match up from the first agent's point of view.
type Result struct {
	Agent1, Agent2 int
	Wins           int
	Losses         int
	Draws          int
}

// Run plays every match up and stores the records as CSV files. Agents swap
// colours after every game. It returns the output directory.
func Run(ctx context.Context, exp Experiment) (string, []Result, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	results := make([]Result, 0, len(exp.MatchUps))

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchup := range exp.MatchUps {
		if len(matchup) != 2 {
			return "", nil, fmt.Errorf("match up %d has %d agents, want 2", mi+1, len(matchup))
		}
		config1 := matchup[0]
		config2 := matchup[1]
		result := Result{Agent1: config1.ID, Agent2: config2.ID}

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(exp.MatchUps), config1, config2)

		for i := 0; i < exp.Games; i++ {
			black, white := config1, config2
			if i%2 == 1 {
				black, white = config2, config1
			}

			log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(exp.MatchUps), i+1, exp.Games)

			gameMetric, moveMetrics, err := runGame(ctx, black, white, exp.MaxTurns)
			if err != nil {
				return "", nil, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				BlackAgent: black.ID,
				WhiteAgent: white.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			agent1Side := game.Black
			if i%2 == 1 {
				agent1Side = game.White
			}
			switch gameMetric.Winner {
			case agent1Side:
				result.Wins++
			case game.Draw, game.None:
				result.Draws++
			default:
				result.Losses++
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(exp.MatchUps), i+1, gameMetric.Winner)
		}
		results = append(results, result)
		log.Info().Msgf("completed matchup %d of %d: agent %d won %d, lost %d, drew %d",
			mi+1, len(exp.MatchUps), result.Agent1, result.Wins, result.Losses, result.Draws)
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	dir, err := store(exp, gameRecords, moveRecords)
	if err != nil {
		return "", nil, err
	}
	return dir, results, nil
}

func store(exp Experiment, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(exp.OutDir, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame executes a single game between two agents
func runGame(ctx context.Context, black, white metrics.AgentConfig, maxTurns int) (metrics.GameMetric, []metrics.MoveMetric, error) {
	e := engine.NewLocalEngine(NewAgent(black), NewAgent(white), engine.WithMaxTurns(maxTurns))
	return e.Run(ctx)
}

// NewAgent builds a searching agent. A positive temperature samples moves
// from the visit counts instead of playing the best one.
func NewAgent(config metrics.AgentConfig) agent.Agent {
	mcts := createMCTS(config)
	if config.Temperature > 0 {
		return agent.NewTrainingAgent(mcts, config.Temperature, config.Seed)
	}
	return agent.NewEvaluationAgent(mcts)
}

func createMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Seed > 0 {
		options = append(options, searcher.WithSeed(config.Seed))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(options...)
}
