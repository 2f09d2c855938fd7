package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant, square-rooted in UCB1

const MinVisits = 5 // Visits a leaf collects before it is expanded

const DefaultIterations = 10000

// Rollout outcomes, from black's perspective
const (
	Win  = 1.0
	Loss = -Win
	Draw = 0.0
)

// ucb1 scores a node for the player who moved into it. winSum is kept from
// black's side, so it is negated when black is to move at the node.
func ucb1(winSum float64, visits int, blackToMove bool, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	// UCB1 = w/n + sqrt(c^2*ln(N)/n)
	mean := winSum / float64(visits)
	if blackToMove {
		mean = -mean
	}
	return mean + math.Sqrt(c2LnN/float64(visits))
}

func outcome(score float64) float64 {
	switch {
	case score > 0:
		return Win
	case score < 0:
		return Loss
	default:
		return Draw
	}
}
