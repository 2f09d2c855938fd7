package experiments

import (
	"github.com/Rocket-Z/Astra-Do/experiments/metrics"
)

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Goroutines: 1, Duration: TimeBudget},
	{ID: 2, Goroutines: 2, Duration: TimeBudget},
	{ID: 3, Goroutines: 4, Duration: TimeBudget},
	{ID: 4, Goroutines: 8, Duration: TimeBudget},
	{ID: 5, Goroutines: 16, Duration: TimeBudget},
}

// Throughput pairs each parallel config with itself for the same playing
// strength and similar game length, so episodes per move can be compared.
func Throughput(outDir string, games int) Experiment {
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}
	return Experiment{
		Name:     "throughput",
		OutDir:   outDir,
		Games:    games,
		Configs:  parallelConfigs,
		MatchUps: matchUps,
	}
}

// Strength pairs each parallel config against the sequential baseline.
func Strength(outDir string, games int) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Duration: TimeBudget}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs[1:] {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return Experiment{
		Name:     "strength",
		OutDir:   outDir,
		Games:    games,
		Configs:  append([]metrics.AgentConfig{baseline}, parallelConfigs[1:]...),
		MatchUps: matchUps,
	}
}

// Iterations pairs a fixed-budget baseline against agents searching more.
func Iterations(outDir string, games int) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Iterations: 500}
	configs := []metrics.AgentConfig{
		{ID: 1, Goroutines: 1, Iterations: 1000},
		{ID: 2, Goroutines: 1, Iterations: 5000},
		{ID: 3, Goroutines: 1, Iterations: 25000},
	}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return Experiment{
		Name:     "iterations",
		OutDir:   outDir,
		Games:    games,
		Configs:  append([]metrics.AgentConfig{baseline}, configs...),
		MatchUps: matchUps,
	}
}

// Named returns a predefined experiment.
func Named(name, outDir string, games int) (Experiment, bool) {
	switch name {
	case "throughput":
		return Throughput(outDir, games), true
	case "strength":
		return Strength(outDir, games), true
	case "iterations":
		return Iterations(outDir, games), true
	default:
		return Experiment{}, false
	}
}
