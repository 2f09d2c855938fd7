package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Rocket-Z/Astra-Do/config"
	"github.com/Rocket-Z/Astra-Do/engine"
	"github.com/Rocket-Z/Astra-Do/experiments"
	"github.com/Rocket-Z/Astra-Do/gamemaster"
	"github.com/Rocket-Z/Astra-Do/player"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	mode := flag.String("mode", "", "game, experiment or play (overrides the config)")
	side := flag.String("side", "black", "Side of the human player in play mode: black, white or both")
	experiment := flag.String("experiment", "", "Predefined experiment: throughput, strength or iterations")
	games := flag.Int("games", 0, "Number of games per match up")
	level := flag.String("log-level", "", "Log level (overrides the config)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
	}
	if *level != "" {
		cfg.LogLevel = *level
	}
	if *experiment != "" {
		cfg.Experiment = *experiment
		cfg.Mode = config.ModeExperiment
	}
	if *games > 0 {
		cfg.Games = *games
	}
	play := *mode == "play"
	if *mode != "" && !play {
		cfg.Mode = *mode
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(lvl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch {
	case play:
		err = runPlay(ctx, cfg, *side)
	case cfg.Mode == config.ModeExperiment:
		err = runExperiment(ctx, cfg)
	default:
		err = runGame(ctx, cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("stopped")
	}
}

// runGame plays one logged game between two configured agents.
func runGame(ctx context.Context, cfg *config.Config) error {
	black, _ := cfg.Agent(cfg.Black)
	white, _ := cfg.Agent(cfg.White)
	e := engine.NewLocalEngine(experiments.NewAgent(black), experiments.NewAgent(white), engine.WithMaxTurns(cfg.MaxTurns))

	gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(e.Position)
	if result := gamemaster.ResultText(e.Position); result != "" {
		fmt.Println(result)
	}
	log.Info().Msgf("%d moves in %s", len(moveMetrics), gameMetric.Duration)
	return nil
}

func runExperiment(ctx context.Context, cfg *config.Config) error {
	exp, ok := experiments.Named(cfg.Experiment, cfg.OutputDir, cfg.Games)
	if cfg.Experiment == "" {
		exp = experiments.Experiment{
			Name:     "custom",
			OutDir:   cfg.OutputDir,
			Games:    cfg.Games,
			Configs:  cfg.Agents,
			MatchUps: cfg.MatchUpConfigs(),
		}
	} else if !ok {
		return fmt.Errorf("unknown experiment %q", cfg.Experiment)
	}
	exp.MaxTurns = cfg.MaxTurns

	dir, results, err := experiments.Run(ctx, exp)
	if err != nil {
		return err
	}
	for _, r := range results {
		log.Info().Msgf("agent %d vs agent %d: %d-%d-%d", r.Agent1, r.Agent2, r.Wins, r.Losses, r.Draws)
	}
	log.Info().Msgf("results stored in %s", dir)
	return nil
}

// runPlay lets a person play on the terminal against the first agent.
func runPlay(ctx context.Context, cfg *config.Config, side string) error {
	var mode gamemaster.Mode
	switch side {
	case "black":
		mode = gamemaster.PlayAsBlack
	case "white":
		mode = gamemaster.PlayAsWhite
	case "both":
		mode = gamemaster.PlayMyself
	default:
		return fmt.Errorf("unknown side %q", side)
	}
	ai, _ := cfg.Agent(cfg.White)
	if mode == gamemaster.PlayAsWhite {
		ai, _ = cfg.Agent(cfg.Black)
	}
	session := gamemaster.NewSession(experiments.NewAgent(ai))
	return player.NewConsoleController(session, mode, os.Stdin, os.Stdout).Run(ctx)
}
