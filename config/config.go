package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/Rocket-Z/Astra-Do/experiments/metrics"
	"github.com/Rocket-Z/Astra-Do/meta"
)

const (
	ModeGame       = "game"
	ModeExperiment = "experiment"
)

type Config struct {
	Mode      string `yaml:"mode,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
	OutputDir string `yaml:"output_dir,omitempty"`
	MaxTurns  int    `yaml:"max_turns,omitempty"`

	// Game mode: agents by ID for each side
	Black int `yaml:"black,omitempty"`
	White int `yaml:"white,omitempty"`

	// Experiment mode: a predefined experiment, or the agents and match ups below
	Experiment string                `yaml:"experiment,omitempty"`
	Games      int                   `yaml:"games,omitempty"`
	Agents     []metrics.AgentConfig `yaml:"agents,omitempty"`
	MatchUps   [][2]int              `yaml:"matchups,omitempty"`
}

func Default() *Config {
	return &Config{
		Mode:      ModeGame,
		LogLevel:  zerolog.LevelInfoValue,
		OutputDir: "results",
		MaxTurns:  meta.MAX_TURNS,
		Black:     1,
		White:     1,
		Games:     meta.GAMES,
		Agents: []metrics.AgentConfig{
			{ID: 1, Goroutines: meta.GO_ROUTINES, Iterations: meta.ITERATIONS},
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func Store(path string, cfg *Config) error {
	if cfg == nil {
		panic(errors.New("config is nil"))
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0666)
}

func (c *Config) Validate() error {
	if c.Mode != ModeGame && c.Mode != ModeExperiment {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	ids := make(map[int]bool, len(c.Agents))
	for _, agent := range c.Agents {
		if ids[agent.ID] {
			return fmt.Errorf("duplicate agent id %d", agent.ID)
		}
		if agent.Iterations <= 0 && agent.Duration <= 0 {
			return fmt.Errorf("agent %d needs iterations or a duration", agent.ID)
		}
		ids[agent.ID] = true
	}

	switch c.Mode {
	case ModeGame:
		for _, id := range []int{c.Black, c.White} {
			if !ids[id] {
				return fmt.Errorf("unknown agent id %d", id)
			}
		}
	case ModeExperiment:
		if c.Games <= 0 {
			return errors.New("games must be positive")
		}
		if c.Experiment != "" {
			return nil
		}
		if len(c.MatchUps) == 0 {
			return errors.New("no experiment or match ups given")
		}
		for _, matchUp := range c.MatchUps {
			for _, id := range matchUp {
				if !ids[id] {
					return fmt.Errorf("unknown agent id %d in match up %v", id, matchUp)
				}
			}
		}
	}
	return nil
}

// Agent looks up an agent config by ID.
func (c *Config) Agent(id int) (metrics.AgentConfig, bool) {
	for _, agent := range c.Agents {
		if agent.ID == id {
			return agent, true
		}
	}
	return metrics.AgentConfig{}, false
}

// MatchUpConfigs resolves the match ups into agent configs.
func (c *Config) MatchUpConfigs() [][]metrics.AgentConfig {
	matchUps := make([][]metrics.AgentConfig, 0, len(c.MatchUps))
	for _, matchUp := range c.MatchUps {
		a, _ := c.Agent(matchUp[0])
		b, _ := c.Agent(matchUp[1])
		matchUps = append(matchUps, []metrics.AgentConfig{a, b})
	}
	return matchUps
}
