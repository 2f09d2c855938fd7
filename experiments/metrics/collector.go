package metrics

import (
	"sync/atomic"
	"time"

	"github.com/Rocket-Z/Astra-Do/game"
)

type AgentConfig struct {
	ID          int           `yaml:"id"`
	Goroutines  int           `yaml:"goroutines"`
	Iterations  int           `yaml:"iterations"`
	Duration    time.Duration `yaml:"duration"`
	Seed        uint64        `yaml:"seed"`
	Temperature float64       `yaml:"temperature"` // Zero plays the best move, above zero samples
}

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	RolloutPlies int
	Nodes        int
}

type MoveMetric struct {
	Step int
	Side game.Side
	Move game.Cell
	SearchMetric
}

type GameMetric struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Winner     game.Side
	Black      int // Final piece counts
	White      int
	TotalMoves int
	Passes     int
}

// Margin is the winner's lead in pieces.
func (g GameMetric) Margin() int {
	if g.Black > g.White {
		return g.Black - g.White
	}
	return g.White - g.Black
}

type Collector interface {
	Start(goroutines int)
	AddEpisode()
	AddRolloutPlies(plies int)
	SetNodes(nodes int)
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	startTime    time.Time
	episodes     atomic.Int64
	rolloutPlies atomic.Int64
	nodes        atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddRolloutPlies(plies int) {
	m.rolloutPlies.Add(int64(plies))
}

func (m *collector) SetNodes(nodes int) {
	m.nodes.Store(int64(nodes))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		RolloutPlies: int(m.rolloutPlies.Load()),
		Nodes:        int(m.nodes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int)      {}
func (m *dummyCollector) AddEpisode()               {}
func (m *dummyCollector) AddRolloutPlies(plies int) {}
func (m *dummyCollector) SetNodes(nodes int)        {}
func (m *dummyCollector) Complete() SearchMetric    { return SearchMetric{} }
