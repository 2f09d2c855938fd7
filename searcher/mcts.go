package searcher

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/Rocket-Z/Astra-Do/experiments/metrics"
	"github.com/Rocket-Z/Astra-Do/game"
)

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines int
	iterations int
	duration   time.Duration
	minVisits  int
	cSquared   float64
	seed       uint64
	collector  func() metrics.Collector

	mu   sync.Mutex
	tree *tree
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithGoroutines runs rollouts on several workers. Selection, expansion and
// backup stay serialized on the tree.
func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithSeed fixes the random source. Worker i draws from seed+i, so a
// single-goroutine search is reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMinVisits(visits int) Option {
	return func(m *MCTS) {
		if visits >= 0 {
			m.minVisits = visits
		}
	}
}

func WithExploration(cSquared float64) Option {
	return func(m *MCTS) {
		if cSquared >= 0 {
			m.cSquared = cSquared
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.collector = metrics.NewCollector
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: 1,
		minVisits:  MinVisits,
		cSquared:   CSquared,
		seed:       uint64(time.Now().UnixNano()),
		collector:  metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations <= 0 && m.duration <= 0 {
		panic("Must specify search iterations or duration")
	}
	return m
}

// FindNextMove returns game.Pass when the side to move is blocked and the
// only legal move without searching when there is just one. Otherwise it
// runs the search budget and picks the root child with the best UCB1 score.
func (m *MCTS) FindNextMove(ctx context.Context, pos game.Position) (game.Cell, metrics.SearchMetric) {
	switch pos.NumLegalMoves() {
	case 0:
		return game.Pass, metrics.SearchMetric{}
	case 1:
		return pos.LegalMask().Nth(0), metrics.SearchMetric{}
	}

	metric := m.search(ctx, pos)

	m.mu.Lock()
	defer m.mu.Unlock()
	best := m.tree.pickChild(0, m.cSquared)
	if best < 0 {
		// Budget ran out before the root collected enough visits to expand
		log.Debug().Msgf("root not expanded after %d episodes, playing first legal move", metric.Episodes)
		return pos.LegalMask().Nth(0), metric
	}
	child := &m.tree.nodes[best]
	log.Debug().Msgf("picked %s: %d visits, avg score %.2f, %d nodes",
		child.move, child.visits, child.avgScore(), m.tree.size())
	return child.move, metric
}

// Simulate runs the search and returns the visit count of every root move.
// Blocked and forced positions return their single move without searching.
func (m *MCTS) Simulate(ctx context.Context, pos game.Position) (map[game.Cell]float64, metrics.SearchMetric) {
	moves := pos.LegalMoves()
	switch len(moves) {
	case 0:
		return map[game.Cell]float64{game.Pass: 1}, metrics.SearchMetric{}
	case 1:
		return map[game.Cell]float64{moves[0]: 1}, metrics.SearchMetric{}
	}

	metric := m.search(ctx, pos)

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tree.root().children) == 0 {
		uniform := make(map[game.Cell]float64, len(moves))
		for _, move := range moves {
			uniform[move] = 1
		}
		return uniform, metric
	}
	return m.tree.policy(), metric
}

// search builds a fresh tree for pos. It stops when the iteration budget is
// spent, the duration elapses or ctx is done, whichever comes first. The
// stop conditions are only checked between iterations.
func (m *MCTS) search(ctx context.Context, pos game.Position) metrics.SearchMetric {
	m.mu.Lock()
	m.tree = newTree(pos)
	m.mu.Unlock()

	collector := m.collector()
	collector.Start(m.goroutines)

	if m.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.duration)
		defer cancel()
	}

	remaining := m.iterations
	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			for ctx.Err() == nil {
				if !m.episode(rng, &remaining, collector) {
					return
				}
				collector.AddEpisode()
			}
		}(rand.New(rand.NewSource(m.seed + uint64(i))))
	}
	wg.Wait()

	m.mu.Lock()
	collector.SetNodes(m.tree.size())
	m.mu.Unlock()

	return collector.Complete()
}

// episode runs one select, expand, rollout and backup cycle. It returns
// false once the iteration budget is used up.
func (m *MCTS) episode(rng *rand.Rand, remaining *int, collector metrics.Collector) bool {
	m.mu.Lock()
	if m.iterations > 0 {
		if *remaining <= 0 {
			m.mu.Unlock()
			return false
		}
		*remaining--
	}

	t := m.tree
	leaf := t.selectLeaf(m.cSquared)
	if t.nodes[leaf].visits >= m.minVisits && !t.nodes[leaf].isTerminal() {
		t.expand(leaf)
		children := t.nodes[leaf].children
		leaf = children[rng.Intn(len(children))]
	}
	pos := t.nodes[leaf].position
	m.mu.Unlock()

	score, plies := rollout(pos, rng)
	collector.AddRolloutPlies(plies)

	m.mu.Lock()
	t.backup(leaf, score)
	m.mu.Unlock()
	return true
}

// rollout plays uniformly random moves until both sides are blocked and
// returns the final black-minus-white piece count.
func rollout(pos game.Position, rng *rand.Rand) (score float64, plies int) {
	for !pos.IsTerminal() {
		move := game.Pass
		if n := pos.NumLegalMoves(); n > 0 {
			move = pos.LegalMask().Nth(rng.Intn(n))
		}
		pos.Apply(move)
		plies++
	}
	return float64(pos.Score()), plies
}
