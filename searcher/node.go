package searcher

import (
	"math"

	"github.com/Rocket-Z/Astra-Do/game"
)

const noParent int32 = -1

type node struct {
	position game.Position
	move     game.Cell // Move that led here, game.Pass for the root
	parent   int32
	children []int32
	visits   int
	scoreSum float64 // Sum of black-minus-white rollout scores
	winSum   float64 // +1 per black win, -1 per white win
}

func (n *node) isTerminal() bool {
	return n.position.IsTerminal()
}

func (n *node) update(score float64) {
	n.scoreSum += score
	n.winSum += outcome(score)
	n.visits++
}

func (n *node) avgScore() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.scoreSum / float64(n.visits)
}

// tree stores the search tree in one slice. Nodes refer to each other by
// index, so the whole tree goes away with the slice.
type tree struct {
	nodes []node
}

func newTree(root game.Position) *tree {
	return &tree{nodes: []node{{position: root, move: game.Pass, parent: noParent}}}
}

func (t *tree) root() *node {
	return &t.nodes[0]
}

func (t *tree) size() int {
	return len(t.nodes)
}

// expand adds one child per legal move, or a single pass child when the
// side to move is blocked. A node is expanded at most once.
func (t *tree) expand(id int32) {
	if len(t.nodes[id].children) > 0 {
		return
	}

	pos := t.nodes[id].position
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		moves = []game.Cell{game.Pass}
	}

	children := make([]int32, 0, len(moves))
	for _, move := range moves {
		t.nodes = append(t.nodes, node{
			position: pos.Play(move),
			move:     move,
			parent:   id,
		})
		children = append(children, int32(len(t.nodes)-1))
	}
	t.nodes[id].children = children
}

// selectLeaf descends from the root along maximal UCB1 children until it
// reaches a node without children.
func (t *tree) selectLeaf(cSquared float64) int32 {
	id := int32(0)
	for len(t.nodes[id].children) > 0 {
		id = t.pickChild(id, cSquared)
	}
	return id
}

// pickChild returns the child of id with the highest UCB1 score, the first
// unvisited child if there is one, or -1 for a leaf.
func (t *tree) pickChild(id int32, cSquared float64) int32 {
	parent := &t.nodes[id]
	normalizer := 0.0
	if parent.visits > 0 {
		normalizer = cSquared * math.Log(float64(parent.visits))
	}

	best := int32(-1)
	maxScore := math.Inf(-1)
	for _, c := range parent.children {
		score := t.score(c, normalizer)
		if score == math.Inf(1) {
			return c
		}
		if score > maxScore {
			maxScore = score
			best = c
		}
	}
	return best
}

func (t *tree) score(id int32, normalizer float64) float64 {
	n := &t.nodes[id]
	return ucb1(n.winSum, n.visits, n.position.BlackToMove(), normalizer)
}

// backup records a rollout score on id and every ancestor up to the root.
func (t *tree) backup(id int32, score float64) {
	for id != noParent {
		t.nodes[id].update(score)
		id = t.nodes[id].parent
	}
}

// policy maps each root move to its visit count.
func (t *tree) policy() map[game.Cell]float64 {
	root := t.root()
	policy := make(map[game.Cell]float64, len(root.children))
	for _, c := range root.children {
		policy[t.nodes[c].move] = float64(t.nodes[c].visits)
	}
	return policy
}
