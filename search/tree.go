// Package search implements a parallel Monte Carlo Tree Search engine
// guided by an oracle.Oracle policy/value function: Node holds the
// per-position statistics, Selector (Node.Select) walks down via PUCT,
// Expander materializes new children from the oracle's priors (biased by
// pattern.Scanner's forcing-shape detection), Simulator drives the
// recursive select/expand/backup pipeline across a worker pool, and
// RootDriver turns the resulting tree into a move.
package search

import (
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chewxy/math32"
	"github.com/renjuzero/renjuzero/board"
	"github.com/renjuzero/renjuzero/oracle"
	"github.com/renjuzero/renjuzero/pattern"
)

// Pass and Resign are the two sentinel moves understood throughout search,
// mirroring board.Single's own IsPass/IsResignation sentinels.
const (
	Pass   = board.Single(-1)
	Resign = board.Single(-2)
)

// PassPreference governs how RootDriver treats a pass at the root.
type PassPreference int

const (
	DontPreferPass PassPreference = iota
	PreferPass
	DontResign
)

// Config configures a Tree.
type Config struct {
	PUCT    float32 // exploration constant, (0, 1]
	Timeout time.Duration

	BoardSize int // the board is BoardSize x BoardSize

	RandomCount       int // root moves before this move number get proportional randomization
	Budget            int32
	RandomMinVisits   uint32
	RandomTemperature float32
	DumbPass          bool
	ResignPercentage  float32
	PassPreference    PassPreference

	// KillSuperkos, if true, invalidates a just-expanded child whose
	// resulting position repeats an earlier one in this game. It is only
	// ever applied once, right after root expansion and before workers
	// start, since pruning a node a worker is mid-descent through is
	// unsafe.
	KillSuperkos bool

	NumWorkers int // defaults to runtime.NumCPU() if 0

	// Noise, if true, perturbs the root's children priors with symmetric
	// Dirichlet(NoiseAlpha) noise right after root expansion, the way
	// self-play training runs diversify the game tree. Search-to-play
	// configurations leave this off.
	Noise      bool
	NoiseEps   float32
	NoiseAlpha float32

	// TacticalBoost gates the Expander's forcing-shape prior override: a
	// compile-time switch in the source, exposed here as a configuration
	// option per spec. Off, expansion links the oracle's raw, renormalized
	// priors with no tactical bias; the root-decision override
	// (rootTacticalOverride) is unaffected, since spec.md couples the two
	// hooks but treats them as discrete policies.
	TacticalBoost bool
}

func DefaultConfig(boardSize int) Config {
	return Config{
		PUCT:           1.0,
		Timeout:        500 * time.Millisecond,
		BoardSize:      boardSize,
		DumbPass:       true,
		PassPreference: DontPreferPass,
		Budget:         10000,
		NoiseEps:       0.25,
		NoiseAlpha:     0.03,
		TacticalBoost:  true,
	}
}

func (c Config) IsValid() bool { return c.PUCT > 0 && c.PUCT <= 1 }

// sa is a state-action tuple, used as a key for the cached root policy.
type sa struct {
	s board.Zobrist
	a board.Single
}

// Tree is the arena-backed MCTS tree and the engine's single point of
// synchronization for structural mutation (adding a node, growing the
// child-list slices). Per-node statistics are read through Node's own
// atomics; Node.Update takes the tree lock so that a visit and its score
// are recorded together.
type Tree struct {
	sync.RWMutex
	Config
	oracle oracle.Oracle
	scan   pattern.Scanner
	rand   *rand.Rand

	nodes     []Node
	children  [][]naughty
	childLock []sync.Mutex

	freelist  []naughty
	freeables []naughty

	searchState
	playouts, nc int32
	running      atomic.Value

	cachedPolicies map[sa]float32

	lumberjack
}

// New builds a Tree rooted at state, ready to search with o as its
// policy/value oracle.
func New(state board.State, conf Config, o oracle.Oracle) *Tree {
	retVal := &Tree{
		Config: conf,
		oracle: o,
		scan:   pattern.New(conf.BoardSize),
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),

		nodes:     make([]Node, 0, 12288),
		children:  make([][]naughty, 0, 12288),
		childLock: make([]sync.Mutex, 0, 12288),

		searchState: searchState{
			root:    nilNode,
			current: state,
		},

		cachedPolicies: make(map[sa]float32),
		lumberjack:     makeLumberJack(),
	}
	go retVal.start()
	retVal.searchState.tree = ptrFromTree(retVal)
	retVal.searchState.maxDepth = conf.BoardSize * conf.BoardSize
	return retVal
}

// New allocates a fresh node for move, with the given prior and value, and
// marks it visited once and Active — mirroring the way a node that has
// just been created by expansion is immediately usable by Select.
func (t *Tree) New(move board.Single, score, value float32) (retVal naughty) {
	n := t.alloc()
	N := t.nodeFromNaughty(n)
	atomic.StoreInt32(&N.move, int32(move))
	atomic.StoreUint32(&N.visits, 1)
	atomic.StoreUint32(&N.status, uint32(Active))
	atomic.StoreUint32(&N.score, math32.Float32bits(score))
	atomic.StoreUint32(&N.value, math32.Float32bits(value))
	return n
}

// SetState points the tree's search at a new board position.
func (t *Tree) SetState(s board.State) {
	t.Lock()
	t.current = s
	t.Unlock()
}

func (t *Tree) Nodes() int { return len(t.nodes) }

// Policies returns how often Think chose each move from state's exact
// position, across every search this tree has performed, normalized to a
// distribution over state's action space plus a final slot for a pass.
// Intended for training-data capture.
func (t *Tree) Policies(state board.State) []float32 {
	hash := state.Hash()
	actionSpacePlusPass := state.ActionSpace() + 1
	retVal := make([]float32, actionSpacePlusPass)
	var sum float32
	for i := 0; i < actionSpacePlusPass; i++ {
		a := board.Single(i)
		if i == actionSpacePlusPass-1 {
			a = Pass
		}
		prob := t.cachedPolicies[sa{s: hash, a: a}]
		retVal[i] = prob
		sum += prob
	}
	if sum > 0 {
		for i := range retVal {
			retVal[i] /= sum
		}
	}
	return retVal
}

func (t *Tree) numWorkers() int {
	if t.NumWorkers > 0 {
		return t.NumWorkers
	}
	return runtime.NumCPU()
}

// alloc returns a node from the freelist, or grows the arena.
func (t *Tree) alloc() naughty {
	t.Lock()
	l := len(t.freelist)
	if l == 0 {
		N := Node{
			tree:                ptrFromTree(t),
			id:                  naughty(len(t.nodes)),
			minPSARatioChildren: defaultMinPsaRatio,
		}
		t.nodes = append(t.nodes, N)
		t.children = append(t.children, make([]naughty, 0, t.BoardSize*t.BoardSize+1))
		t.childLock = append(t.childLock, sync.Mutex{})
		n := naughty(len(t.nodes) - 1)
		t.Unlock()
		return n
	}

	i := t.freelist[l-1]
	t.freelist = t.freelist[:l-1]
	t.Unlock()
	return i
}

// free returns n to the freelist. Callers must be certain nothing still
// holds a reference to n: there is no reference counting.
func (t *Tree) free(n naughty) {
	t.children[int(n)] = t.children[int(n)][:0]
	t.freelist = append(t.freelist, n)
	t.nodes[int(n)].reset()
}

// cleanup discards every child of oldRoot except newRoot, invalidating
// and queueing them for free, then collapses oldRoot's child list down to
// just newRoot. Used when the tree is reused across a move the search
// already explored.
func (t *Tree) cleanup(oldRoot, newRoot naughty) {
	for _, kid := range t.Children(oldRoot) {
		if kid != newRoot {
			t.nodeFromNaughty(kid).Invalidate()
			t.freeables = append(t.freeables, kid)
			t.cleanChildren(kid)
		}
	}
	t.Lock()
	t.children[oldRoot] = t.children[oldRoot][:1]
	t.children[oldRoot][0] = newRoot
	t.Unlock()
}

func (t *Tree) cleanChildren(root naughty) {
	for _, kid := range t.Children(root) {
		t.nodeFromNaughty(kid).Invalidate()
		t.freeables = append(t.freeables, kid)
		t.cleanChildren(kid)
	}
	t.Lock()
	t.children[root] = t.children[root][:0]
	t.Unlock()
}

// randomizeChildren moves one of of's children to the front, drawn with
// probability proportional to its visit count raised to
// 1/RandomTemperature, giving early
// moves game-to-game variety instead of always playing the top search
// result.
func (t *Tree) randomizeChildren(of naughty) {
	var accum, norm float32
	var accumVector []float32
	children := t.Children(of)
	for _, kid := range children {
		visits := t.nodeFromNaughty(kid).Visits()
		if norm == 0 {
			norm = float32(visits)
			if visits <= t.RandomMinVisits {
				return
			}
		}
		if visits > t.RandomMinVisits {
			accum += math32.Pow(float32(visits)/norm, 1/t.RandomTemperature)
			accumVector = append(accumVector, accum)
		}
	}
	rnd := t.rand.Float32() * accum
	var index int
	for i, a := range accumVector {
		if rnd < a {
			index = i
			break
		}
	}
	if index == 0 {
		return
	}
	for i := 0; i < len(children)-index; i++ {
		children[i], children[i+index] = children[i+index], children[i]
	}
}

// Reset clears every node and child list back to empty, keeping the
// allocated backing arrays.
func (t *Tree) Reset() {
	t.Lock()
	defer t.Unlock()

	t.freelist = t.freelist[:0]
	t.freeables = t.freeables[:0]
	for i := range t.nodes {
		t.nodes[i].reset()
		t.freelist = append(t.freelist, t.nodes[i].id)
	}
	for i := range t.children {
		t.children[i] = t.children[i][:0]
	}

	t.playouts = 0
	t.nodes = t.nodes[:0]
	t.cachedPolicies = make(map[sa]float32)
	runtime.GC()
}
