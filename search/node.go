package search

import (
	"fmt"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/renjuzero/renjuzero/board"
)

// Status is a node's place in the tree: freshly allocated nodes start
// Invalid, become Active once the expansion that created them commits,
// and can later be Pruned when a sibling subtree is discarded.
type Status uint32

const (
	Invalid Status = iota
	Active
	Pruned
)

func (a Status) String() string {
	switch a {
	case Invalid:
		return "Invalid"
	case Active:
		return "Active"
	case Pruned:
		return "Pruned"
	}
	return "UNKNOWN STATUS"
}

// virtualLossUnit is the per-descent penalty applied while a playout is in
// flight through a node, steering concurrent goroutines away from a branch
// that's already being explored. 3 is the value AlphaGo/AlphaZero-style
// engines use; unlike a single on/off flag it's scaled by virtualLoss,
// which counts how many playouts are simultaneously in flight.
const virtualLossUnit float32 = 3.0

const defaultMinPsaRatio = 0x40000000 // 2.0 as float32 bits

// Node is one position in the search tree: a move, the prior and value the
// oracle assigned it at expansion time, and the running visit/score
// statistics accumulated by backpropagation. All stat fields are touched
// from multiple goroutines and are only ever read or written atomically;
// float32s are stored as their bit pattern (math32.Float32bits) since Go
// has no atomic float32.
type Node struct {
	move   int32  // board.Single
	visits uint32 // N(s, a)
	status uint32

	blackScores         uint32 // float32 bits: accumulated score from Black's perspective
	virtualLoss         int32  // count of playouts currently descending through this node
	minPSARatioChildren uint32 // float32 bits: progressive-widening threshold for new children
	score               uint32 // float32 bits: P(s, a), the oracle's prior for this move
	value               uint32 // float32 bits: the oracle's value estimate when this node was expanded

	id   naughty
	tree uintptr
}

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v Move: %v, Score: %v, Value %v Visits %v minPSARatioChildren %v Status: %v}",
		n.id, n.Move(), n.Score(), n.Value(), n.Visits(), n.MinPsaRatio(), Status(n.status))
}

// AddChild appends child to n's child list under the tree's structural lock.
func (n *Node) AddChild(child naughty) {
	t := treeFromUintptr(n.tree)
	t.Lock()
	t.children[n.id] = append(t.children[n.id], child)
	t.Unlock()
}

// IsNotVisited reports whether this node has never been backed up into.
func (n *Node) IsNotVisited() bool { return atomic.LoadUint32(&n.visits) == 0 }

// Update records one playout's result, folding score into the running
// black-perspective total and incrementing the visit count.
func (n *Node) Update(score float32) {
	t := treeFromUintptr(n.tree)
	t.Lock()
	atomic.AddUint32(&n.visits, 1)
	n.accumulate(score)
	t.Unlock()
}

func (n *Node) BlackScores() float32 {
	return math32.Float32frombits(atomic.LoadUint32(&n.blackScores))
}

func (n *Node) Move() board.Single { return board.Single(atomic.LoadInt32(&n.move)) }

func (n *Node) Score() float32 { return math32.Float32frombits(atomic.LoadUint32(&n.score)) }

func (n *Node) Value() float32 { return math32.Float32frombits(atomic.LoadUint32(&n.value)) }

func (n *Node) Visits() uint32 { return atomic.LoadUint32(&n.visits) }

func (n *Node) Activate()   { atomic.StoreUint32(&n.status, uint32(Active)) }
func (n *Node) Prune()      { atomic.StoreUint32(&n.status, uint32(Pruned)) }
func (n *Node) Invalidate() { atomic.StoreUint32(&n.status, uint32(Invalid)) }

func (n *Node) IsValid() bool  { return Status(atomic.LoadUint32(&n.status)) != Invalid }
func (n *Node) IsActive() bool { return Status(atomic.LoadUint32(&n.status)) == Active }
func (n *Node) IsPruned() bool { return Status(atomic.LoadUint32(&n.status)) == Pruned }

// HasChildren reports whether any child has been materialized yet. A fresh
// node's minPSARatioChildren starts at 2.0, a ratio no real prior can clear;
// expansion lowers it to the ratio actually used, or to 0 once every
// candidate move has a child, which is what flips this to true.
func (n *Node) HasChildren() bool { return n.MinPsaRatio() <= 1 }

// IsExpandable reports whether expanding with the given minimum P(s,a)
// ratio could add children this node doesn't already have.
func (n *Node) IsExpandable(minPsaRatio float32) bool { return minPsaRatio < n.MinPsaRatio() }

// VirtualLoss returns the current aggregate virtual-loss penalty: the
// number of in-flight descents through this node times virtualLossUnit.
func (n *Node) VirtualLoss() float32 {
	return float32(atomic.LoadInt32(&n.virtualLoss)) * virtualLossUnit
}

func (n *Node) MinPsaRatio() float32 {
	return math32.Float32frombits(atomic.LoadUint32(&n.minPSARatioChildren))
}

func (n *Node) setMinPsaRatioChildren(ratio float32) {
	atomic.StoreUint32(&n.minPSARatioChildren, math32.Float32bits(ratio))
}

func (n *Node) setScore(score float32) {
	atomic.StoreUint32(&n.score, math32.Float32bits(score))
}

func (n *Node) ID() int { return int(n.id) }

// Evaluate returns this node's mean result from player's perspective.
// Virtual loss only ever darkens White's view of a contested node: it's
// added to the black-perspective total before the 1-score flip, which
// makes Black look better and White look worse while the descent is
// in flight, so other goroutines prefer a different branch.
func (n *Node) Evaluate(player board.Player) float32 {
	visits := n.Visits()
	blackScores := n.BlackScores()
	if board.Colour(player) == board.White {
		blackScores += n.VirtualLoss()
	}
	score := blackScores / float32(visits)
	if board.Colour(player) == board.White {
		score = 1 - score
	}
	return score
}

// NNEvaluate returns the oracle's value estimate from player's
// perspective, used as the first-play-urgency estimate for unvisited
// children.
func (n *Node) NNEvaluate(player board.Player) float32 {
	if board.Colour(player) == board.White {
		return 1.0 - n.Value()
	}
	return n.Value()
}

func (n *Node) addVirtualLoss() { atomic.AddInt32(&n.virtualLoss, 1) }
func (n *Node) undoVirtualLoss() { atomic.AddInt32(&n.virtualLoss, -1) }

func (n *Node) accumulate(score float32) {
	evals := math32.Float32frombits(atomic.LoadUint32(&n.blackScores))
	evals += score
	atomic.StoreUint32(&n.blackScores, math32.Float32bits(evals))
}

// countChildren counts this node's descendants, recursively.
func (n *Node) countChildren() (retVal int) {
	t := treeFromUintptr(n.tree)
	for _, kid := range t.Children(n.id) {
		child := t.nodeFromNaughty(kid)
		if child.IsActive() {
			retVal += child.countChildren()
		}
		retVal++
	}
	return
}

// findChild returns the child node for move, or nilNode if none exists yet.
func (n *Node) findChild(move board.Single) naughty {
	t := treeFromUintptr(n.tree)
	for _, kid := range t.Children(n.id) {
		if t.nodeFromNaughty(kid).Move() == move {
			return kid
		}
	}
	return nilNode
}

func (n *Node) reset() {
	atomic.StoreInt32(&n.move, -1)
	atomic.StoreUint32(&n.visits, 0)
	atomic.StoreUint32(&n.status, 0)
	atomic.StoreUint32(&n.blackScores, 0)
	atomic.StoreUint32(&n.minPSARatioChildren, defaultMinPsaRatio)
	atomic.StoreUint32(&n.score, 0)
	atomic.StoreUint32(&n.value, 0)
	atomic.StoreInt32(&n.virtualLoss, 0)
}
