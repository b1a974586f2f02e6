package search

import (
	"github.com/chewxy/math32"
	"github.com/renjuzero/renjuzero/board"
)

// Select is the PUCT child-selection step: given the player about to move,
// it picks the child maximizing
//
//	U(s, a) = Q(s, a) + PUCT * P(s, a) * sqrt(parentVisits) / (1 + visits(a))
//
// where Q(s, a) is the child's running evaluation (or, for an unvisited
// child, the parent's first-play-urgency estimate from the oracle), and
// P(s, a) is the prior the oracle assigned that move at expansion time.
// Returns nilNode if every child is invalid, so the caller can stop the
// descent there instead of backing up through a move that can't be played.
func (n *Node) Select(of board.Player) naughty {
	var sumScore float32
	var parentVisits uint32

	t := treeFromUintptr(n.tree)
	children := t.Children(n.id)
	for _, kid := range children {
		child := t.nodeFromNaughty(kid)
		if !child.IsValid() {
			continue
		}
		visits := child.Visits()
		parentVisits += visits
		if visits > 0 {
			sumScore += child.Score()
		}
	}

	var best naughty = nilNode
	var bestValue float32 = math32.Inf(-1)
	fpu := n.NNEvaluate(of)
	numerator := math32.Sqrt(float32(parentVisits))

	for _, kid := range children {
		child := t.nodeFromNaughty(kid)
		if !child.IsActive() {
			continue
		}

		qsa := fpu
		visits := child.Visits()
		if visits > 0 {
			qsa = child.Evaluate(of)
		}
		psa := child.Score()
		denominator := 1.0 + float32(visits)
		puct := t.PUCT * psa * (numerator / denominator)
		usa := qsa + puct

		if usa > bestValue {
			bestValue = usa
			best = kid
		}
	}

	return best
}
