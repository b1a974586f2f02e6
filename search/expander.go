package search

import (
	"sort"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/renjuzero/renjuzero/board"
	"github.com/renjuzero/renjuzero/pattern"
)

// Per-move tactical prior bonuses, applied on top of the oracle's raw
// policy before normalization. These are deliberately huge, the same way
// the original sets node.first to a flat 100.0f/90.0f for a forcing five:
// a raw policy mass of at most 1 per move can never outweigh them, so
// whichever tier fires dominates the renormalized distribution regardless
// of how many legal moves are on the board. An immediate five dominates
// everything else outright (forcingFive), a double-four or
// double-open-three is nearly as decisive, and a single four still
// deserves a strong push over a plain positional prior.
const (
	forcingFive        float32 = 1000.0
	forcingDoubleFour  float32 = 990.0
	forcingDoubleThree float32 = 980.0
	forcingSingleFour  float32 = 970.0

	// blockingFive etc. are smaller than the matching attacking bonus:
	// winning outright is still preferred over merely denying the
	// opponent a win, but both get pushed well above a normal prior.
	blockingFive        float32 = 900.0
	blockingDoubleFour  float32 = 890.0
	blockingDoubleThree float32 = 880.0
	blockingSingleFour  float32 = 870.0
)

// tacticalBoost returns the additive prior bonus for playing color at v,
// combining the attacking shape color itself would make and the
// defensive value of denying the opponent the same shape there.
func tacticalBoost(scan pattern.Scanner, b []board.Colour, v int, color, opponent board.Colour) float32 {
	mine := scan.Scan(b, v, color)
	theirs := scan.Scan(b, v, opponent)

	switch {
	case mine.Fives > 0:
		return forcingFive
	case theirs.Fives > 0:
		return blockingFive
	case mine.Fours > 1:
		return forcingDoubleFour
	case theirs.Fours > 1:
		return blockingDoubleFour
	case mine.Threes > 1:
		return forcingDoubleThree
	case theirs.Threes > 1:
		return blockingDoubleThree
	case mine.Fours == 1:
		return forcingSingleFour
	case theirs.Fours == 1:
		return blockingSingleFour
	}
	return 0
}

// expandAndSimulate is the Expander: it queries the oracle for a value and
// a policy over state's legal moves, biases that policy with the forcing
// shapes pattern.Scanner detects, and materializes a child for every
// candidate move whose (possibly boosted) prior clears minPsaRatio of the
// strongest candidate.
func (t *Tree) expandAndSimulate(parent naughty, state board.State, minPsaRatio float32) (value float32, ok bool) {
	n := t.nodeFromNaughty(parent)
	if !n.IsExpandable(minPsaRatio) {
		return 0, false
	}
	if state.Passes() >= 2 {
		return 0, false
	}

	player := state.ToMove()
	oracleValue, scored := t.oracle.Evaluate(state)
	value = oracleValue
	if board.Colour(player) == board.White {
		value = 1 - value
	}

	priors := make(map[board.Single]float32, len(scored))
	for _, sm := range scored {
		priors[sm.Move] = sm.Prior
	}
	priors[Pass] = 0 // pass is never offered as a child in this variant

	b := state.Board()
	opponent := board.Colour(player.Opponent())

	var nodelist []pair
	var legalSum float32
	for i := 0; i < state.ActionSpace(); i++ {
		move := board.Single(i)
		if !state.Check(board.PlayerMove{Player: player, Single: move}) {
			continue
		}
		score := priors[move]
		if t.TacticalBoost {
			score += tacticalBoost(t.scan, b, i, board.Colour(player), opponent)
		}
		nodelist = append(nodelist, pair{Score: score, Coord: move})
		legalSum += score
	}
	if len(nodelist) == 0 {
		return value, true
	}

	if legalSum > math32.SmallestNonzeroFloat32 {
		for i := range nodelist {
			nodelist[i].Score /= legalSum
		}
	} else {
		prob := 1 / float32(len(nodelist))
		for i := range nodelist {
			nodelist[i].Score = prob
		}
	}

	sort.Sort(byScore(nodelist))
	maxPsa := nodelist[0].Score
	oldMinPsa := maxPsa * n.MinPsaRatio()
	newMinPsa := maxPsa * minPsaRatio

	var skippedChildren bool
	for _, p := range nodelist {
		if p.Score < newMinPsa {
			skippedChildren = true
		} else if p.Score < oldMinPsa {
			if nn := n.findChild(p.Coord); nn == nilNode {
				nn := t.New(p.Coord, p.Score, value)
				n.AddChild(nn)
				atomic.AddInt32(&t.nc, 1)
			}
		}
	}

	if skippedChildren {
		n.setMinPsaRatioChildren(minPsaRatio)
	} else {
		n.setMinPsaRatioChildren(0)
	}
	return value, true
}
