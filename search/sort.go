package search

import (
	"github.com/chewxy/math32"
	"github.com/renjuzero/renjuzero/board"
)

// fancySort orders a node list best-first for the given player: most
// visits wins; among unvisited nodes, highest prior wins; among equally
// visited nodes, highest evaluation wins.
type fancySort struct {
	underEval board.Player
	l         []naughty
	t         *Tree
}

func (l fancySort) Len() int      { return len(l.l) }
func (l fancySort) Swap(i, j int) { l.l[i], l.l[j] = l.l[j], l.l[i] }
func (l fancySort) Less(i, j int) bool {
	li := l.t.nodeFromNaughty(l.l[i])
	lj := l.t.nodeFromNaughty(l.l[j])

	liVisits, ljVisits := li.Visits(), lj.Visits()
	if liVisits != ljVisits {
		return liVisits > ljVisits
	}
	if liVisits == 0 {
		return li.Score() > lj.Score()
	}
	return li.Evaluate(l.underEval) > lj.Evaluate(l.underEval)
}

// pair is a scored candidate move, used while normalizing oracle priors
// during expansion.
type pair struct {
	Coord board.Single
	Score float32
}

type byScore []pair

func (l byScore) Len() int           { return len(l) }
func (l byScore) Less(i, j int) bool { return l[i].Score > l[j].Score }
func (l byScore) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }

// byMove orders children by their move index, for deterministic graph dumps.
type byMove struct {
	t *Tree
	l []naughty
}

func (l byMove) Len() int { return len(l.l) }
func (l byMove) Less(i, j int) bool {
	return l.t.nodeFromNaughty(l.l[i]).Move() < l.t.nodeFromNaughty(l.l[j]).Move()
}
func (l byMove) Swap(i, j int) { l.l[i], l.l[j] = l.l[j], l.l[i] }

// combinedScore is the terminal value from Black's perspective, used when
// backing up a pass-pass (game-ended) position: 1 if Black won, 0 if White
// won, 0.5 for a tie.
func combinedScore(state board.State) float32 {
	margin := state.Score(board.Player(board.Black)) - state.Score(board.Player(board.White))
	switch {
	case margin > 0:
		return 1
	case margin < 0:
		return 0
	default:
		return 0.5
	}
}

func argmax(a []float32) int {
	var retVal int
	max := math32.Inf(-1)
	for i := range a {
		if a[i] > max {
			max = a[i]
			retVal = i
		}
	}
	return retVal
}
