package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/renjuzero/renjuzero/board"
)

// PrincipalVariation walks the best-visited line of play below n: at each
// step it sorts n's children best-first under the side to move, follows
// the top one, and recurses from the resulting position. It stops at a
// node with no searched children, the way the engine's own PV walk
// bottoms out once it runs off the end of the tree.
func (t *Tree) PrincipalVariation(player board.Player, state board.State, n naughty) []board.Single {
	children := t.Children(n)
	if len(children) == 0 {
		return nil
	}

	t.childLock[n].Lock()
	sort.Sort(fancySort{underEval: player, l: children, t: t})
	t.childLock[n].Unlock()

	best := children[0]
	bestNode := t.nodeFromNaughty(best)
	if bestNode.IsNotVisited() {
		return nil
	}

	move := bestNode.Move()
	next := state.Clone()
	next.Apply(board.PlayerMove{Player: player, Single: move})

	rest := t.PrincipalVariation(player.Opponent(), next, best)
	return append([]board.Single{move}, rest...)
}

// DumpStats formats one line per searched root child: its visit count,
// win rate, move probability, and the principal variation that follows
// it, sorted best move first.
func (t *Tree) DumpStats(player board.Player, state board.State) string {
	root := t.nodeFromNaughty(t.root)
	if !root.HasChildren() {
		return ""
	}

	children := t.Children(t.root)
	t.childLock[t.root].Lock()
	sort.Sort(fancySort{underEval: player, l: children, t: t})
	t.childLock[t.root].Unlock()

	if len(children) == 0 || t.nodeFromNaughty(children[0]).IsNotVisited() {
		return ""
	}

	var sb strings.Builder
	for i, kid := range children {
		n := t.nodeFromNaughty(kid)
		if i >= 2 && n.Visits() == 0 {
			break
		}

		var eval float32
		if n.Visits() > 0 {
			eval = n.Evaluate(player) * 100
		}
		fmt.Fprintf(&sb, "%4v -> %7d (V: %5.2f%%) (N: %5.2f%%) PV:", n.Move(), n.Visits(), eval, n.Score()*100)

		next := state.Clone()
		next.Apply(board.PlayerMove{Player: player, Single: n.Move()})
		for _, mv := range t.PrincipalVariation(player.Opponent(), next, kid) {
			fmt.Fprintf(&sb, " %v", mv)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DumpAnalysis formats a single progress line: playouts so far, the
// root's current win rate for the side to move, and the principal
// variation from the root. Think logs this periodically while it runs.
func (t *Tree) DumpAnalysis(playouts int32) string {
	player := t.current.ToMove()
	root := t.nodeFromNaughty(t.root)

	var winrate float32
	if root.Visits() > 0 {
		winrate = root.Evaluate(player) * 100
	}

	pv := t.PrincipalVariation(player, t.current, t.root)
	var sb strings.Builder
	fmt.Fprintf(&sb, "playouts: %d, win: %5.2f%%, pv:", playouts, winrate)
	for _, mv := range pv {
		fmt.Fprintf(&sb, " %v", mv)
	}
	return sb.String()
}
