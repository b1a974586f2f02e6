package search

import (
	"sort"
	"sync/atomic"

	"github.com/renjuzero/renjuzero/board"
	"github.com/renjuzero/renjuzero/pattern"
)

// rootShapeScore scores a forcing-shape tally the way the root override
// weighs it: fives dominate everything, a double-four is nearly as good,
// and a single four still counts, but open threes don't factor in at the
// root the way they do when biasing expansion priors deeper in the tree.
func rootShapeScore(t pattern.Tally) (score float32, forcing bool) {
	switch {
	case t.Fives > 0:
		return 1.0 + float32(t.Fives)/1000, true
	case t.Fours > 1:
		return 0.99 + float32(t.Fours)/1000, true
	case t.Fours == 1:
		return 0.98, true
	}
	return 0, false
}

// rootTacticalOverride scans every legal root move for an immediate win or
// a shape strong enough that deeper search might still miss it in the
// time budget, and returns the move to play instead of whatever Select
// would otherwise prefer. A move's rank in the already-searched,
// visit-sorted child order breaks ties between equally forcing moves,
// via a bonus too small to change which scoring tier a move falls into.
func (t *Tree) rootTacticalOverride(player board.Player) (board.Single, bool) {
	children := t.Children(t.root)
	sort.Sort(fancySort{underEval: player, l: children, t: t})

	state := t.current
	b := state.Board()
	opponent := board.Colour(player.Opponent())
	size := t.BoardSize * t.BoardSize

	rankOf := func(move board.Single) int {
		for i, kid := range children {
			if t.nodeFromNaughty(kid).Move() == move {
				return i
			}
		}
		return size
	}

	var bestMine, bestEnemy float32
	bestMineMove, bestEnemyMove := Pass, Pass
	haveMine, haveEnemy := false, false

	for v := 0; v < size; v++ {
		move := board.Single(v)
		if !state.Check(board.PlayerMove{Player: player, Single: move}) {
			continue
		}
		tiebreak := float32(size-rankOf(move)) / 1000000

		mine := t.scan.Scan(b, v, board.Colour(player))
		if score, ok := rootShapeScore(mine); ok {
			score += tiebreak
			if !haveMine || score > bestMine {
				bestMine, bestMineMove, haveMine = score, move, true
			}
		}

		theirs := t.scan.Scan(b, v, opponent)
		if score, ok := rootShapeScore(theirs); ok {
			score += tiebreak
			if !haveEnemy || score > bestEnemy {
				bestEnemy, bestEnemyMove, haveEnemy = score, move, true
			}
		}
	}

	if bestMine < 0.99 && bestEnemy < 0.99 {
		return Pass, false
	}
	switch {
	case haveMine && bestMine >= 1.0:
		return bestMineMove, true
	case haveEnemy && bestEnemy >= 1.0:
		return bestEnemyMove, true
	case haveMine && bestMine >= 0.99:
		return bestMineMove, true
	case haveEnemy && bestEnemy >= 0.99 && bestMine < 0.98:
		return bestEnemyMove, true
	}
	return Pass, false
}

// BestMove is the RootDriver's final decision: it sorts the root's
// children best-first, applies proportional randomization for early
// moves, falls back off a losing pass, resigns in place of a losing
// non-pass move once the position is old and searched enough, and lets
// rootTacticalOverride preempt all of that when a forcing shape is on
// the board.
func (t *Tree) BestMove() board.Single {
	player := t.current.ToMove()
	moveNum := t.current.MoveNumber()

	if move, ok := t.rootTacticalOverride(player); ok {
		return move
	}

	children := t.Children(t.root)
	t.childLock[t.root].Lock()
	sort.Sort(fancySort{underEval: player, l: children, t: t})
	t.childLock[t.root].Unlock()

	if moveNum < t.RandomCount {
		t.randomizeChildren(t.root)
	}
	if len(children) == 0 {
		return Pass
	}

	firstChild := t.nodeFromNaughty(children[0])
	bestMove := firstChild.Move()
	bestScore := firstChild.Evaluate(player)

	switch {
	case t.PassPreference == DontPreferPass && bestMove.IsPass():
		bestMove, bestScore = t.noPassBestMove(bestMove, bestScore, t.root, t.current, player)
	case !t.DumbPass && bestMove.IsPass():
		score := t.current.Score(board.Player(board.Black))
		if (score > 0 && board.Colour(player) == board.White) || (score < 0 && board.Colour(player) == board.Black) {
			bestMove, bestScore = t.noPassBestMove(bestMove, bestScore, t.root, t.current, player)
		}
	case !t.DumbPass && t.current.LastMove().Single.IsPass():
		score := t.current.Score(board.Player(board.Black))
		if !((score > 0 && board.Colour(player) == board.White) || (score < 0 && board.Colour(player) == board.Black)) {
			bestMove = Pass
		}
	}
	if !bestMove.IsPass() && t.shouldResign(bestScore, player) {
		bestMove = Resign
	}
	return bestMove
}

// prepareRoot ensures the root node has an evaluation and, if it has no
// children yet, expands it before the worker pool starts descending
// through it.
func (t *Tree) prepareRoot(player board.Player, state board.State) {
	root := t.nodeFromNaughty(t.root)
	hadChildren := len(t.Children(t.root)) > 0
	var value float32
	if root.IsExpandable(0) {
		value, _ = t.expandAndSimulate(t.root, state, t.minPsaRatio())
	}

	if hadChildren {
		value = root.Evaluate(player)
	} else {
		root.Update(value)
	}

	if t.Noise {
		t.applyDirichletNoise(t.root, t.NoiseEps, t.NoiseAlpha)
	}

	if t.KillSuperkos {
		t.killSuperkos(player, state)
	}
}

// killSuperkos invalidates any freshly expanded root child whose move
// would repeat an earlier position. A pass is exactly such a move here,
// since no stone is ever removed and applying it leaves the board
// unchanged, so it isn't skipped the way resignation is. It must only
// run here, once, before the worker pool starts: pruning a child
// concurrently with a descent through it is unsafe.
func (t *Tree) killSuperkos(player board.Player, state board.State) {
	for _, kid := range t.Children(t.root) {
		child := t.nodeFromNaughty(kid)
		move := child.Move()
		if move.IsResignation() {
			continue
		}
		probe := state.Clone()
		probe.Apply(board.PlayerMove{Player: player, Single: move})
		if sk, ok := probe.(superkoChecker); ok && sk.Superko() {
			child.Invalidate()
		}
	}
}

// superkoChecker is implemented by board.State implementations that track
// positional repetition, such as board/renju.Board.
type superkoChecker interface {
	Superko() bool
}

// newRootState tries to advance the tree's existing root to match
// t.current by replaying the moves between t.prev and t.current down the
// already-searched subtree, so a Think call doesn't throw away everything
// learned about a position reached before. It reports whether it
// succeeded.
func (t *Tree) newRootState() bool {
	if t.root == nilNode || t.prev == nil {
		return false
	}
	depth := t.current.MoveNumber() - t.prev.MoveNumber()
	if depth < 0 {
		return false
	}

	tmp := t.current.Clone()
	for i := 0; i < depth; i++ {
		tmp.UndoLastMove()
	}
	if !tmp.Eq(t.prev) {
		return false
	}

	for i := 0; i < depth; i++ {
		tmp.Fwd()
		move := tmp.LastMove()

		oldRoot := t.root
		newRoot := t.nodeFromNaughty(oldRoot).findChild(move.Single)
		if newRoot == nilNode {
			return false
		}
		t.Lock()
		t.root = newRoot
		t.Unlock()
		t.cleanup(oldRoot, newRoot)

		t.prev = t.prev.Apply(move)
	}

	if t.current.MoveNumber() != t.prev.MoveNumber() {
		return false
	}
	return t.current.Eq(t.prev)
}

// updateRoot finds (or creates) the node Think should descend from this
// turn: it first tries newRootState to reuse the existing tree, and falls
// back to a brand-new root node for the first legal move it finds.
func (t *Tree) updateRoot() {
	t.freeables = t.freeables[:0]
	player := t.current.ToMove()
	if !t.newRootState() || t.root == nilNode {
		if t.current.Check(board.PlayerMove{Player: player, Single: Pass}) {
			t.root = t.New(Pass, 0, 0)
		} else {
			for i := 0; i < t.current.ActionSpace(); i++ {
				if t.current.Check(board.PlayerMove{Player: player, Single: board.Single(i)}) {
					t.root = t.New(board.Single(i), 0, 0)
					break
				}
			}
		}
	}
	t.prev = nil
	root := t.nodeFromNaughty(t.root)
	atomic.StoreInt32(&t.nc, int32(root.countChildren()))

	if len(t.Children(t.root)) == 0 {
		root.setMinPsaRatioChildren(2.0)
	}
}

// resignMinVisits is the minimum root visit count before resignation is
// considered: too few playouts and bestScore isn't trustworthy enough to
// give up on.
const resignMinVisits = 500

// shouldResign reports whether bestScore is low enough, and the game old
// and searched enough, that RootDriver should resign rather than play the
// chosen move.
func (t *Tree) shouldResign(bestScore float32, player board.Player) bool {
	if t.PassPreference == DontResign {
		return false
	}
	if t.ResignPercentage == 0 {
		return false
	}
	if t.nodeFromNaughty(t.root).Visits() <= resignMinVisits {
		return false
	}
	threshold := (t.BoardSize * t.BoardSize) / 4
	if t.current.MoveNumber() <= threshold {
		return false
	}

	resignThreshold := t.ResignPercentage
	if resignThreshold < 0 {
		resignThreshold = 0.1
	}
	return bestScore <= resignThreshold
}

// eyeChecker is implemented by board.State implementations that can
// recognize a single-vertex eye, such as board/renju.Board.
type eyeChecker interface {
	IsEye(color board.Colour, vertex int) bool
}

// noPass finds the best child of of that isn't a pass, isn't an eye for
// the side to move, and remains legal in state.
func (t *Tree) noPass(of naughty, state board.State, player board.Player) naughty {
	eyes, _ := state.(eyeChecker)
	for _, kid := range t.Children(of) {
		child := t.nodeFromNaughty(kid)
		move := child.Move()
		if move.IsPass() || !state.Check(board.PlayerMove{Player: player, Single: move}) {
			continue
		}
		if eyes != nil && eyes.IsEye(board.Colour(player), int(move)) {
			continue
		}
		return kid
	}
	return nilNode
}

func (t *Tree) noPassBestMove(bestMove board.Single, bestScore float32, of naughty, state board.State, player board.Player) (board.Single, float32) {
	nopass := t.noPass(of, state, player)
	if nopass.isValid() {
		np := t.nodeFromNaughty(nopass)
		bestMove = np.Move()
		bestScore = 1
		if !np.IsNotVisited() {
			bestScore = np.Evaluate(player)
		}
	}
	return bestMove, bestScore
}
