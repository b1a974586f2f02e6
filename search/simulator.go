package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chewxy/math32"
	"github.com/renjuzero/renjuzero/board"
)

// MaxTreeSize bounds the arena: a tree is never allowed to grow past this
// many nodes, regardless of search budget or timeout.
const MaxTreeSize = 25000000

// Result is a NaN-tagged float32: noResult() is a specific NaN bit pattern
// used as a sentinel meaning "this branch produced nothing to back up"
// (an unexpandable, already-exhausted leaf), distinguishable from every
// real result a playout could produce.
type Result float32

const noResultBits = 0x7FE00000

func noResult() Result { return Result(math32.Float32frombits(noResultBits)) }

func isNullResult(r Result) bool { return math32.Float32bits(float32(r)) == noResultBits }

// searchState is one worker goroutine's view into an ongoing search: which
// tree it's walking, the board position and root it's currently descending
// from, and how deep it's gone.
type searchState struct {
	tree          uintptr
	current, prev board.State
	root          naughty
	depth         int

	maxPlayouts, maxVisits, maxDepth int
}

func (s *searchState) nodeCount() int32 {
	return atomic.LoadInt32(&treeFromUintptr(s.tree).nc)
}

func (s *searchState) incrementPlayout() {
	atomic.AddInt32(&treeFromUintptr(s.tree).playouts, 1)
}

func (s *searchState) isRunning() bool {
	t := treeFromUintptr(s.tree)
	running, _ := t.running.Load().(bool)
	return running && s.nodeCount() < MaxTreeSize
}

// minPsaRatio degrades the minimum prior ratio new children must clear as
// the tree fills up, so a tree under memory pressure stops expanding low
// priority moves well before it stops expanding high priority ones.
func (s *searchState) minPsaRatio() float32 {
	ratio := float32(s.nodeCount()) / float32(MaxTreeSize)
	switch {
	case ratio > 0.95:
		return 0.01
	case ratio > 0.5:
		return 0.001
	}
	return 0
}

// Think runs the Simulator: it spawns a worker per CPU (or Config.NumWorkers),
// each repeatedly driving the select/expand/backup pipeline from the root
// until Config.Budget iterations have run, the tree reaches MaxTreeSize, or
// Config.Timeout elapses. Once the timeout is up it hands off to
// RootDriver's BestMove.
func (t *Tree) Think(player board.Player) board.Single {
	t.log("THINK. Player %v\n%v", player, t.current)
	t.updateRoot()
	t.current.SetToMove(player)
	boardHash := t.current.Hash()

	t.Lock()
	for _, f := range t.freeables {
		t.free(f)
	}
	t.freeables = t.freeables[:0]
	t.Unlock()

	t.prepareRoot(player, t.current)

	numWorkers := t.numWorkers()
	ch := make(chan *searchState, numWorkers)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		ch <- &searchState{
			tree:     ptrFromTree(t),
			current:  t.current,
			root:     t.root,
			maxDepth: t.BoardSize * t.BoardSize,
		}
	}

	var iter int32
	t.running.Store(true)
	ctx, cancel := context.WithCancel(context.Background())
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go doSearch(t.root, &iter, ch, ctx, &wg)
	}

	ticker := time.NewTicker(250 * time.Millisecond)
	deadline := time.After(t.Timeout)
waiting:
	for {
		select {
		case <-ticker.C:
			t.log("%s", t.DumpAnalysis(atomic.LoadInt32(&t.playouts)))
		case <-deadline:
			break waiting
		}
	}
	ticker.Stop()
	cancel()
	wg.Wait()
	close(ch)

	root := t.nodeFromNaughty(t.root)
	if !root.HasChildren() {
		_, moves := t.oracle.Evaluate(t.current)
		if len(moves) == 0 {
			return Pass
		}
		best := moves[0]
		for _, m := range moves[1:] {
			if m.Prior > best.Prior {
				best = m
			}
		}
		t.log("Returning Early. Best %v", best.Move)
		return best.Move
	}

	t.log("%s", t.DumpStats(player, t.current))
	retVal := t.BestMove()
	t.prev = t.current.Clone()
	t.log("Move Number %d, Iterations %d Playouts: %v Nodes: %v. Best: %v", t.current.MoveNumber(), iter, t.playouts, len(t.nodes), retVal)
	t.cachedPolicies[sa{boardHash, retVal}]++
	return retVal
}

func doSearch(start naughty, iterBudget *int32, ch chan *searchState, ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case s := <-ch:
			if !s.isRunning() {
				ch <- s
				return
			}
			current := s.current.Clone()
			res := s.pipeline(current, start)
			if !isNullResult(res) {
				s.incrementPlayout()
			}

			t := treeFromUintptr(s.tree)
			val := atomic.AddInt32(iterBudget, 1)
			if val > t.Budget {
				t.running.Store(false)
			}
			if s.depth == s.maxDepth {
				s.root = t.root
				s.current = t.current
				s.depth = 0
			}
			ch <- s
		case <-ctx.Done():
			return
		}
	}
}

// pipeline is the recursive Simulator step: SELECT a child via PUCT,
// recurse; if the node has no children yet, EXPAND it via the Expander and
// use the oracle's value as the result instead of recursing further;
// either way, BACKPROPAGATE whatever result comes back up through Update.
func (s *searchState) pipeline(current board.State, start naughty) (retVal Result) {
	retVal = noResult()
	s.depth++
	if s.depth > s.maxDepth {
		s.depth--
		return
	}

	player := current.ToMove()
	nodeCount := s.nodeCount()

	t := treeFromUintptr(s.tree)
	n := t.nodeFromNaughty(start)
	n.addVirtualLoss()

	isExpandable := n.IsExpandable(0)
	if isExpandable && current.Passes() >= 2 {
		retVal = Result(combinedScore(current))
	} else if isExpandable && nodeCount < MaxTreeSize {
		hadChildren := n.HasChildren()
		value, ok := t.expandAndSimulate(start, current, s.minPsaRatio())
		if !hadChildren && ok {
			retVal = Result(value)
		}
	}

	if n.HasChildren() && isNullResult(retVal) {
		if selected := n.Select(player); selected != nilNode {
			next := t.nodeFromNaughty(selected)
			move := next.Move()
			pm := board.PlayerMove{Player: player, Single: move}

			if current.Check(pm) {
				current = current.Apply(pm)
				if sk, ok := current.(superkoChecker); ok && sk.Superko() {
					next.Invalidate()
				} else {
					retVal = s.pipeline(current, next.id)
				}
			}
		}
	}

	if !isNullResult(retVal) {
		n.Update(float32(retVal))
	}
	n.undoVirtualLoss()
	s.depth--
	return retVal
}
