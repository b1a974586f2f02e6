package search

import (
	"fmt"

	"github.com/renjuzero/renjuzero/board"
	"github.com/renjuzero/renjuzero/board/renju"
)

// Example demonstrates the diagnostic dump functions a caller uses while a
// search is running: DumpAnalysis for a one-line progress ping, and
// DumpStats for a per-child breakdown with its principal variation.
func Example() {
	tree := newTestTree()
	b := renju.New(5)
	tree.current = b

	root := tree.alloc()
	tree.root = root
	r := tree.nodeFromNaughty(root)
	r.Activate()

	a := tree.New(board.Single(6), 0.7, 0.5)
	c := tree.New(board.Single(12), 0.3, 0.5)
	r.AddChild(a)
	r.AddChild(c)
	r.setMinPsaRatioChildren(0)

	tree.nodeFromNaughty(a).Update(1.0)

	fmt.Println(tree.DumpAnalysis(3))
	fmt.Print(tree.DumpStats(board.Player(board.Black), b))

	// Output:
	// playouts: 3, win:  0.00%, pv: 6
	//    6 ->       2 (V: 50.00%) (N: 70.00%) PV:
	//   12 ->       1 (V:  0.00%) (N: 30.00%) PV:
}
