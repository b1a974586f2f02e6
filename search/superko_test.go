package search

import (
	"testing"

	"github.com/renjuzero/renjuzero/board"
	"github.com/renjuzero/renjuzero/board/renju"
	"github.com/stretchr/testify/assert"
)

// A pass leaves the board unchanged, so it trivially repeats the position
// the tree started from: the starting hash is already seen once in New,
// and passing bumps its count to two.
func TestKillSuperkosInvalidatesRepeatedPass(t *testing.T) {
	tree := newTestTree()
	tree.current = renju.New(9)

	root := tree.alloc()
	tree.root = root
	tree.nodeFromNaughty(root).Activate()

	passChild := tree.New(Pass, 1, 0.5)
	tree.nodeFromNaughty(root).AddChild(passChild)

	tree.killSuperkos(board.Player(board.Black), tree.current)

	assert.False(t, tree.nodeFromNaughty(passChild).IsValid())
}

func TestKillSuperkosLeavesNonRepeatingMoveValid(t *testing.T) {
	tree := newTestTree()
	tree.current = renju.New(9)

	root := tree.alloc()
	tree.root = root
	tree.nodeFromNaughty(root).Activate()

	moveChild := tree.New(board.Single(40), 1, 0.5)
	tree.nodeFromNaughty(root).AddChild(moveChild)

	tree.killSuperkos(board.Player(board.Black), tree.current)

	assert.True(t, tree.nodeFromNaughty(moveChild).IsValid())
}
