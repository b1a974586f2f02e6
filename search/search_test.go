package search_test

import (
	"testing"
	"time"

	"github.com/renjuzero/renjuzero/board"
	"github.com/renjuzero/renjuzero/board/renju"
	"github.com/renjuzero/renjuzero/oracle"
	"github.com/renjuzero/renjuzero/search"
	"github.com/stretchr/testify/assert"
)

func TestThinkReturnsLegalMoves(t *testing.T) {
	const size = 7
	b := renju.New(size)

	conf := search.DefaultConfig(size)
	conf.Timeout = 15 * time.Millisecond
	conf.Budget = 100
	conf.NumWorkers = 2

	dummy := oracle.Dummy{ValueFor: map[board.Player]float32{
		renju.BlackP: 0.5,
		renju.WhiteP: 0.5,
	}}

	tree := search.New(b, conf, dummy)
	player := renju.BlackP
	for i := 0; i < 8; i++ {
		move := tree.Think(player)
		assert.True(t, b.Check(board.PlayerMove{Player: player, Single: move}), "move %d (%v) should be legal", i, move)
		b.Apply(board.PlayerMove{Player: player, Single: move})
		if ended, _ := b.Ended(); ended {
			break
		}
		tree.SetState(b)
		player = renju.Opponent(player)
	}
}

func TestThinkRespectsImmediateWin(t *testing.T) {
	const size = 9
	b := renju.New(size)

	// four in a row for black at row 4, columns 2-5; white scattered
	// elsewhere. Black to move should take the open-five completion at
	// column 6 (or 1), a forcing shape the root override must catch even
	// under a tiny search budget.
	row := 4
	for col := 2; col <= 5; col++ {
		b.Apply(board.PlayerMove{Player: renju.BlackP, Single: board.Single(row*size + col)})
		if col <= 4 {
			b.Apply(board.PlayerMove{Player: renju.WhiteP, Single: board.Single(0*size + col)})
		}
	}
	b.SetToMove(renju.BlackP)

	conf := search.DefaultConfig(size)
	conf.Timeout = 10 * time.Millisecond
	conf.Budget = 20

	dummy := oracle.Dummy{ValueFor: map[board.Player]float32{
		renju.BlackP: 0.5,
		renju.WhiteP: 0.5,
	}}

	tree := search.New(b, conf, dummy)
	move := tree.Think(renju.BlackP)

	winning := move == board.Single(row*size+1) || move == board.Single(row*size+6)
	assert.True(t, winning, "expected the root tactical override to complete the open four, got %v", move)
}

func TestThinkBlocksOpponentImmediateWin(t *testing.T) {
	const size = 9
	b := renju.New(size)

	// four in a row for white at row 4, columns 2-5, both ends open. Black's
	// stones are scattered in a far corner and form no shape of their own,
	// so the only forcing move on the board is blocking white.
	row := 4
	corner := []int{0, 1, 8, size + 8}
	for i, col := range []int{2, 3, 4, 5} {
		b.Apply(board.PlayerMove{Player: renju.WhiteP, Single: board.Single(row*size + col)})
		b.Apply(board.PlayerMove{Player: renju.BlackP, Single: board.Single(corner[i])})
	}
	b.SetToMove(renju.BlackP)

	conf := search.DefaultConfig(size)
	conf.Timeout = 10 * time.Millisecond
	conf.Budget = 20

	dummy := oracle.Dummy{ValueFor: map[board.Player]float32{
		renju.BlackP: 0.5,
		renju.WhiteP: 0.5,
	}}

	tree := search.New(b, conf, dummy)
	move := tree.Think(renju.BlackP)

	blocking := move == board.Single(row*size+1) || move == board.Single(row*size+6)
	assert.True(t, blocking, "expected the root tactical override to block the open four, got %v", move)
}
