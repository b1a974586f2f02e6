package renjuzero_test

import (
	"testing"
	"time"

	"github.com/renjuzero/renjuzero"
	"github.com/renjuzero/renjuzero/board"
	"github.com/renjuzero/renjuzero/board/renju"
	"github.com/renjuzero/renjuzero/oracle"
	"github.com/renjuzero/renjuzero/search"
)

func TestEngineProducesLegalMoves(t *testing.T) {
	const size = 7

	conf := search.DefaultConfig(size)
	conf.Timeout = 20 * time.Millisecond
	conf.Budget = 200

	dummy := oracle.Dummy{ValueFor: map[board.Player]float32{
		renju.BlackP: 0.5,
		renju.WhiteP: 0.5,
	}}

	b := renju.New(size)
	black := renjuzero.New(b, conf, dummy, renju.BlackP)
	white := renjuzero.New(b, conf, dummy, renju.WhiteP)

	player := renju.BlackP
	for i := 0; i < 6; i++ {
		var move board.Single
		if player == renju.BlackP {
			move = black.Move(b)
		} else {
			move = white.Move(b)
		}
		if !b.Check(board.PlayerMove{Player: player, Single: move}) {
			t.Fatalf("move %d: engine returned illegal move %v for %v", i, move, player)
		}
		b.Apply(board.PlayerMove{Player: player, Single: move})
		if ended, _ := b.Ended(); ended {
			break
		}
		player = renju.Opponent(player)
	}
}
