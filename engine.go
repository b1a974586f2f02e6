// Package renjuzero wires a board position, an oracle.Oracle, and a
// search.Tree together into a single player: something that can be asked
// for a move and told what move was actually played.
package renjuzero

import (
	"github.com/renjuzero/renjuzero/board"
	"github.com/renjuzero/renjuzero/oracle"
	"github.com/renjuzero/renjuzero/search"
)

// Engine is one side of a game: the oracle it queries, the tree it
// searches with, and the player colour it plays.
type Engine struct {
	Oracle oracle.Oracle
	Tree   *search.Tree
	Player board.Player
}

// New builds an Engine that searches state with o, playing as player.
func New(state board.State, conf search.Config, o oracle.Oracle, player board.Player) *Engine {
	return &Engine{
		Oracle: o,
		Tree:   search.New(state, conf, o),
		Player: player,
	}
}

// Move asks the engine's tree to think from state and returns the move it
// settled on.
func (e *Engine) Move(state board.State) board.Single {
	e.Tree.SetState(state)
	return e.Tree.Think(e.Player)
}
