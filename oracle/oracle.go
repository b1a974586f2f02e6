// Package oracle defines the policy/value interface the search engine
// queries at every leaf expansion, plus a deterministic test double.
package oracle

import "github.com/renjuzero/renjuzero/board"

// ScoredMove pairs a candidate move with the oracle's prior probability
// for it. Priors need not sum to 1; Expander renormalizes after masking
// illegal and pass moves.
type ScoredMove struct {
	Move  board.Single
	Prior float32
}

// Oracle is the neural-network policy/value function the search
// consumes. Evaluate returns a scalar value in [0,1] from state's
// side-to-move perspective, and a list of candidate moves with raw
// priors.
type Oracle interface {
	Evaluate(state board.State) (value float32, moves []ScoredMove)
}

// Dummy is a deterministic Oracle returning a uniform policy over every
// empty vertex and a fixed value keyed by the side to move. It exists so
// search can be exercised without a trained network.
type Dummy struct {
	// ValueFor maps a player to the scalar value Dummy reports when that
	// player is to move. Defaults to 0 for players absent from the map.
	ValueFor map[board.Player]float32
}

func (d Dummy) Evaluate(state board.State) (float32, []ScoredMove) {
	size := state.ActionSpace()
	b := state.Board()

	var moves []ScoredMove
	for v := 0; v < size; v++ {
		if b[v] == board.None {
			moves = append(moves, ScoredMove{Move: board.Single(v), Prior: 1})
		}
	}
	for i := range moves {
		moves[i].Prior /= float32(len(moves))
	}

	value := d.ValueFor[state.ToMove()]
	return value, moves
}
