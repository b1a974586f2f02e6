// Package renju implements a five-in-a-row board that conforms to the
// board.State interface, re-using a go-style representation: rowmajor
// storage, Zobrist hashing, pass/resign sentinels and positional-superko
// detection, adapted from a go-rules board but with go's
// capture/liberty/suicide legality replaced by a five-in-a-row win check.
package renju

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/renjuzero/renjuzero/board"
)

const (
	Pass = board.Single(-1)

	BlackP = board.Player(board.Black)
	WhiteP = board.Player(board.White)
)

var _ board.State = &Board{}
var _ board.CoordConverter = &Board{}

// Board is a square go-style board on which stones are placed and never
// removed; the first player to complete an unbroken run of five stones
// along a row, column, or diagonal wins.
type Board struct {
	sync.Mutex
	board []board.Colour
	size  int

	nextToMove board.Player
	history    []board.PlayerMove
	historical [][]board.Colour
	histPtr    int
	seen       map[board.Zobrist]int // positional history, for superko
	z          zobrist

	winner board.Player
	ended  bool

	err error
}

// New creates a size x size renju board.
func New(size int) *Board {
	b := &Board{
		board:      make([]board.Colour, size*size),
		size:       size,
		nextToMove: BlackP,
		seen:       make(map[board.Zobrist]int),
		z:          makeZobrist(size, size),
	}
	b.seen[b.Hash()] = 1
	return b
}

func (b *Board) BoardSize() (int, int)          { return b.size, b.size }
func (b *Board) Board() []board.Colour          { return b.board }
func (b *Board) Historical(i int) []board.Colour { return b.historical[i] }
func (b *Board) Hash() board.Zobrist            { return board.Zobrist(b.z.hash) }
func (b *Board) ActionSpace() int               { return b.size * b.size }

func (b *Board) SetToMove(p board.Player) { b.Lock(); b.nextToMove = p; b.Unlock() }
func (b *Board) ToMove() board.Player     { return b.nextToMove }

func (b *Board) LastMove() board.PlayerMove {
	if len(b.history) > 0 {
		return b.history[b.histPtr-1]
	}
	return board.PlayerMove{Player: board.Player(board.None), Single: Pass}
}

// Passes returns the number of consecutive passes at the tail of history.
func (b *Board) Passes() int {
	n := 0
	for i := b.histPtr - 1; i >= 0 && b.history[i].Single.IsPass(); i-- {
		n++
	}
	return n
}

func (b *Board) MoveNumber() int { return b.histPtr }

// Check reports whether m is a legal move: resignation is always legal,
// pass is always legal, a board move is legal if the vertex is empty.
// Superko is not checked here: Apply records every position reached and
// callers ask Board.Superko afterwards, matching the source's pattern of
// invalidating the resulting tree node rather than refusing the move
// outright.
func (b *Board) Check(m board.PlayerMove) bool {
	if m.Single.IsResignation() {
		return true
	}
	if m.Single.IsPass() {
		return true
	}
	if int(m.Single) < 0 || int(m.Single) >= len(b.board) {
		return false
	}
	return b.board[m.Single] == board.None
}

// Apply places the move and returns the receiver, mutating it in place.
// Callers that need to explore siblings should Clone first.
func (b *Board) Apply(m board.PlayerMove) board.State {
	if m.Single.IsResignation() {
		b.recordHistory(m)
		b.ended = true
		b.winner = board.Player(board.Colour(m.Player)).Opponent()
		b.nextToMove = b.winner
		return b
	}

	if m.Single.IsPass() {
		b.recordHistory(m)
		b.nextToMove = Opponent(m.Player)
		return b
	}

	if !isValid(m.Player) {
		b.err = errors.WithMessage(moveError(m), "impossible player")
		return b
	}
	if int(m.Single) >= len(b.board) {
		b.err = errors.WithMessage(moveError(m), "impossible move")
		return b
	}
	if b.board[m.Single] != board.None {
		b.err = errors.WithMessage(moveError(m), "vertex is occupied")
		return b
	}

	b.board[m.Single] = board.Colour(m.Player)
	b.z.update(m)
	b.err = nil

	if b.win(int(m.Single)) {
		b.ended = true
		b.winner = m.Player
	}

	b.recordHistory(m)
	b.nextToMove = Opponent(m.Player)
	return b
}

func (b *Board) recordHistory(m board.PlayerMove) {
	hb := make([]board.Colour, len(b.board))
	b.Lock()
	copy(hb, b.board)
	b.histPtr++
	if len(b.history) < b.histPtr {
		b.history = append(b.history, m)
	} else {
		b.history[b.histPtr-1] = m
	}
	b.historical = append(b.historical, hb)
	b.seen[b.Hash()]++
	b.Unlock()
}

// Superko reports whether the current position has occurred before this
// move was played, i.e. whether applying the pending move would repeat an
// earlier position. Callers check this immediately after Apply.
func (b *Board) Superko() bool { return b.seen[b.Hash()] > 1 }

// Err returns the error (if any) from the most recent Apply.
func (b *Board) Err() error { return b.err }

func (b *Board) Score(p board.Player) float32 {
	ended, winner := b.Ended()
	if !ended || winner == board.Player(board.None) {
		return 0
	}
	if winner == p {
		return 1
	}
	return -1
}

func (b *Board) Ended() (bool, board.Player) {
	if b.ended {
		return true, b.winner
	}
	for _, c := range b.board {
		if c == board.None {
			return false, board.Player(board.None)
		}
	}
	return true, board.Player(board.None) // board full, no winner: draw
}

func (b *Board) Reset() {
	for i := range b.board {
		b.board[i] = board.None
	}
	b.history = b.history[:0]
	b.historical = b.historical[:0]
	b.histPtr = 0
	b.nextToMove = BlackP
	b.ended = false
	b.winner = board.Player(board.None)
	b.seen = make(map[board.Zobrist]int)
	b.z = makeZobrist(b.size, b.size)
	b.seen[b.Hash()] = 1
}

func (b *Board) UndoLastMove() {
	if b.histPtr == 0 {
		return
	}
	last := b.history[b.histPtr-1]
	if !last.Single.IsPass() && !last.Single.IsResignation() {
		b.board[int(last.Single)] = board.None
	}
	b.histPtr--
	b.ended = false
	b.winner = board.Player(board.None)
}

func (b *Board) Fwd() {
	if b.histPtr < len(b.history) {
		b.histPtr++
	}
}

func (b *Board) Eq(other board.State) bool {
	ot, ok := other.(*Board)
	if !ok {
		return false
	}
	if b.nextToMove != ot.nextToMove || len(b.board) != len(ot.board) {
		return false
	}
	for i := range b.board {
		if b.board[i] != ot.board[i] {
			return false
		}
	}
	return true
}

func (b *Board) Clone() board.State {
	retVal := &Board{
		board: make([]board.Colour, len(b.board)),
		size:  b.size,
	}
	b.Lock()
	copy(retVal.board, b.board)
	retVal.history = make([]board.PlayerMove, len(b.history), len(b.history)+4)
	retVal.historical = make([][]board.Colour, len(b.historical), len(b.historical)+4)
	copy(retVal.history, b.history)
	copy(retVal.historical, b.historical)
	retVal.nextToMove = b.nextToMove
	retVal.histPtr = b.histPtr
	retVal.ended = b.ended
	retVal.winner = b.winner
	retVal.z = b.z.clone()
	retVal.seen = make(map[board.Zobrist]int, len(b.seen))
	for k, v := range b.seen {
		retVal.seen[k] = v
	}
	b.Unlock()
	return retVal
}

func (b *Board) Format(s fmt.State, c rune) {
	switch c {
	case 's', 'v':
		for y := 0; y < b.size; y++ {
			fmt.Fprint(s, "⎢ ")
			for x := 0; x < b.size; x++ {
				fmt.Fprintf(s, "%s ", b.board[y*b.size+x])
			}
			fmt.Fprint(s, "⎥\n")
		}
	}
}

func (b *Board) Itol(c board.Coord) board.Single {
	return board.Single(int32(c.X)*int32(b.size) + int32(c.Y))
}

func (b *Board) Ltoi(s board.Single) board.Coord {
	x := int16(int32(s) / int32(b.size))
	y := int16(int32(s) % int32(b.size))
	return board.Coord{X: x, Y: y}
}

// IsEye reports whether vertex is surrounded on all (up to 4) orthogonal
// neighbours by color, the only remaining use of the go-board "eye"
// concept: the search's no-pass and dumb-pass substitution uses it to
// avoid throwing in a move that can't matter.
func (b *Board) IsEye(color board.Colour, vertex int) bool {
	x, y := vertex/b.size, vertex%b.size
	for _, d := range adjacents {
		nx, ny := x+int(d.X), y+int(d.Y)
		if nx < 0 || nx >= b.size || ny < 0 || ny >= b.size {
			continue
		}
		if b.board[nx*b.size+ny] != color {
			return false
		}
	}
	return true
}

// win reports whether the stone just placed at vertex completes a run of
// five or more in any of the four axes.
func (b *Board) win(vertex int) bool {
	x, y := vertex/b.size, vertex%b.size
	color := b.board[vertex]

	dirs := [4][2][2]int{
		{{-1, 0}, {1, 0}},
		{{0, -1}, {0, 1}},
		{{-1, -1}, {1, 1}},
		{{-1, 1}, {1, -1}},
	}
	for _, axis := range dirs {
		count := 1
		for _, d := range axis {
			tx, ty := x, y
			for {
				tx += d[0]
				ty += d[1]
				if tx < 0 || tx >= b.size || ty < 0 || ty >= b.size {
					break
				}
				if b.board[tx*b.size+ty] != color {
					break
				}
				count++
			}
		}
		if count >= 5 {
			return true
		}
	}
	return false
}

var adjacents = [4]board.Coord{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}

// Opponent returns the colour of the opponent of p.
func Opponent(p board.Player) board.Player {
	switch board.Colour(p) {
	case board.White:
		return board.Player(board.Black)
	case board.Black:
		return board.Player(board.White)
	}
	panic("unreachable")
}

func isValid(p board.Player) bool { return board.Colour(p) == board.Black || board.Colour(p) == board.White }
