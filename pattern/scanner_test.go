package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renjuzero/renjuzero/board"
)

func makeBoard(size int, stones map[int]board.Colour) []board.Colour {
	b := make([]board.Colour, size*size)
	for v, c := range stones {
		b[v] = c
	}
	return b
}

func TestScanDetectsFive(t *testing.T) {
	s := New(9)
	b := makeBoard(9, map[int]board.Colour{
		0: board.Black, 1: board.Black, 2: board.Black, 3: board.Black,
	})
	tally := s.Scan(b, 4, board.Black)
	assert.Equal(t, 1, tally.Fives)
	assert.True(t, tally.Forcing())
}

func TestScanDetectsFiveAtOpenEndOfFour(t *testing.T) {
	s := New(9)
	// row 0: X at columns 1..4 with both ends (0 and 5) empty; placing a
	// stone at the open end, column 5, completes a five.
	b := makeBoard(9, map[int]board.Colour{
		1: board.Black, 2: board.Black, 3: board.Black, 4: board.Black,
	})
	tally := s.Scan(b, 5, board.Black)
	assert.Equal(t, 1, tally.Fives, "placing the 5th stone at the open end completes a five")
}

func TestScanDetectsOpenThree(t *testing.T) {
	s := New(9)
	b := makeBoard(9, map[int]board.Colour{2: board.Black, 3: board.Black})
	tally := s.Scan(b, 4, board.Black)
	assert.GreaterOrEqual(t, tally.Threes, 1)
}

func TestScanIgnoresOpponentStones(t *testing.T) {
	s := New(9)
	b := makeBoard(9, map[int]board.Colour{
		0: board.White, 1: board.Black, 2: board.Black, 3: board.Black,
	})
	tally := s.Scan(b, 4, board.Black)
	assert.Equal(t, 0, tally.Fives, "opponent stone at the window end blocks the five")
}

// The same four-in-a-row shape, laid out along each of the four axes in
// turn, must produce the same tally: the scanner treats every axis
// identically rather than special-casing rows.
func TestScanSameTallyAcrossAxes(t *testing.T) {
	const size = 9
	s := New(size)

	horizontal := makeBoard(size, map[int]board.Colour{
		4*size + 1: board.Black, 4*size + 2: board.Black, 4*size + 3: board.Black, 4*size + 4: board.Black,
	})
	horizontalTally := s.Scan(horizontal, 4*size+5, board.Black)

	vertical := makeBoard(size, map[int]board.Colour{
		1*size + 4: board.Black, 2*size + 4: board.Black, 3*size + 4: board.Black, 4*size + 4: board.Black,
	})
	verticalTally := s.Scan(vertical, 5*size+4, board.Black)

	diagonal := makeBoard(size, map[int]board.Colour{
		1*size + 1: board.Black, 2*size + 2: board.Black, 3*size + 3: board.Black, 4*size + 4: board.Black,
	})
	diagonalTally := s.Scan(diagonal, 5*size+5, board.Black)

	antiDiagonal := makeBoard(size, map[int]board.Colour{
		1*size + 7: board.Black, 2*size + 6: board.Black, 3*size + 5: board.Black, 4*size + 4: board.Black,
	})
	antiDiagonalTally := s.Scan(antiDiagonal, 5*size+3, board.Black)

	assert.Equal(t, horizontalTally, verticalTally)
	assert.Equal(t, horizontalTally, diagonalTally)
	assert.Equal(t, horizontalTally, antiDiagonalTally)
}
