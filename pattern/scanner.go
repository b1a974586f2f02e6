// Package pattern scans a board position for forcing five-in-a-row shapes:
// completed fives, fours, and open threes. It is used both to bias
// expansion priors and to override the final root move choice when a
// forcing shape exists that shallow search might miss.
package pattern

import "github.com/renjuzero/renjuzero/board"

// runLength is the winning run length (five-in-a-row).
const runLength = 5

// windowSize is the span scanned along each axis around the candidate
// vertex: enough consecutive windows of length runLength to cover every
// window that overlaps the vertex.
const windowSize = runLength*2 - 1

// cell classifies a position in the scan window relative to color C.
type cell int

const (
	cellEmpty cell = iota
	cellOwn
	cellBlocked // opponent stone, or off-board
)

// axes are the 4 directions scanned: horizontal, vertical, and the two
// diagonals. Only one direction per axis is needed since the window is
// built symmetrically around the vertex.
var axes = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{-1, 1},
}

// Tally holds the forcing-shape counts for one color at one vertex,
// aggregated across all 4 axes.
type Tally struct {
	Fives  int
	Fours  int
	Threes int
}

// Forcing reports whether t represents any shape worth overriding search
// for: an immediate win, a double-four, a double open-three, or a single
// forcing four.
func (t Tally) Forcing() bool {
	return t.Fives > 0 || t.Fours > 0 || t.Threes > 1
}

// Scanner scans a board for forcing five-in-a-row shapes.
type Scanner struct {
	size int
}

// New returns a Scanner for a board of the given size.
func New(size int) Scanner { return Scanner{size: size} }

// Scan evaluates the tactical significance of a hypothetical stone of
// color c placed at vertex v, assuming v is currently empty.
func (s Scanner) Scan(b []board.Colour, v int, c board.Colour) Tally {
	x, y := v/s.size, v%s.size

	var t Tally
	for _, dir := range axes {
		window := s.window(b, x, y, dir, c)
		s.scanAxis(window, &t)
	}
	return t
}

// window builds a windowSize-long classification strip centred on (x, y)
// along dir, with (x, y) itself forced to cellOwn (it holds the
// hypothetical stone).
func (s Scanner) window(b []board.Colour, x, y int, dir [2]int, c board.Colour) []cell {
	out := make([]cell, windowSize)
	tx := x - dir[0]*(runLength-1)
	ty := y - dir[1]*(runLength-1)
	for j := 0; j < windowSize; j++ {
		switch {
		case tx < 0 || tx >= s.size || ty < 0 || ty >= s.size:
			out[j] = cellBlocked
		case tx == x && ty == y:
			out[j] = cellOwn
		default:
			switch b[tx*s.size+ty] {
			case c:
				out[j] = cellOwn
			case board.None:
				out[j] = cellEmpty
			default:
				out[j] = cellBlocked
			}
		}
		tx += dir[0]
		ty += dir[1]
	}
	return out
}

// scanAxis slides every length-runLength window across the strip,
// classifying each as a five, four, or open three per §4.1's rules.
func (s Scanner) scanAxis(strip []cell, t *Tally) {
	for j := 0; j+runLength <= len(strip); j++ {
		var own, empty int
		for k := j; k < j+runLength; k++ {
			switch strip[k] {
			case cellOwn:
				own++
			case cellEmpty:
				empty++
			}
		}
		switch {
		case own == runLength:
			t.Fives++
		case own == runLength-1 && empty == 1:
			t.Fours++
		case own == runLength-2 && empty == 2:
			if strip[j] == cellEmpty && strip[j+runLength-1] == cellEmpty {
				t.Threes++
			}
		}
	}
}
