package oracle

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"gorgonia.org/vecf32"

	"github.com/renjuzero/renjuzero/board"
)

// EncodeTwoPlayerBoard encodes Black as 1, White as -1, empty as 0.
func EncodeTwoPlayerBoard(a []board.Colour, prealloc []float32) []float32 {
	if len(prealloc) != len(a) {
		prealloc = make([]float32, len(a))
	}
	for i := range a {
		switch a[i] {
		case board.Black:
			prealloc[i] = 1
		case board.White:
			prealloc[i] = -1
		default:
			prealloc[i] = 0
		}
	}
	return prealloc
}

func encodeBlack(a []board.Colour, prealloc []float32) []float32 {
	return EncodeTwoPlayerBoard(a, prealloc)
}

func encodeWhite(a []board.Colour, prealloc []float32) []float32 {
	retVal := EncodeTwoPlayerBoard(a, prealloc)
	vecf32.Scale(retVal, -1)
	return retVal
}

// HistoryEncoder produces the oracle's input tensor from a game state: an
// 8-move lookback history of both players' stones plus a plane marking
// the side to move, laid out rowmajor and concatenated by feature plane.
func HistoryEncoder(a board.State) []float32 {
	const lookback = 8
	const features = 2*lookback + 2

	b := a.Board()
	size := len(b)
	retVal := make([]float32, size*features)

	next := a.ToMove()
	encodedPlayer := float32(1)
	var blackStart, whiteStart, nextStart int
	if next == board.Player(board.Black) {
		blackStart = 0
		whiteStart = lookback * size
		nextStart = 2 * lookback * size
	} else {
		blackStart = lookback * size
		whiteStart = 0
		nextStart = (2*lookback + 1) * size
		encodedPlayer = -1
	}

	current := a.MoveNumber() - 1
	for i := 0; i < lookback; i++ {
		h := current - i
		if h >= 0 {
			past := a.Historical(h)
			encodeBlack(past, retVal[blackStart:blackStart+size])
			encodeWhite(past, retVal[whiteStart:whiteStart+size])
		}
		blackStart += size
		whiteStart += size
	}

	for i := nextStart; i < nextStart+size; i++ {
		retVal[i] = encodedPlayer
	}

	return retVal
}

var iterPool = make(map[int]map[int]*sync.Pool)

func borrowIterator(m, n int) [][]float32 {
	if d, ok := iterPool[m]; ok {
		if p, ok := d[n]; ok {
			return p.Get().([][]float32)
		}
	}
	return newGrid(m, n)
}

func newGrid(m, n int) [][]float32 {
	retVal := make([][]float32, m)
	for i := range retVal {
		retVal[i] = make([]float32, n)
	}
	return retVal
}

func returnIterator(m, n int, it [][]float32) {
	d, ok := iterPool[m]
	if !ok {
		d = make(map[int]*sync.Pool)
		iterPool[m] = d
	}
	p, ok := d[n]
	if !ok {
		p = &sync.Pool{New: func() interface{} { return newGrid(m, n) }}
		d[n] = p
	}
	p.Put(it)
}

func makeFloatIterator(b []float32, m, n int) [][]float32 {
	retVal := borrowIterator(m, n)
	for i := range retVal {
		start := i * n
		hdr := (*reflect.SliceHeader)(unsafe.Pointer(&retVal[i]))
		hdr.Data = uintptr(unsafe.Pointer(&b[start]))
		hdr.Len = n
		hdr.Cap = n
	}
	return retVal
}

// RotateBoard returns a 90-degree counter-clockwise rotation of a square
// board plane, for augmenting training examples.
func RotateBoard(plane []float32, m, n int) ([]float32, error) {
	if m != n {
		return nil, errors.Errorf("cannot rotate non-square board m=%d n=%d", m, n)
	}
	copied := make([]float32, len(plane))
	copy(copied, plane)
	it := makeFloatIterator(copied, m, n)
	for i := 0; i < m/2; i++ {
		mi1 := m - i - 1
		for j := i; j < mi1; j++ {
			mj1 := m - j - 1
			tmp := it[i][j]
			it[i][j] = it[j][mi1]
			it[j][mi1] = it[mi1][mj1]
			it[mi1][mj1] = it[mj1][i]
			it[mj1][i] = tmp
		}
	}
	returnIterator(m, n, it)
	return copied, nil
}
