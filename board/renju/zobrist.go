package renju

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/renjuzero/renjuzero/board"
)

// zobrist is an incremental board hash. Conceptually a (boardsize*boardsize,
// 2) table of random numbers, one column per colour, folded into a flat
// backing slice sized for the board at construction time.
type zobrist struct {
	table  []int32
	it     [][]int32
	hash   int32
	koHash int32
	size   int
}

func makeZobrist(m, n int) zobrist {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	size := m * n
	retVal := zobrist{
		table: make([]int32, size*2),
		size:  size,
	}
	for i := range retVal.table {
		retVal.table[i] = r.Int31()
	}
	retVal.makeIterator()
	return retVal
}

func (z *zobrist) makeIterator() {
	z.it = make([][]int32, z.size)
	for i := range z.it {
		z.it[i] = z.table[i*2 : i*2+2]
	}
}

func (z *zobrist) update(m board.PlayerMove) (int32, error) {
	switch board.Colour(m.Player) {
	case board.Black:
		z.hash ^= z.it[m.Single][0]
		return z.hash, nil
	case board.White:
		z.hash ^= z.it[m.Single][1]
		return z.hash, nil
	default:
		return 0, errors.Errorf("cannot update hash for %v", m)
	}
}

func (z *zobrist) clone() zobrist {
	retVal := zobrist{
		table:  make([]int32, len(z.table)),
		hash:   z.hash,
		koHash: z.koHash,
		size:   z.size,
	}
	copy(retVal.table, z.table)
	retVal.makeIterator()
	return retVal
}
