package board

import (
	"reflect"
	"sync"
	"unsafe"
)

var iterPool = make(map[int]map[int]*sync.Pool)

func borrowIterator(m, n int) [][]Colour {
	if d, ok := iterPool[m]; ok {
		if p, ok := d[n]; ok {
			return p.Get().([][]Colour)
		}
	}
	return newGrid(m, n)
}

func newGrid(m, n int) [][]Colour {
	retVal := make([][]Colour, m)
	for i := range retVal {
		retVal[i] = make([]Colour, n)
	}
	return retVal
}

// ReturnIterator returns a grid obtained from MakeIterator to the pool for m, n.
func ReturnIterator(m, n int, it [][]Colour) {
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

// MakeIterator returns a m-by-n grid view over board without copying.
// The returned slices alias board's backing array; callers must return it
// via ReturnIterator once done iterating.
func MakeIterator(b []Colour, m, n int) [][]Colour {
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
