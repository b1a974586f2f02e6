package search

// naughty is an arena index into Tree.nodes, standing in for *Node so the
// tree can be grown and walked without pointer chasing.
type naughty int32

const nilNode naughty = -1

func (n naughty) isValid() bool { return n >= 0 }
