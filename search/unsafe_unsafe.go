// +build unsafe

package search

// nodeFromNaughty gets the node given the arena index, without locking.
// Built with -tags unsafe, trading the tree's read lock for raw speed once
// the caller can guarantee the arena backing array isn't being grown
// concurrently.
func (t *Tree) nodeFromNaughty(ptr naughty) *Node {
	return &t.nodes[int(ptr)]
}

// Children returns the child list of the node at the given arena index.
func (t *Tree) Children(of naughty) []naughty {
	return t.children[of]
}
