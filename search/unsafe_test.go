package search

import "testing"

func TestUnsafe(t *testing.T) {
	tree := &Tree{}
	ptr := ptrFromTree(tree)
	if ptr == 0 {
		t.Fatal("impossible to get 0x0 from a valid tree")
	}
	tree2 := treeFromUintptr(ptr)
	if tree2 != tree {
		t.Fatal("expected the same pointer back")
	}

	if ptrFromTree(nil) != 0x0 {
		t.Fatal("must get 0x0 from a nil tree")
	}
	if treeFromUintptr(0x0) != nil {
		t.Fatal("0x0 must round-trip to nil")
	}
}
