package search

import "unsafe"

func treeFromUintptr(ptr uintptr) *Tree { return (*Tree)(unsafe.Pointer(ptr)) }

func ptrFromTree(t *Tree) uintptr { return uintptr(unsafe.Pointer(t)) }
