// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// An entry is a single item reference held by a leaf node, together
// with the bounding box the item reported when it was inserted.
type entry[T Item] struct {
	box  Box
	item T
}

func entryBox[T Item](e *entry[T]) Box {
	return e.box
}

// A node is either a leaf or a branch, distinguished by its level: leaf
// nodes are at level 0 and hold entries, while branch nodes are at
// level 1 or higher and hold child nodes exactly one level below them.
// A branch exclusively owns its children.
//
// The box of a node is the exact union of the boxes of its entries or
// children, or EmptyBox if it has none.
type node[T Item] struct {
	level    int
	box      Box
	entries  []entry[T] // Leaf only.
	children []*node[T] // Branch only.
}

func newLeaf[T Item]() *node[T] {
	return &node[T]{box: EmptyBox}
}

func nodeBox[T Item](n **node[T]) Box {
	return (*n).box
}

func (n *node[T]) isLeaf() bool {
	return n.level == 0
}

// count returns the number of entries or children in the node.
func (n *node[T]) count() int {
	if n.isLeaf() {
		return len(n.entries)
	}
	return len(n.children)
}

// recalc recomputes the node's box from its entries or children.
func (n *node[T]) recalc() {
	n.box = EmptyBox
	if n.isLeaf() {
		for i := range n.entries {
			n.box.Expand(&n.entries[i].box)
		}
	} else {
		for _, c := range n.children {
			n.box.Expand(&c.box)
		}
	}
}

// collect appends every leaf entry in the subtree rooted at n to dst.
func (n *node[T]) collect(dst []entry[T]) []entry[T] {
	if n.isLeaf() {
		return append(dst, n.entries...)
	}
	for _, c := range n.children {
		dst = c.collect(dst)
	}
	return dst
}

// search calls yield for each leaf entry in the subtree rooted at n
// whose box intersects b, skipping every child whose box does not
// intersect b. It returns false if yield asked to stop.
func (n *node[T]) search(b Box, yield func(*entry[T]) bool) bool {
	if n.isLeaf() {
		for i := range n.entries {
			if n.entries[i].box.Intersects(b) && !yield(&n.entries[i]) {
				return false
			}
		}
		return true
	}
	for _, c := range n.children {
		if c.box.Intersects(b) && !c.search(b, yield) {
			return false
		}
	}
	return true
}

// walk calls yield for every leaf entry in the subtree rooted at n. It
// returns false if yield asked to stop.
func (n *node[T]) walk(yield func(*entry[T]) bool) bool {
	if n.isLeaf() {
		for i := range n.entries {
			if !yield(&n.entries[i]) {
				return false
			}
		}
		return true
	}
	for _, c := range n.children {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}
