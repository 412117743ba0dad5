// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

// Item is the constraint satisfied by values stored in a Tree. An item
// reports its own bounding box, and items are compared with == to
// identify them on removal, so two equal items are the same item.
//
// An item's bounds must not change while it is stored in a Tree. To
// move an item, remove it, change it, and insert it again.
type Item interface {
	comparable
	Bounds() Box
}

// A Tree is a dynamic two-dimensional R-tree which indexes items by
// their bounding boxes. Items may be inserted and removed at any time,
// and the tree can be queried for all items whose boxes intersect a
// query box.
//
// A Tree must be created with New. It is not safe for concurrent use:
// callers must serialize mutations against each other and against any
// query that is still being iterated.
type Tree[T Item] struct {
	root      *node[T]
	size      int
	minFanout int
	maxFanout int
}

// New returns an empty Tree configured by the given options. New panics
// if the options describe an invalid fanout (see WithMaxFanout and
// WithMinFanout).
func New[T Item](opts ...Option) *Tree[T] {
	o := buildOptions(opts)
	return &Tree[T]{
		root:      newLeaf[T](),
		minFanout: o.minFanout,
		maxFanout: o.maxFanout,
	}
}

// Insert adds item to the tree. Inserting an item which is already in
// the tree stores a second reference to it.
func (t *Tree[T]) Insert(item T) {
	t.insert(entry[T]{box: item.Bounds(), item: item})
	t.size++
}

// InsertRange inserts, in order, every item produced by seq.
func (t *Tree[T]) InsertRange(seq iter.Seq[T]) {
	for item := range seq {
		t.Insert(item)
	}
}

// InsertSlice inserts every item in items, in order.
func (t *Tree[T]) InsertSlice(items []T) {
	for _, item := range items {
		t.Insert(item)
	}
}

// Clear removes every item from the tree, leaving it with a single
// empty leaf as root. The fanout is unchanged.
func (t *Tree[T]) Clear() {
	t.root = newLeaf[T]()
	t.size = 0
}

// Bounds returns the smallest box containing the bounds of every item
// in the tree, or EmptyBox if the tree holds no items with non-empty
// bounds.
func (t *Tree[T]) Bounds() Box {
	return t.root.box
}

// Len returns the number of items in the tree.
func (t *Tree[T]) Len() int {
	return t.size
}

// Height returns the number of levels in the tree. An empty tree, or
// one whose root is a leaf, has height 1.
func (t *Tree[T]) Height() int {
	return t.root.level + 1
}

// MinFanout returns the minimum number of entries a non-root node holds.
func (t *Tree[T]) MinFanout() int {
	return t.minFanout
}

// MaxFanout returns the maximum number of entries any node holds.
func (t *Tree[T]) MaxFanout() int {
	return t.maxFanout
}

func (t *Tree[T]) String() string {
	return fmt.Sprintf("Tree{Bounds:%s,Len:%d,Height:%d,Fanout:[%d,%d]}",
		t.root.box, t.size, t.Height(), t.minFanout, t.maxFanout)
}

// insert places e in a leaf, splitting overflowing nodes on the way
// back up and growing a new root if the old root split. It does not
// change the size of the tree, so it also serves to reinsert entries
// orphaned by removal.
func (t *Tree[T]) insert(e entry[T]) {
	sibling := t.insertInto(t.root, e)
	if sibling == nil {
		return
	}
	old := t.root
	t.root = &node[T]{
		level:    old.level + 1,
		box:      old.box.Union(sibling.box),
		children: []*node[T]{old, sibling},
	}
	tracer().Debugf("rtree: root split, height now %d", t.root.level+1)
}

// insertInto inserts e into the subtree rooted at n. If n overflows as a
// result, it is split and the new sibling is returned so that the caller
// can add it next to n.
func (t *Tree[T]) insertInto(n *node[T], e entry[T]) *node[T] {
	n.box.Expand(&e.box)
	if n.isLeaf() {
		n.entries = append(n.entries, e)
		if len(n.entries) > t.maxFanout {
			return t.splitLeaf(n)
		}
		return nil
	}
	i := chooseSubtree(n.children, e.box)
	sibling := t.insertInto(n.children[i], e)
	if sibling == nil {
		return nil
	}
	n.children = slices.Insert(n.children, i+1, sibling)
	if len(n.children) > t.maxFanout {
		return t.splitBranch(n)
	}
	return nil
}

// chooseSubtree returns the index of the child whose box needs the least
// area enlargement to include b. Ties go to the child with the smaller
// resulting area, then to the child with fewer entries, then to the
// earlier child.
func chooseSubtree[T Item](children []*node[T], b Box) int {
	best := 0
	bestEnl, bestArea, bestCount := math.Inf(1), math.Inf(1), math.MaxInt
	for i, c := range children {
		area := c.box.Union(b).Area()
		enl := area - c.box.Area()
		count := c.count()
		if enl < bestEnl ||
			enl == bestEnl && (area < bestArea || area == bestArea && count < bestCount) {
			best, bestEnl, bestArea, bestCount = i, enl, area, count
		}
	}
	return best
}
