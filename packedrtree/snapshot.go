// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"iter"

	"github.com/gogama/rtree"
)

// DefaultNodeSize is a reasonable node size for NewSnapshot.
const DefaultNodeSize = 16

// A Snapshot is a read-only copy of the items in an rtree.Tree at the
// moment the snapshot was taken, indexed by a PackedRTree. A Snapshot
// is unaffected by later changes to the tree it was taken from, and it
// may be queried by any number of goroutines at once.
type Snapshot[T rtree.Item] struct {
	index *PackedRTree // Nil if there are no items.
	items []T
}

// NewSnapshot freezes the current contents of tree into a Snapshot
// whose index has the given node size. Panics if nodeSize is less than
// 2. The tree must not be modified while NewSnapshot runs.
func NewSnapshot[T rtree.Item](tree *rtree.Tree[T], nodeSize uint16) (*Snapshot[T], error) {
	if nodeSize < 2 {
		textPanic("node size must be at least 2")
	}
	s := &Snapshot[T]{items: make([]T, 0, tree.Len())}
	if tree.Len() == 0 {
		return s, nil
	}
	refs := make([]Ref, 0, tree.Len())
	for item := range tree.All() {
		refs = append(refs, Ref{Box: item.Bounds(), Offset: int64(len(s.items))})
		s.items = append(s.items, item)
	}
	HilbertSort(refs, tree.Bounds())
	index, err := New(refs, nodeSize)
	if err != nil {
		return nil, wrapErr("failed to index %d items", err, len(refs))
	}
	s.index = index
	return s, nil
}

// Index returns the packed index of the snapshot, whose Ref offsets are
// indices of items in the order given by All. Returns nil if the
// snapshot is empty.
func (s *Snapshot[T]) Index() *PackedRTree {
	return s.index
}

// Len returns the number of items in the snapshot.
func (s *Snapshot[T]) Len() int {
	return len(s.items)
}

// Bounds returns the bounding box around all items in the snapshot, or
// rtree.EmptyBox if it is empty.
func (s *Snapshot[T]) Bounds() rtree.Box {
	if s.index == nil {
		return rtree.EmptyBox
	}
	return s.index.Bounds()
}

// All returns a sequence of every item in the snapshot.
func (s *Snapshot[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range s.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Query returns a sequence of every item in the snapshot whose bounding
// box intersects b, with the same semantics as rtree.Tree.Query.
func (s *Snapshot[T]) Query(b rtree.Box) iter.Seq[T] {
	return func(yield func(T) bool) {
		if s.index == nil {
			return
		}
		for r := range s.index.SearchSeq(b) {
			if !yield(s.items[r.Offset]) {
				return
			}
		}
	}
}
