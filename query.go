// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "iter"

// Geometry is an arbitrary shape which can be used as a query. Its
// bounding box selects candidate items, and IntersectsBox decides, for
// each candidate, whether the shape really touches the candidate's box.
type Geometry interface {
	Bounds() Box
	IntersectsBox(b Box) bool
}

// Query returns a sequence of every item whose bounding box intersects
// b. Boxes touching only at an edge or a corner intersect. An empty b
// matches nothing, and items with empty bounds are never matched.
//
// The sequence is lazy: the tree is searched as the sequence is
// iterated, subtrees not intersecting b are never visited, and breaking
// out of the loop ends the search. Each iteration is a fresh search. The
// tree must not be modified while the sequence is being iterated.
func (t *Tree[T]) Query(b Box) iter.Seq[T] {
	return func(yield func(T) bool) {
		if b.IsEmpty() {
			return
		}
		t.root.search(b, func(e *entry[T]) bool {
			return yield(e.item)
		})
	}
}

// QueryFunc is like Query but only produces the items for which keep
// returns true. Panics if keep is nil.
func (t *Tree[T]) QueryFunc(b Box, keep func(T) bool) iter.Seq[T] {
	if keep == nil {
		textPanic("nil keep function")
	}
	return func(yield func(T) bool) {
		for item := range t.Query(b) {
			if keep(item) && !yield(item) {
				return
			}
		}
	}
}

// Select is like Query but produces fn(item) for each matching item.
// Panics if fn is nil.
func Select[T Item, R any](t *Tree[T], b Box, fn func(T) R) iter.Seq[R] {
	if fn == nil {
		textPanic("nil select function")
	}
	return func(yield func(R) bool) {
		for item := range t.Query(b) {
			if !yield(fn(item)) {
				return
			}
		}
	}
}

// QueryGeometry returns a sequence of every item whose bounding box
// intersects g's bounding box and for which g.IntersectsBox reports
// true. A nil geometry, or one with empty bounds, matches nothing.
//
// Box is itself a Geometry, so callers holding either an extent or a
// shape can query through QueryGeometry alone.
func (t *Tree[T]) QueryGeometry(g Geometry) iter.Seq[T] {
	return func(yield func(T) bool) {
		if g == nil {
			return
		}
		b := g.Bounds()
		if b.IsEmpty() {
			return
		}
		t.root.search(b, func(e *entry[T]) bool {
			if !g.IntersectsBox(e.box) {
				return true
			}
			return yield(e.item)
		})
	}
}

// All returns a sequence of every item in the tree, including items with
// empty bounds, in no particular order.
func (t *Tree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		t.root.walk(func(e *entry[T]) bool {
			return yield(e.item)
		})
	}
}
