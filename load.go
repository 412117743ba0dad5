// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"cmp"
	"slices"

	"github.com/gogama/rtree/internal/hilbert"
)

// Load inserts every item in items. If the tree is empty, the tree is
// built bottom-up in one pass: items are sorted by the Hilbert curve
// index of their box centers and packed into full leaves, which are in
// turn packed into full branches until a single root remains. This is
// much faster than inserting items one by one and usually produces a
// tree with less overlap.
//
// If the tree is not empty, Load is equivalent to InsertSlice.
func (t *Tree[T]) Load(items []T) {
	if t.size > 0 || len(items) == 0 {
		t.InsertSlice(items)
		return
	}

	type keyed struct {
		key uint32
		e   entry[T]
	}
	ks := make([]keyed, len(items))
	extent := EmptyBox
	for i, item := range items {
		ks[i].e = entry[T]{box: item.Bounds(), item: item}
		extent.Expand(&ks[i].e.box)
	}
	g := hilbert.NewGrid(extent.XMin, extent.YMin, extent.Width(), extent.Height())
	for i := range ks {
		b := &ks[i].e.box
		ks[i].key = g.Index(b.midX(), b.midY())
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		return cmp.Compare(a.key, b.key)
	})

	sizes := t.packSizes(len(ks))
	nodes := make([]*node[T], 0, len(sizes))
	off := 0
	for _, size := range sizes {
		leaf := &node[T]{entries: make([]entry[T], size)}
		for i := range leaf.entries {
			leaf.entries[i] = ks[off+i].e
		}
		leaf.recalc()
		nodes = append(nodes, leaf)
		off += size
	}
	for len(nodes) > 1 {
		sizes = t.packSizes(len(nodes))
		parents := make([]*node[T], 0, len(sizes))
		off = 0
		for _, size := range sizes {
			parent := &node[T]{
				level:    nodes[0].level + 1,
				children: slices.Clone(nodes[off : off+size]),
			}
			parent.recalc()
			parents = append(parents, parent)
			off += size
		}
		nodes = parents
	}

	t.root = nodes[0]
	t.size = len(items)
	tracer().Debugf("rtree: loaded %d items, height %d", t.size, t.Height())
}

// packSizes divides n entries into consecutive groups of maxFanout. If
// there is more than one group and the last would hold fewer than
// minFanout entries, the last two groups share their entries evenly.
func (t *Tree[T]) packSizes(n int) []int {
	if n <= t.maxFanout {
		return []int{n}
	}
	k := (n + t.maxFanout - 1) / t.maxFanout
	sizes := make([]int, k)
	for i := range sizes {
		sizes[i] = t.maxFanout
	}
	last := n - (k-1)*t.maxFanout
	sizes[k-1] = last
	if last < t.minFanout {
		pair := t.maxFanout + last
		sizes[k-2] = pair - pair/2
		sizes[k-1] = pair / 2
	}
	return sizes
}
