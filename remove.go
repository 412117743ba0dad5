// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "slices"

// Remove deletes one reference to item from the tree and reports whether
// it was found. Items are matched with ==.
//
// Any node left with fewer than the minimum number of entries is
// dissolved and the items beneath it are reinserted, so the tree stays
// balanced and within its fanout bounds. If the root is left as a branch
// with a single child, the child becomes the new root.
func (t *Tree[T]) Remove(item T) bool {
	var orphans []entry[T]
	if !t.removeFrom(t.root, item, item.Bounds(), &orphans) {
		return false
	}
	t.size--
	t.collapseRoot()
	if len(orphans) > 0 {
		tracer().Debugf("rtree: reinserting %d orphaned items", len(orphans))
		for _, e := range orphans {
			t.insert(e)
		}
		t.collapseRoot()
	}
	return true
}

// removeFrom removes item from the subtree rooted at n. Children whose
// boxes do not intersect b are skipped, unless b is empty, because an
// item with empty bounds contributes nothing to the boxes above it and
// could be anywhere.
//
// Underfull children along the path to the item are unlinked and their
// entries appended to orphans. The boxes of n and every node below it on
// the path are recomputed.
func (t *Tree[T]) removeFrom(n *node[T], item T, b Box, orphans *[]entry[T]) bool {
	if n.isLeaf() {
		for i := range n.entries {
			if n.entries[i].item == item {
				n.entries = slices.Delete(n.entries, i, i+1)
				n.recalc()
				return true
			}
		}
		return false
	}
	prune := !b.IsEmpty()
	for i, c := range n.children {
		if prune && !c.box.Intersects(b) {
			continue
		}
		if !t.removeFrom(c, item, b, orphans) {
			continue
		}
		if c.count() < t.minFanout {
			n.children = slices.Delete(n.children, i, i+1)
			*orphans = c.collect(*orphans)
			tracer().Debugf("rtree: dissolved underfull level %d node", c.level)
		}
		n.recalc()
		return true
	}
	return false
}

// collapseRoot replaces a branch root having a single child by that
// child, repeatedly. A branch root with no children is replaced by an
// empty leaf.
func (t *Tree[T]) collapseRoot() {
	for !t.root.isLeaf() && len(t.root.children) <= 1 {
		if len(t.root.children) == 0 {
			t.root = newLeaf[T]()
			return
		}
		t.root = t.root.children[0]
		tracer().Debugf("rtree: root collapsed, height now %d", t.root.level+1)
	}
}
