// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// Check verifies the structural invariants of the tree and returns an
// error wrapping ErrInvariant describing the first violation found. It
// walks the whole tree, so it is meant for tests and debugging.
//
// The invariants are: every leaf is at the same depth; every non-root
// node holds between MinFanout and MaxFanout entries, and the root at
// most MaxFanout; a branch root has at least two children; every node's
// box is exactly the union of its entries' boxes; every item still
// reports the bounds it was inserted with; and Len matches the number of
// items stored.
func (t *Tree[T]) Check() error {
	if t.root == nil {
		return invariantErr("nil root")
	}
	if !t.root.isLeaf() && len(t.root.children) < 2 {
		return invariantErr("branch root has %d children", len(t.root.children))
	}
	n, err := t.checkNode(t.root, true)
	if err != nil {
		return err
	}
	if n != t.size {
		return invariantErr("tree holds %d items but Len is %d", n, t.size)
	}
	return nil
}

func (t *Tree[T]) checkNode(n *node[T], isRoot bool) (int, error) {
	if n == nil {
		return 0, invariantErr("nil node")
	}
	if n.level < 0 {
		return 0, invariantErr("node has negative level %d", n.level)
	}
	count := n.count()
	if count > t.maxFanout || !isRoot && count < t.minFanout {
		return 0, invariantErr("level %d node has %d entries, want [%d, %d]",
			n.level, count, t.minFanout, t.maxFanout)
	}
	box := EmptyBox
	items := 0
	if n.isLeaf() {
		if len(n.children) != 0 {
			return 0, invariantErr("leaf has %d children", len(n.children))
		}
		for i := range n.entries {
			e := &n.entries[i]
			if b := e.item.Bounds(); b != e.box {
				return 0, invariantErr("item bounds changed from %s to %s", e.box, b)
			}
			box.Expand(&e.box)
		}
		items = len(n.entries)
	} else {
		if len(n.entries) != 0 {
			return 0, invariantErr("level %d branch holds %d items", n.level, len(n.entries))
		}
		for _, c := range n.children {
			if c == nil {
				return 0, invariantErr("level %d branch has nil child", n.level)
			}
			if c.level != n.level-1 {
				return 0, invariantErr("level %d branch has level %d child", n.level, c.level)
			}
			k, err := t.checkNode(c, false)
			if err != nil {
				return 0, err
			}
			items += k
			box.Expand(&c.box)
		}
	}
	if box != n.box {
		return 0, invariantErr("level %d node has box %s, want %s", n.level, n.box, box)
	}
	return items, nil
}
