// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"math"
	"slices"
)

// splitLeaf divides the entries of an overflowing leaf between n and a
// new sibling leaf, which is returned.
func (t *Tree[T]) splitLeaf(n *node[T]) *node[T] {
	g1, g2, b1, b2 := quadraticSplit(n.entries, entryBox[T], t.minFanout)
	n.entries, n.box = g1, b1
	tracer().Debugf("rtree: split leaf into %d+%d entries", len(g1), len(g2))
	return &node[T]{box: b2, entries: g2}
}

// splitBranch divides the children of an overflowing branch between n
// and a new sibling branch at the same level, which is returned.
func (t *Tree[T]) splitBranch(n *node[T]) *node[T] {
	g1, g2, b1, b2 := quadraticSplit(n.children, nodeBox[T], t.minFanout)
	n.children, n.box = g1, b1
	tracer().Debugf("rtree: split level %d branch into %d+%d children", n.level, len(g1), len(g2))
	return &node[T]{level: n.level, box: b2, children: g2}
}

// quadraticSplit partitions es into two groups using Guttman's quadratic
// split, returning the groups and their boxes. Each group ends up with at
// least minFanout elements provided len(es) >= 2*minFanout. Each group
// starts with its seed followed by elements in the order they were
// assigned. The slice es itself is not modified.
//
// The two seeds are the pair of elements that would waste the most area
// if put together. The remaining elements are assigned one at a time,
// always picking the one with the strongest preference for one group
// over the other, unless one group needs all the remaining elements to
// reach minFanout, in which case it gets them.
func quadraticSplit[E any](es []E, boxOf func(*E) Box, minFanout int) (g1, g2 []E, b1, b2 Box) {
	s1, s2 := pickSeeds(es, boxOf)
	g1 = make([]E, 0, len(es)-1)
	g2 = make([]E, 0, len(es)-1)
	g1 = append(g1, es[s1])
	g2 = append(g2, es[s2])
	b1, b2 = boxOf(&es[s1]), boxOf(&es[s2])

	rest := make([]E, 0, len(es)-2)
	for i := range es {
		if i != s1 && i != s2 {
			rest = append(rest, es[i])
		}
	}

	for len(rest) > 0 {
		if len(g1)+len(rest) <= minFanout {
			g1, b1 = appendGroup(g1, b1, rest, boxOf)
			break
		}
		if len(g2)+len(rest) <= minFanout {
			g2, b2 = appendGroup(g2, b2, rest, boxOf)
			break
		}
		i, d1, d2 := pickNext(rest, boxOf, b1, b2)
		e := rest[i]
		rest = slices.Delete(rest, i, i+1)
		b := boxOf(&e)
		if preferFirst(d1, d2, b1.Union(b).Area(), b2.Union(b).Area(), len(g1), len(g2)) {
			g1 = append(g1, e)
			b1.Expand(&b)
		} else {
			g2 = append(g2, e)
			b2.Expand(&b)
		}
	}
	return
}

// pickSeeds returns the indices of the pair of elements whose combined
// box wastes the most area, that is, whose union area minus their
// individual areas is largest. Ties go to the earliest pair.
func pickSeeds[E any](es []E, boxOf func(*E) Box) (s1, s2 int) {
	s1, s2 = 0, 1
	worst := math.Inf(-1)
	for i := 0; i < len(es)-1; i++ {
		bi := boxOf(&es[i])
		for j := i + 1; j < len(es); j++ {
			bj := boxOf(&es[j])
			if waste := bi.Union(bj).Area() - bi.Area() - bj.Area(); waste > worst {
				s1, s2, worst = i, j, waste
			}
		}
	}
	return
}

// pickNext returns the index of the element whose enlargement of b1
// differs most from its enlargement of b2, along with both enlargements.
// Ties go to the earliest element.
func pickNext[E any](rest []E, boxOf func(*E) Box, b1, b2 Box) (next int, d1, d2 float64) {
	maxDiff := -1.0
	for i := range rest {
		b := boxOf(&rest[i])
		e1, e2 := b1.Enlargement(b), b2.Enlargement(b)
		if diff := math.Abs(e1 - e2); diff > maxDiff {
			next, d1, d2, maxDiff = i, e1, e2, diff
		}
	}
	return
}

// preferFirst reports whether an element goes to the first group. The
// group needing less enlargement wins, then the group whose resulting
// area is smaller, then the group with fewer elements, then the first.
func preferFirst(d1, d2, a1, a2 float64, n1, n2 int) bool {
	switch {
	case d1 != d2:
		return d1 < d2
	case a1 != a2:
		return a1 < a2
	default:
		return n1 <= n2
	}
}

func appendGroup[E any](g []E, b Box, rest []E, boxOf func(*E) Box) ([]E, Box) {
	for i := range rest {
		r := boxOf(&rest[i])
		b.Expand(&r)
	}
	return append(g, rest...), b
}
