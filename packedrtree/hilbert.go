// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"cmp"
	"slices"

	"github.com/gogama/rtree"
	"github.com/gogama/rtree/internal/hilbert"
)

// HilbertOrder is the order of the Hilbert curve used in HilbertSort.
const HilbertOrder = hilbert.Order

// HilbertSort sorts a list of references, whose bounding box is given
// by extent, according to the position of the center of each reference
// on a Hilbert curve of order HilbertOrder covering the extent.
//
// The sort is stable, so references whose centers share a position on
// the curve keep their relative order. References with empty boxes sort
// first.
func HilbertSort(refs []Ref, extent rtree.Box) {
	g := hilbert.NewGrid(extent.XMin, extent.YMin, extent.Width(), extent.Height())
	type keyed struct {
		key uint32
		ref Ref
	}
	ks := make([]keyed, len(refs))
	for i := range refs {
		ks[i] = keyed{key: hilbertIndex(g, &refs[i].Box), ref: refs[i]}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		return cmp.Compare(a.key, b.key)
	})
	for i := range ks {
		refs[i] = ks[i].ref
	}
}

func hilbertIndex(g hilbert.Grid, b *rtree.Box) uint32 {
	if b.IsEmpty() {
		return 0
	}
	return g.Index((b.XMin+b.XMax)/2, (b.YMin+b.YMax)/2)
}
