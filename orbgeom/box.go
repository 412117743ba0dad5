// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orbgeom

import (
	"github.com/gogama/rtree"
	"github.com/paulmach/orb"
)

// emptyBound is the orb.Bound that orb itself returns for empty
// geometries.
var emptyBound = orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{-1, -1}}

// BoxOf converts an orb.Bound to an rtree.Box. An empty bound converts
// to rtree.EmptyBox.
func BoxOf(b orb.Bound) rtree.Box {
	if b.IsEmpty() {
		return rtree.EmptyBox
	}
	return rtree.Box{XMin: b.Min[0], YMin: b.Min[1], XMax: b.Max[0], YMax: b.Max[1]}
}

// BoundOf converts an rtree.Box to an orb.Bound. An empty box converts
// to an empty bound.
func BoundOf(b rtree.Box) orb.Bound {
	if b.IsEmpty() {
		return emptyBound
	}
	return orb.Bound{Min: orb.Point{b.XMin, b.YMin}, Max: orb.Point{b.XMax, b.YMax}}
}
