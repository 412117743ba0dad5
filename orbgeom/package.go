// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package orbgeom adapts github.com/paulmach/orb geometries and GeoJSON
// features for use with an rtree.Tree.
//
// Shape wraps any orb.Geometry so that it can serve as the query
// geometry of rtree.Tree.QueryGeometry, testing intersection against
// the exact geometry rather than just its bounding box. Feature wraps a
// GeoJSON feature so that it can be stored in a tree.
package orbgeom
