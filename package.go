// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package rtree provides a dynamic R-Tree spatial index over arbitrary
// items that know their own axis-aligned bounding box.
//
// Items are inserted and removed one at a time, and range queries
// return lazy, restartable sequences whose traversal prunes every
// subtree whose bounding box cannot intersect the query box. The Tree
// is not synchronized: callers must serialize mutations, and must not
// run queries concurrently with a mutation. Queries may run
// concurrently with each other.
//
// For read-mostly workloads, or for reads that must proceed while a
// writer keeps mutating the Tree, see package packedrtree, which can
// freeze a Tree into an immutable packed Hilbert R-Tree.
package rtree
