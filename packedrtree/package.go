// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package packedrtree provides an immutable packed Hilbert R-Tree.
//
// A PackedRTree is built in one pass from a complete list of references
// and is never modified afterward, which makes it compact, fast to
// search, and safe to share between goroutines. A Snapshot freezes the
// current contents of a dynamic rtree.Tree into a PackedRTree so that
// readers can keep querying a consistent view while the tree changes.
package packedrtree
