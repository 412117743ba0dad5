// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package snapshot reads and writes index snapshot streams.
//
// A snapshot stream holds a packed Hilbert R-Tree together with one
// record per indexed item. It consists of four consecutive sections:
//
//  1. An 8-byte magic number.
//  2. A header, stored as a size-prefixed FlatBuffers table.
//  3. The index, in the format written by packedrtree.PackedRTree.Marshal.
//  4. The data: one Record for each Ref in the index, in Ref offset
//     order, so that the Offset of a search result is the position of
//     the matching record.
//
// Sections 3 and 4 together form the body, which may be compressed with
// zstd or lz4 according to the header. An empty snapshot has no index
// and no records.
package snapshot
