// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"fmt"
	"io"
	"iter"
	"math"
	"slices"
	"unsafe"

	"github.com/gogama/rtree"
)

// A Ref is a single item within the PackedRTree. Each Ref consists of
// the bounding box of the item it refers to plus an Offset which the
// caller can use to locate the item, for example an index into a slice
// or a byte offset into a file.
type Ref struct {
	rtree.Box

	// Offset locates the referenced item.
	Offset int64
}

func (r Ref) String() string {
	return fmt.Sprintf("Ref{%s,Offset:%d}", r.Box, r.Offset)
}

// A node is a private version of Ref. A leaf node is exactly the same
// as a Ref. For a non-leaf node, the Box is the extent of the subtree
// rooted at the node and the Offset is the node index of the node's
// first child.
type node struct {
	Ref
}

const numNodeBytes = int(unsafe.Sizeof(node{}))

func validateParams(numRefs int, nodeSize uint16) {
	if numRefs < 1 {
		textPanic("empty tree not allowed (num refs must be > 0)")
	} else if nodeSize < 2 {
		textPanic("node size must be at least 2")
	}
}

// Size returns the size in bytes of the marshaled form of a packed
// Hilbert R-Tree having a given reference count and node size. Panics
// if numRefs is less than 1 or nodeSize is less than 2, and returns an
// error if integer overflow occurs.
func Size(numRefs int, nodeSize uint16) (int64, error) {
	validateParams(numRefs, nodeSize)
	levels, err := levelify(numRefs, int(nodeSize))
	if err != nil {
		return 0, err
	}
	numNodes := levels[0].end
	if int64(numNodes) > math.MaxInt64/int64(numNodeBytes) {
		return 0, sentinelErr(ErrTooLarge, "size overflows int64")
	}
	return int64(numNodes) * int64(numNodeBytes), nil
}

// totalNodes sums numRefs and numInternal, returning an error if
// integer overflow occurs.
func totalNodes(numRefs, numInternal int) (n int, err error) {
	if numInternal > math.MaxInt-numRefs {
		err = sentinelErr(ErrTooLarge, "total node count overflows int")
	} else {
		n = numRefs + numInternal
	}
	return
}

// A levelRange is the closed/open range [start, end) of indices into
// the node list occupied by one level of the tree.
type levelRange struct {
	start, end int
}

// levelify computes the level ranges which result from a given leaf
// count (numRefs) and child count per node (nodeSize). The leaf level
// comes first in the result and the root level last, while in the node
// list the root comes first and the leaves last.
//
// For example, numRefs = 4 and nodeSize = 2 give [[3, 7], [1, 3],
// [0, 1]].
func levelify(numRefs, nodeSize int) ([]levelRange, error) {
	var numInternal int

	// Node counts per level, leaves first. For the example above this
	// is [4, 2, 1].
	nodesThisLevel := numRefs
	nodesPerLevel := make([]int, 1, 16)
	nodesPerLevel[0] = nodesThisLevel
	for {
		nodesThisLevel = nodesThisLevel/nodeSize + b2i(nodesThisLevel%nodeSize != 0)
		if numInternal > math.MaxInt-nodesThisLevel {
			return nil, sentinelErr(ErrTooLarge, "internal node count overflows int")
		}
		nodesPerLevel = append(nodesPerLevel, nodesThisLevel)
		numInternal += nodesThisLevel
		if nodesThisLevel <= 1 {
			break
		}
	}

	numNodes, err := totalNodes(numRefs, numInternal)
	if err != nil {
		return nil, err
	}

	levels := make([]levelRange, len(nodesPerLevel))
	nodesRemaining := numNodes
	for i := range nodesPerLevel {
		nodesRemaining -= nodesPerLevel[i]
		levels[i] = levelRange{start: nodesRemaining, end: nodesRemaining + nodesPerLevel[i]}
	}
	return levels, nil
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// A ticket is a pending group of up to nodeSize sibling nodes still to
// be searched.
type ticket struct {
	// nodeIndex is the index of the first node in the group.
	nodeIndex int
	// level is the tree level the group belongs to. Level 0 holds the
	// leaf nodes.
	level int
}

// PackedRTree is a packed Hilbert R-Tree.
type PackedRTree struct {
	// numRefs is the number of leaf nodes, i.e. Ref values.
	numRefs int
	// nodeSize is the number of child nodes per parent node.
	nodeSize int
	// levels holds the level ranges, leaf level first.
	levels []levelRange
	// nodes is the complete list of nodes in the tree, root first.
	nodes []node
}

func noo(numRefs int, nodeSize uint16) (*PackedRTree, error) {
	validateParams(numRefs, nodeSize)

	levels, err := levelify(numRefs, int(nodeSize))
	if err != nil {
		return nil, err
	}

	return &PackedRTree{
		numRefs:  numRefs,
		nodeSize: int(nodeSize),
		levels:   levels,
		nodes:    make([]node, levels[0].end),
	}, nil
}

// New creates a new packed Hilbert R-Tree from a non-empty,
// Hilbert-sorted list of references and a given node size. Panics if
// the reference list is empty or node size is less than 2.
//
// Use HilbertSort to sort the references. If the input slice is not
// Hilbert-sorted, the tree still returns correct search results but
// searches are slower.
func New(refs []Ref, nodeSize uint16) (*PackedRTree, error) {
	prt, err := noo(len(refs), nodeSize)
	if err != nil {
		return nil, err
	}
	i := prt.levels[0].start
	for j := range refs {
		prt.nodes[i] = node{refs[j]}
		i++
	}
	// Generate the internal nodes, one level at a time from the leaves
	// up.
	for i = 0; i < len(prt.levels)-1; i++ {
		level := prt.levels[i]
		nodeIndex := level.start
		parentIndex := prt.levels[i+1].start
		for nodeIndex < level.end {
			parent := &prt.nodes[parentIndex]
			*parent = node{Ref: Ref{rtree.EmptyBox, int64(nodeIndex)}}
			for j := 0; j < prt.nodeSize && nodeIndex < level.end; j++ {
				parent.Expand(&prt.nodes[nodeIndex].Box)
				nodeIndex++
			}
			parentIndex++
		}
	}
	return prt, nil
}

// Bounds returns the bounding box around all references in the tree.
func (prt *PackedRTree) Bounds() rtree.Box {
	return prt.nodes[0].Box
}

// NumRefs returns the number of references stored in the tree.
func (prt *PackedRTree) NumRefs() int {
	return prt.numRefs
}

// NodeSize returns the child node count of the tree.
func (prt *PackedRTree) NodeSize() uint16 {
	return uint16(prt.nodeSize)
}

// Refs returns a sequence of the tree's references in Hilbert-sorted
// order, which is the order they were passed to New.
func (prt *PackedRTree) Refs() iter.Seq[Ref] {
	return func(yield func(Ref) bool) {
		leaves := prt.levels[0]
		for pos := leaves.start; pos < leaves.end; pos++ {
			if !yield(prt.nodes[pos].Ref) {
				return
			}
		}
	}
}

func (prt *PackedRTree) String() string {
	return fmt.Sprintf("PackedRTree{Bounds:%s,NumRefs:%d,NodeSize:%d}", prt.Bounds(), prt.numRefs, prt.nodeSize)
}

// Search searches the tree for references whose bounding boxes
// intersect the query box. The order of the search results is not
// defined.
func (prt *PackedRTree) Search(b rtree.Box) Results {
	r := make(Results, 0)
	for result := range prt.SearchSeq(b) {
		r = append(r, result)
	}
	return r
}

// SearchSeq is the lazy form of Search. The tree is searched as the
// sequence is iterated, and each iteration is a fresh search.
func (prt *PackedRTree) SearchSeq(b rtree.Box) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		if b.IsEmpty() {
			return
		}
		stack := make([]ticket, 1, 2*len(prt.levels))
		stack[0] = ticket{nodeIndex: 0, level: len(prt.levels) - 1}
		for len(stack) > 0 {
			t := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			end := min(t.nodeIndex+prt.nodeSize, prt.levels[t.level].end)
			for pos := t.nodeIndex; pos < end; pos++ {
				n := &prt.nodes[pos]
				if !n.Intersects(b) {
					continue
				} else if t.level == 0 {
					if !yield(Result{Offset: n.Offset, RefIndex: pos - prt.levels[0].start}) {
						return
					}
				} else {
					stack = append(stack, ticket{nodeIndex: int(n.Offset), level: t.level - 1})
				}
			}
		}
	}
}

// Marshal serializes the tree to a writer in a portable little-endian
// format, returning the number of bytes written. The number of bytes
// written is always given by Size.
func (prt *PackedRTree) Marshal(w io.Writer) (n int, err error) {
	if w == nil {
		textPanic("nil writer")
	}
	ptr := (*byte)(unsafe.Pointer(&prt.nodes[0]))
	src := unsafe.Slice(ptr, numNodeBytes*len(prt.nodes))
	n, err = writeLittleEndianOctets(w, src)
	return
}

// Unmarshal deserializes a tree written by Marshal. The reference count
// and node size must be the ones the tree was created with. If this
// function returns without error, the reader is positioned on the first
// byte after the tree.
func Unmarshal(r io.Reader, numRefs int, nodeSize uint16) (*PackedRTree, error) {
	if r == nil {
		textPanic("nil reader")
	}

	validateParams(numRefs, nodeSize)
	levels, err := levelify(numRefs, int(nodeSize))
	if err != nil {
		return nil, err
	}
	numNodes := levels[0].end
	nodes, err := readNodes(r, numNodes)
	if err != nil {
		return nil, wrapErr("failed to read %d nodes", err, numNodes)
	}

	prt := &PackedRTree{
		numRefs:  numRefs,
		nodeSize: int(nodeSize),
		levels:   levels,
		nodes:    nodes,
	}
	if err = prt.validate(); err != nil {
		return nil, err
	}
	return prt, nil
}

// readChunkNodes is the number of nodes readNodes reads before it first
// grows its buffer.
const readChunkNodes = 1 << 14

// readNodes reads n marshaled nodes from r. The node slice grows as
// bytes arrive, so a stream shorter than n nodes fails with an EOF
// error before memory for all n nodes is committed.
func readNodes(r io.Reader, n int) ([]node, error) {
	nodes := make([]node, 0, min(n, readChunkNodes))
	for len(nodes) < n {
		start := len(nodes)
		k := min(n-start, max(start, readChunkNodes))
		nodes = slices.Grow(nodes, k)[:start+k]
		ptr := (*byte)(unsafe.Pointer(&nodes[start]))
		dst := unsafe.Slice(ptr, numNodeBytes*k)
		if _, err := io.ReadFull(r, dst); err != nil {
			if err == io.EOF && start > 0 {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		fixLittleEndianOctets(dst)
	}
	return nodes, nil
}

// validate checks that every internal node points to the first of its
// children. The layout of a packed tree is fully determined by its
// reference count and node size, so any other child offset means the
// input was corrupt and searching it could run out of bounds.
func (prt *PackedRTree) validate() error {
	for i := 1; i < len(prt.levels); i++ {
		level, below := prt.levels[i], prt.levels[i-1]
		for pos := level.start; pos < level.end; pos++ {
			expected := int64(below.start + (pos-level.start)*prt.nodeSize)
			if actual := prt.nodes[pos].Offset; actual != expected {
				return sentinelErr(ErrCorrupt, "node %d has child offset %d, want %d", pos, actual, expected)
			}
		}
	}
	return nil
}

// Result is a single search result.
type Result struct {
	// Offset is the Offset of the matching Ref.
	Offset int64
	// RefIndex is the index of the matching Ref in the Hilbert-sorted
	// list of Ref values passed to New.
	RefIndex int
}

// Results is a slice of Result structures which implements
// sort.Interface. The sort.Sort function will sort Results in
// ascending order of Result.Offset.
type Results []Result

func (rs Results) Len() int {
	return len(rs)
}

func (rs Results) Less(i, j int) bool {
	return rs[i].Offset < rs[j].Offset
}

func (rs Results) Swap(i, j int) {
	rs[i], rs[j] = rs[j], rs[i]
}
