// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot_test

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/gogama/rtree"
	"github.com/gogama/rtree/packedrtree"
	"github.com/gogama/rtree/snapshot"
)

type parcel struct {
	id  string
	box rtree.Box
}

func (p *parcel) Bounds() rtree.Box {
	return p.box
}

func ExampleWrite() {
	tree := rtree.New[*parcel]()
	tree.Insert(&parcel{"a", rtree.Box{XMin: 0, YMin: 0, XMax: 1, YMax: 1}})
	tree.Insert(&parcel{"b", rtree.Box{XMin: 2, YMin: 2, XMax: 3, YMax: 3}})
	tree.Insert(&parcel{"c", rtree.Box{XMin: 5, YMin: 1, XMax: 6, YMax: 2}})
	snap, _ := packedrtree.NewSnapshot(tree, packedrtree.DefaultNodeSize)

	var buf bytes.Buffer
	err := snapshot.Write(&buf, "parcels", snap, func(p *parcel) string { return p.id }, snapshot.Zstd)
	fmt.Println(err)

	h, index, recs, err := snapshot.Read(&buf)
	fmt.Println(h, err)
	var ids []string
	for r := range index.SearchSeq(rtree.Box{XMin: 0, YMin: 0, XMax: 2.5, YMax: 2.5}) {
		ids = append(ids, recs[r.Offset].Key)
	}
	slices.Sort(ids)
	fmt.Println(ids)
	// Output: <nil>
	// Header{Name:parcels,Envelope:[0,0,6,3],NumRefs:3,NodeSize:16,Compression:zstd} <nil>
	// [a b]
}

func ExampleReader_Data() {
	var buf bytes.Buffer
	h, _ := snapshot.NewHeader(snapshot.HeaderFields{Name: "tiny", NumRefs: 1, NodeSize: 2, Envelope: rtree.Box{XMax: 1, YMax: 1}})
	index, _ := packedrtree.New([]packedrtree.Ref{{Box: rtree.Box{XMax: 1, YMax: 1}}}, 2)
	w := snapshot.NewWriter(&buf)
	_ = w.Header(h)
	_ = w.Index(index)
	_ = w.Data(snapshot.Record{Key: "only", Box: rtree.Box{XMax: 1, YMax: 1}})
	fmt.Println(w.Close())

	r := snapshot.NewReader(&buf)
	for {
		rec, err := r.Data()
		if err != nil {
			fmt.Println(err)
			break
		}
		fmt.Println(rec)
	}
	// Output: <nil>
	// Record{"only",[0,0,1,1]}
	// EOF
}
