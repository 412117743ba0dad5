// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"bytes"
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/gogama/rtree"
	"github.com/gogama/rtree/packedrtree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thing struct {
	key string
	box rtree.Box
}

func (th *thing) Bounds() rtree.Box {
	return th.box
}

func thingKey(th *thing) string {
	return th.key
}

func TestWriteRead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, rtree.TraceKey)
	defer teardown()

	rnd := rand.New(rand.NewSource(11))
	tree := rtree.New[*thing](rtree.WithMaxFanout(8))
	for i := 0; i < 300; i++ {
		x, y := rnd.Float64()*500, rnd.Float64()*500
		tree.Insert(&thing{key: fmt.Sprintf("t%03d", i), box: rtree.Box{XMin: x, YMin: y, XMax: x + rnd.Float64()*20, YMax: y + rnd.Float64()*20}})
	}
	snap, err := packedrtree.NewSnapshot(tree, 5)
	require.NoError(t, err)

	for _, c := range []Compression{None, Zstd, LZ4} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, "things", snap, thingKey, c))

			h, index, recs, err := Read(&buf)

			require.NoError(t, err)
			assert.Equal(t, HeaderFields{
				Name:        "things",
				Envelope:    tree.Bounds(),
				NumRefs:     300,
				NodeSize:    5,
				Compression: c,
			}, h.Fields())
			require.NotNil(t, index)
			assert.Equal(t, snap.Index().String(), index.String())
			require.Len(t, recs, 300)
			for i := 0; i < 10; i++ {
				x, y := rnd.Float64()*500, rnd.Float64()*500
				b := rtree.Box{XMin: x, YMin: y, XMax: x + 60, YMax: y + 60}
				var want, got []string
				for th := range snap.Query(b) {
					want = append(want, th.key)
				}
				for r := range index.SearchSeq(b) {
					got = append(got, recs[r.Offset].Key)
					assert.True(t, recs[r.Offset].Box.Intersects(b))
				}
				slices.Sort(want)
				slices.Sort(got)
				assert.Equal(t, want, got, "query %s", b)
			}
		})
	}

	t.Run("Empty", func(t *testing.T) {
		empty, err := packedrtree.NewSnapshot(rtree.New[*thing](), packedrtree.DefaultNodeSize)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, "nothing", empty, thingKey, Zstd))

		h, index, recs, err := Read(&buf)

		require.NoError(t, err)
		assert.Equal(t, "Header{Name:nothing,NO INDEX,Compression:zstd}", h.String())
		assert.Nil(t, index)
		assert.Empty(t, recs)
	})

	t.Run("Panics", func(t *testing.T) {
		assert.PanicsWithValue(t, "snapshot: nil snapshot", func() {
			_ = Write[*thing](&bytes.Buffer{}, "", nil, thingKey, None)
		})
		assert.PanicsWithValue(t, "snapshot: nil key function", func() {
			_ = Write(&bytes.Buffer{}, "", snap, nil, None)
		})
	})

	t.Run("DoesNotClose", func(t *testing.T) {
		c := &closeRecorder{}
		require.NoError(t, Write(c, "things", snap, thingKey, LZ4))
		_, _, _, err := Read(c)
		require.NoError(t, err)
		assert.Equal(t, 0, c.closed)
	})
}
