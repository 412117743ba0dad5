// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/gogama/rtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	r := Record{Key: "a", Box: rtree.Box{XMax: 1, YMax: 1}}

	assert.Equal(t, r.Box, r.Bounds())
	assert.Equal(t, `Record{"a",[0,0,1,1]}`, r.String())
}

func TestRecordCodec(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		recs := []Record{
			{Key: "", Box: rtree.Box{}},
			{Key: "origin", Box: rtree.Box{XMin: -1, YMin: -1, XMax: 1, YMax: 1}},
			{Key: "empty", Box: rtree.EmptyBox},
			{Key: strings.Repeat("k", 1000), Box: rtree.Box{XMin: math.SmallestNonzeroFloat64, YMin: 0, XMax: math.MaxFloat64, YMax: 1e300}},
		}
		var buf bytes.Buffer
		w := recordWriter{w: &buf}
		size := 0
		for _, rec := range recs {
			n, err := w.write(rec)
			require.NoError(t, err)
			assert.Equal(t, 32+4+len(rec.Key), n)
			size += n
		}
		assert.Equal(t, size, buf.Len())

		r := recordReader{r: &buf}
		for i := range recs {
			rec, err := r.read()
			require.NoError(t, err, "record %d", i)
			assert.Equal(t, recs[i], rec)
		}
		_, err := r.read()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("Truncated", func(t *testing.T) {
		var buf bytes.Buffer
		w := recordWriter{w: &buf}
		_, err := w.write(Record{Key: "abc"})
		require.NoError(t, err)

		for n := 1; n < buf.Len(); n++ {
			r := recordReader{r: bytes.NewReader(buf.Bytes()[:n])}
			_, err = r.read()
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF, "truncated to %d bytes", n)
		}
	})

	t.Run("KeyTooLong", func(t *testing.T) {
		b := make([]byte, 36)
		b[32], b[33], b[34], b[35] = 0xff, 0xff, 0xff, 0xff
		r := recordReader{r: bytes.NewReader(b)}

		_, err := r.read()

		assert.EqualError(t, err, "snapshot: bad format: key length 4294967295 exceeds limit of 67108864 bytes")
	})
}
