// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"bytes"
	"math"
	"testing"

	"github.com/gogama/rtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHeader(t *testing.T) {
	t.Run("Invalid", func(t *testing.T) {
		testCases := []struct {
			name   string
			fields HeaderFields
			err    string
		}{
			{
				name:   "NodeSize",
				fields: HeaderFields{NumRefs: 3, NodeSize: 1},
				err:    "snapshot: node size 1 invalid for 3 refs (must be at least 2)",
			},
			{
				name:   "Compression",
				fields: HeaderFields{Compression: 7},
				err:    "snapshot: unknown compression Compression(7)",
			},
			{
				name:   "NumRefs",
				fields: HeaderFields{NumRefs: math.MaxUint64, NodeSize: 16},
				err:    "snapshot: num refs 18446744073709551615 overflows int",
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				h, err := NewHeader(testCase.fields)

				assert.Nil(t, h)
				assert.EqualError(t, err, testCase.err)
			})
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		testCases := []struct {
			name   string
			fields HeaderFields
		}{
			{
				name:   "Empty",
				fields: HeaderFields{Envelope: rtree.EmptyBox},
			},
			{
				name: "Full",
				fields: HeaderFields{
					Name:        "cities of the world",
					Envelope:    rtree.Box{XMin: -180, YMin: -90, XMax: 180, YMax: 90},
					NumRefs:     1 << 40,
					NodeSize:    math.MaxUint16,
					Compression: LZ4,
				},
			},
			{
				name: "Degenerate",
				fields: HeaderFields{
					Name:        "one",
					Envelope:    rtree.Box{XMin: 1.5, YMin: -2.25, XMax: 1.5, YMax: -2.25},
					NumRefs:     1,
					NodeSize:    2,
					Compression: Zstd,
				},
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				h, err := NewHeader(testCase.fields)
				require.NoError(t, err)

				var buf bytes.Buffer
				n, err := writeSizePrefixedTable(&buf, h.Bytes())
				require.NoError(t, err)
				assert.Equal(t, len(h.Bytes()), n)

				b, err := readSizePrefixedTable(&buf, headerMaxLen)
				require.NoError(t, err)
				parsed, err := parseHeader(b)
				require.NoError(t, err)
				assert.Equal(t, testCase.fields, parsed.Fields())
				assert.Equal(t, testCase.fields.Name, parsed.Name())
				assert.Equal(t, testCase.fields.Envelope, parsed.Envelope())
				assert.Equal(t, int(testCase.fields.NumRefs), parsed.NumRefs())
				assert.Equal(t, testCase.fields.NodeSize, parsed.NodeSize())
				assert.Equal(t, testCase.fields.Compression, parsed.Compression())
			})
		}
	})
}

func TestParseHeader(t *testing.T) {
	t.Run("Corrupt", func(t *testing.T) {
		h, err := parseHeader([]byte{4, 0, 0, 0, 0xff, 0xff, 0xff, 0x7f})

		assert.Nil(t, h)
		assert.ErrorContains(t, err, "snapshot: bad format: invalid header: panic: flatbuffers:")
	})

	t.Run("Invalid", func(t *testing.T) {
		h, err := parseHeader(encodeHeader(&HeaderFields{Compression: 200}))

		assert.Nil(t, h)
		assert.EqualError(t, err, "snapshot: bad format: invalid header: snapshot: unknown compression Compression(200)")
		assert.ErrorIs(t, err, ErrFormat)
	})
}

func TestHeader_String(t *testing.T) {
	testCases := []struct {
		name   string
		fields HeaderFields
		want   string
	}{
		{
			name:   "Empty",
			fields: HeaderFields{Envelope: rtree.EmptyBox},
			want:   "Header{Name:,NO INDEX,Compression:none}",
		},
		{
			name: "Indexed",
			fields: HeaderFields{
				Name:        "cities",
				Envelope:    rtree.Box{XMax: 1, YMax: 1.5},
				NumRefs:     3,
				NodeSize:    16,
				Compression: Zstd,
			},
			want: "Header{Name:cities,Envelope:[0,0,1,1.5],NumRefs:3,NodeSize:16,Compression:zstd}",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			h, err := NewHeader(testCase.fields)
			require.NoError(t, err)

			assert.Equal(t, testCase.want, h.String())
		})
	}
}

func TestReadSizePrefixedTable(t *testing.T) {
	testCases := []struct {
		name  string
		input []byte
		err   string
	}{
		{
			name: "Empty",
			err:  "snapshot: failed to read table size: EOF",
		},
		{
			name:  "TooBig",
			input: []byte{0x01, 0x00, 0x10, 0x00},
			err:   "snapshot: bad format: table size 1048577 exceeds limit of 1048576 bytes",
		},
		{
			name:  "TooSmall",
			input: []byte{0x03, 0x00, 0x00, 0x00},
			err:   "snapshot: bad format: table size 3 too small",
		},
		{
			name:  "Truncated",
			input: []byte{0x08, 0x00, 0x00, 0x00, 1, 2, 3},
			err:   "snapshot: failed to read 8 byte table: unexpected EOF",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			b, err := readSizePrefixedTable(bytes.NewReader(testCase.input), headerMaxLen)

			assert.Nil(t, b)
			assert.EqualError(t, err, testCase.err)
		})
	}
}

func TestCompression(t *testing.T) {
	testCases := []struct {
		name string
		c    Compression
	}{
		{"none", None},
		{"zstd", Zstd},
		{"lz4", LZ4},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.name, testCase.c.String())
			c, err := ParseCompression(testCase.name)
			assert.NoError(t, err)
			assert.Equal(t, testCase.c, c)
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		assert.Equal(t, "Compression(9)", Compression(9).String())
		_, err := ParseCompression("gzip")
		assert.EqualError(t, err, `snapshot: unknown compression "gzip"`)
	})
}
