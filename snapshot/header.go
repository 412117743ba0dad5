// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/gogama/rtree"
	flatbuffers "github.com/google/flatbuffers/go"
)

// Header table field slots.
const (
	slotName = iota
	slotEnvelope
	slotNumRefs
	slotNodeSize
	slotCompression
	numHeaderSlots
)

func vtableOffset(slot int) flatbuffers.VOffsetT {
	return flatbuffers.VOffsetT(4 + 2*slot)
}

// HeaderFields are the values stored in a snapshot header.
type HeaderFields struct {
	// Name is a free-form name for the snapshot.
	Name string
	// Envelope is the bounding box of all items in the snapshot.
	Envelope rtree.Box
	// NumRefs is the number of references in the index, which is also
	// the number of records in the data section. Zero means the
	// snapshot is empty and has no index.
	NumRefs uint64
	// NodeSize is the node size of the index. It must be at least 2
	// unless NumRefs is zero.
	NodeSize uint16
	// Compression is the compression applied to the body.
	Compression Compression
}

func (f *HeaderFields) validate() error {
	if f.NumRefs > math.MaxInt {
		return fmtErr("num refs %d overflows int", f.NumRefs)
	} else if f.NumRefs > 0 && f.NodeSize < 2 {
		return fmtErr("node size %d invalid for %d refs (must be at least 2)", f.NodeSize, f.NumRefs)
	} else if !f.Compression.valid() {
		return fmtErr("unknown compression %s", f.Compression)
	}
	return nil
}

// Header is a snapshot header. It holds the header fields along with
// their encoding as a size-prefixed FlatBuffers table.
type Header struct {
	fields HeaderFields
	buf    []byte
}

// NewHeader encodes the given fields as a Header. Returns an error if
// the fields are not valid together.
func NewHeader(f HeaderFields) (*Header, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &Header{fields: f, buf: encodeHeader(&f)}, nil
}

func encodeHeader(f *HeaderFields) []byte {
	b := flatbuffers.NewBuilder(128 + len(f.Name))
	name := b.CreateString(f.Name)
	b.StartVector(flatbuffers.SizeFloat64, 4, flatbuffers.SizeFloat64)
	b.PrependFloat64(f.Envelope.YMax)
	b.PrependFloat64(f.Envelope.XMax)
	b.PrependFloat64(f.Envelope.YMin)
	b.PrependFloat64(f.Envelope.XMin)
	envelope := b.EndVector(4)
	b.StartObject(numHeaderSlots)
	b.PrependUOffsetTSlot(slotName, name, 0)
	b.PrependUOffsetTSlot(slotEnvelope, envelope, 0)
	b.PrependUint64Slot(slotNumRefs, f.NumRefs, 0)
	b.PrependUint16Slot(slotNodeSize, f.NodeSize, 0)
	b.PrependByteSlot(slotCompression, byte(f.Compression), 0)
	b.FinishSizePrefixed(b.EndObject())
	return bytes.Clone(b.FinishedBytes())
}

// parseHeader decodes a Header from a buffer holding a size-prefixed
// FlatBuffers table.
func parseHeader(buf []byte) (*Header, error) {
	var f HeaderFields
	err := safeFlatBuffersInteraction(func() error {
		n := flatbuffers.GetUOffsetT(buf[flatbuffers.SizeUint32:])
		tab := flatbuffers.Table{Bytes: buf, Pos: n + flatbuffers.SizeUint32}
		f.Envelope = rtree.EmptyBox
		if o := flatbuffers.UOffsetT(tab.Offset(vtableOffset(slotName))); o != 0 {
			f.Name = string(tab.ByteVector(o + tab.Pos))
		}
		if o := flatbuffers.UOffsetT(tab.Offset(vtableOffset(slotEnvelope))); o != 0 {
			if n := tab.VectorLen(o); n != 4 {
				return fmtErr("envelope has %d coordinates, want 4", n)
			}
			a := tab.Vector(o)
			f.Envelope = rtree.Box{
				XMin: tab.GetFloat64(a),
				YMin: tab.GetFloat64(a + flatbuffers.SizeFloat64),
				XMax: tab.GetFloat64(a + 2*flatbuffers.SizeFloat64),
				YMax: tab.GetFloat64(a + 3*flatbuffers.SizeFloat64),
			}
		}
		if o := flatbuffers.UOffsetT(tab.Offset(vtableOffset(slotNumRefs))); o != 0 {
			f.NumRefs = tab.GetUint64(o + tab.Pos)
		}
		if o := flatbuffers.UOffsetT(tab.Offset(vtableOffset(slotNodeSize))); o != 0 {
			f.NodeSize = tab.GetUint16(o + tab.Pos)
		}
		if o := flatbuffers.UOffsetT(tab.Offset(vtableOffset(slotCompression))); o != 0 {
			f.Compression = Compression(tab.GetByte(o + tab.Pos))
		}
		return nil
	})
	if err == nil {
		err = f.validate()
	}
	if err != nil {
		return nil, formatErr("invalid header: %w", err)
	}
	return &Header{fields: f, buf: buf}, nil
}

// Fields returns the values stored in the header.
func (h *Header) Fields() HeaderFields {
	return h.fields
}

// Name returns the snapshot name.
func (h *Header) Name() string {
	return h.fields.Name
}

// Envelope returns the bounding box of all items in the snapshot.
func (h *Header) Envelope() rtree.Box {
	return h.fields.Envelope
}

// NumRefs returns the number of references in the index.
func (h *Header) NumRefs() int {
	return int(h.fields.NumRefs)
}

// NodeSize returns the node size of the index.
func (h *Header) NodeSize() uint16 {
	return h.fields.NodeSize
}

// Compression returns the compression applied to the body.
func (h *Header) Compression() Compression {
	return h.fields.Compression
}

// Bytes returns the encoded header, including its size prefix. The
// returned slice must not be modified.
func (h *Header) Bytes() []byte {
	return h.buf
}

// String returns a string summarizing the Header fields.
func (h *Header) String() string {
	var b strings.Builder
	b.WriteString("Header{")
	stringStr(&b, "Name", h.fields.Name)
	if !h.fields.Envelope.IsEmpty() {
		stringStr(&b, ",Envelope", h.fields.Envelope.String())
	}
	if h.fields.NumRefs > 0 {
		stringUint64(&b, ",NumRefs", h.fields.NumRefs)
		stringUint64(&b, ",NodeSize", uint64(h.fields.NodeSize))
	} else {
		b.WriteString(",NO INDEX")
	}
	stringStr(&b, ",Compression", h.fields.Compression.String())
	b.WriteByte('}')
	return b.String()
}

func stringKey(b *strings.Builder, key string) {
	b.WriteString(key)
	b.WriteByte(':')
}

func stringStr(b *strings.Builder, key string, value string) {
	stringKey(b, key)
	b.WriteString(value)
}

func stringUint64(b *strings.Builder, key string, value uint64) {
	stringKey(b, key)
	fmt.Fprintf(b, "%d", value)
}
