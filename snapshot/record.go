// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"fmt"
	"io"
	"math"
	"unsafe"

	"github.com/gogama/rtree"
	"github.com/gogama/rtree/littleendian"
	flatbuffers "github.com/google/flatbuffers/go"
)

// maxKeyLen is the longest record key a Reader will accept.
const maxKeyLen = 64 * 1024 * 1024

// A Record is one entry in the data section of a snapshot: the bounding
// box of an indexed item plus a key identifying the item.
type Record struct {
	Key string
	Box rtree.Box
}

// Bounds returns the bounding box of the record, making Record an
// rtree.Item.
func (r Record) Bounds() rtree.Box {
	return r.Box
}

// String returns a compact representation of the record.
func (r Record) String() string {
	return fmt.Sprintf("Record{%q,%s}", r.Key, r.Box)
}

// recordWriter encodes records to an underlying stream.
type recordWriter struct {
	w   io.Writer
	buf [4 * flatbuffers.SizeFloat64]byte
}

func (w *recordWriter) write(rec Record) (n int, err error) {
	flatbuffers.WriteFloat64(w.buf[0:], rec.Box.XMin)
	flatbuffers.WriteFloat64(w.buf[8:], rec.Box.YMin)
	flatbuffers.WriteFloat64(w.buf[16:], rec.Box.XMax)
	flatbuffers.WriteFloat64(w.buf[24:], rec.Box.YMax)
	if n, err = w.w.Write(w.buf[:]); err != nil {
		return
	}
	var m int
	m, err = w.writeString(rec.Key)
	n += m
	return
}

func (w *recordWriter) writeString(v string) (n int, err error) {
	if int64(len(v)) > math.MaxUint32 {
		return 0, fmtErr("key length %d overflows uint32", len(v))
	}
	var b [flatbuffers.SizeUint32]byte
	littleendian.PutUint32(b[:], uint32(len(v)))
	if n, err = w.w.Write(b[:]); err != nil {
		return
	}
	var m int
	m, err = w.w.Write(unsafe.Slice(unsafe.StringData(v), len(v)))
	n += m
	return
}

// recordReader decodes records from an underlying stream.
type recordReader struct {
	r   io.Reader
	buf [4 * flatbuffers.SizeFloat64]byte
}

// read decodes the next record. It returns io.EOF only if the stream
// ends cleanly before the record starts.
func (r *recordReader) read() (rec Record, err error) {
	if _, err = io.ReadFull(r.r, r.buf[:]); err != nil {
		return
	}
	rec.Box = rtree.Box{
		XMin: flatbuffers.GetFloat64(r.buf[0:]),
		YMin: flatbuffers.GetFloat64(r.buf[8:]),
		XMax: flatbuffers.GetFloat64(r.buf[16:]),
		YMax: flatbuffers.GetFloat64(r.buf[24:]),
	}
	rec.Key, err = r.readString()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return
}

func (r *recordReader) readString() (string, error) {
	var b [flatbuffers.SizeUint32]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return "", err
	}
	n := littleendian.Uint32(b[:])
	if n > maxKeyLen {
		return "", formatErr("key length %d exceeds limit of %d bytes", n, maxKeyLen)
	}
	s := make([]byte, int(n))
	if _, err := io.ReadFull(r.r, s); err != nil {
		return "", err
	}
	if len(s) == 0 {
		return "", nil
	}
	return unsafe.String(&s[0], len(s)), nil
}
