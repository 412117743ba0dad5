// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"fmt"
	"io"

	"github.com/gogama/rtree/littleendian"
	flatbuffers "github.com/google/flatbuffers/go"
)

// safeFlatBuffersInteraction runs a function that interacts with
// FlatBuffers, trapping any panic that occurs and converting it to a
// normal Go error.
//
// FlatBuffers' Go code doesn't use standard Go error handling, so any
// attempt to read a corrupt buffer may trigger a panic.
func safeFlatBuffersInteraction(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: flatbuffers: %v", r)
		}
	}()
	err = f()
	return
}

// writeSizePrefixedTable writes a buffer holding a finished,
// size-prefixed FlatBuffers table to an output stream.
func writeSizePrefixedTable(w io.Writer, buf []byte) (n int, err error) {
	var size uint32
	if size, err = tableSize(buf); err != nil {
		return
	} else if uint64(flatbuffers.SizeUint32)+uint64(size) > uint64(len(buf)) {
		err = fmtErr("FlatBuffers table buffer is smaller than the size prefix (Len=%d, size=%d)", len(buf), size)
		return
	}
	return w.Write(buf[0 : flatbuffers.SizeUint32+size])
}

// readSizePrefixedTable reads a size-prefixed FlatBuffers table of at
// most maxLen bytes, not counting the prefix, from an input stream. The
// returned buffer includes the size prefix.
func readSizePrefixedTable(r io.Reader, maxLen uint32) ([]byte, error) {
	prefix := make([]byte, flatbuffers.SizeUint32)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return nil, wrapErr("failed to read table size", err)
	}
	size, _ := tableSize(prefix)
	if size > maxLen {
		return nil, formatErr("table size %d exceeds limit of %d bytes", size, maxLen)
	} else if size < flatbuffers.SizeUOffsetT {
		return nil, formatErr("table size %d too small", size)
	}
	buf := make([]byte, flatbuffers.SizeUint32+size)
	copy(buf, prefix)
	if _, err := io.ReadFull(r, buf[flatbuffers.SizeUint32:]); err != nil {
		return nil, wrapErr("failed to read %d byte table", err, size)
	}
	return buf, nil
}

func tableSize(buf []byte) (size uint32, err error) {
	if len(buf) < flatbuffers.SizeUint32 {
		err = fmtErr("buffer too short for size prefix (Len=%d)", len(buf))
		return
	}
	size = littleendian.Uint32(buf)
	return
}
