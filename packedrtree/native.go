// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"io"
	"slices"
	"unsafe"
)

// littleEndianHost is true if the host stores multi-byte values least
// significant byte first. On such a host the in-memory node array is
// already in marshaled form.
var littleEndianHost = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// swapOctets reverses the byte order of each 8-byte word in b.
func swapOctets(b []byte) {
	for i := 0; i+8 <= len(b); i += 8 {
		slices.Reverse(b[i : i+8])
	}
}

// fixLittleEndianOctets converts a run of 8-byte words read in
// little-endian order to host order, in place.
func fixLittleEndianOctets(b []byte) {
	if !littleEndianHost {
		swapOctets(b)
	}
}

// writeLittleEndianOctets writes a run of 8-byte words held in host
// order to w in little-endian order. Panics if len(p) is not a multiple
// of 8.
func writeLittleEndianOctets(w io.Writer, p []byte) (n int, err error) {
	if len(p)%8 != 0 {
		textPanic("len(p) must be exact multiple of 8")
	}
	if littleEndianHost {
		return w.Write(p)
	}
	buf := make([]byte, 8192)
	var m int
	for n < len(p) {
		k := copy(buf, p[n:])
		swapOctets(buf[:k])
		m, err = w.Write(buf[:k])
		n += m
		if err != nil {
			return
		}
	}
	return
}
