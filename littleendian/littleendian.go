// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package littleendian encodes and decodes the little-endian integers
// used to frame snapshot streams.
package littleendian

func Uint16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler: see golang.org/issue/14808
	return uint16(b[0]) | uint16(b[1])<<8
}

func Uint32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler: see golang.org/issue/14808
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func Uint64(b []byte) uint64 {
	_ = b[7] // Bounds check hint to compiler: see golang.org/issue/14808
	return uint64(Uint32(b)) | uint64(Uint32(b[4:]))<<32
}

func PutUint16(b []byte, v uint16) {
	_ = b[1]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func PutUint32(b []byte, v uint32) {
	_ = b[3]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func PutUint64(b []byte, v uint64) {
	_ = b[7]
	PutUint32(b, uint32(v))
	PutUint32(b[4:], uint32(v>>32))
}
