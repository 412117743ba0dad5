// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"io"
)

const (
	// magicLen is the length of the magic number in bytes.
	magicLen = 8
	// MinMajorVersion is the minimum major format version that this
	// package can read.
	MinMajorVersion = 0x01
	// MaxMajorVersion is the maximum major format version that this
	// package can read.
	MaxMajorVersion = 0x01
	// headerMaxLen is the maximum size of a header this package will
	// read, so that a corrupt size prefix cannot cause a huge
	// allocation.
	headerMaxLen = 1024 * 1024
)

// magic contains the magic number.
//
// The fourth byte is the major format version of data written by this
// package, and the last byte is the patch version.
var magic = [magicLen]byte{0x72, 0x74, 0x72, 0x01, 0x72, 0x74, 0x72, 0x00}

// Version is a version of the snapshot stream format.
type Version struct {
	// Major is the major version. Streams with different major
	// versions are not compatible.
	Major uint8
	// Patch is the patch version.
	Patch uint8
}

// Magic reads the magic number from a stream and, if it is valid,
// returns the format version. It does not read beyond the magic number.
//
// Calling this function will result in 8 bytes being read from the
// stream reader (unless there were fewer than 8 bytes available, in
// which case all available bytes in the stream are consumed).
func Magic(r io.Reader) (Version, error) {
	m := make([]byte, magicLen)
	_, err := io.ReadFull(r, m)
	if err != nil {
		return Version{}, err
	}
	if m[0] == magic[0] &&
		m[1] == magic[1] &&
		m[2] == magic[2] &&
		m[4] == magic[4] &&
		m[5] == magic[5] &&
		m[6] == magic[6] {
		return Version{m[3], m[7]}, nil
	}
	return Version{}, formatErr("invalid magic number")
}
