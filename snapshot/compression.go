// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the compression algorithm applied to the body
// of a snapshot stream.
type Compression uint8

const (
	// None indicates an uncompressed body.
	None Compression = 0
	// Zstd indicates a body compressed as a single zstd stream.
	Zstd Compression = 1
	// LZ4 indicates a body compressed as a single lz4 frame.
	LZ4 Compression = 2
)

var compressionNames = [...]string{None: "none", Zstd: "zstd", LZ4: "lz4"}

func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}
	return fmt.Sprintf("Compression(%d)", uint8(c))
}

func (c Compression) valid() bool {
	return int(c) < len(compressionNames)
}

// ParseCompression returns the Compression whose String value is s.
func ParseCompression(s string) (Compression, error) {
	for i, name := range compressionNames {
		if s == name {
			return Compression(i), nil
		}
	}
	return None, fmtErr("unknown compression %q", s)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// compressor wraps w so that everything written is compressed with c.
// The returned writer must be closed to flush the compressed stream,
// which does not close w.
func compressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, wrapErr("failed to create zstd encoder", err)
		}
		return enc, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmtErr("unknown compression %s", c)
	}
}

// decompressor wraps r so that reads return the data decompressed with
// c. Closing the returned reader releases decoder resources and does not
// close r.
func decompressor(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, wrapErr("failed to create zstd decoder", err)
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmtErr("unknown compression %s", c)
	}
}
