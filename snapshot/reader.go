// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"io"

	"github.com/gogama/rtree/packedrtree"
)

// Reader reads a snapshot stream section by section. Each section is
// read lazily the first time it is asked for, and the read position
// never moves past the section most recently asked for.
//
// Any error reading the underlying stream is sticky: every later call
// returns it.
type Reader struct {
	stateful
	r       io.Reader
	header  *Header
	body    io.ReadCloser
	records recordReader
	index   *packedrtree.PackedRTree
	numData int
}

// NewReader creates a Reader that reads a snapshot stream from r.
// Panics if r is nil. Nothing is read from r until the first call to
// another method.
//
// If r is an io.Closer, closing the Reader also closes r.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		textPanic("nil reader")
	}
	return &Reader{
		stateful: stateful{state: beforeHeader},
		r:        r,
	}
}

// Header reads the magic number and the header, or returns the header
// read by a previous call.
func (r *Reader) Header() (*Header, error) {
	if r.header != nil {
		return r.header, r.errOpen()
	}
	if err := r.toState(beforeHeader, afterHeader); err != nil {
		return nil, err
	}
	v, err := Magic(r.r)
	if err != nil {
		return nil, r.toErr(wrapErr("failed to read magic number", err))
	} else if v.Major < MinMajorVersion || v.Major > MaxMajorVersion {
		return nil, r.toErr(formatErr("unsupported major version %d (supported: %d to %d)", v.Major, MinMajorVersion, MaxMajorVersion))
	}
	buf, err := readSizePrefixedTable(r.r, headerMaxLen)
	if err != nil {
		return nil, r.toErr(wrapErr("failed to read header", err))
	}
	h, err := parseHeader(buf)
	if err != nil {
		return nil, r.toErr(err)
	}
	body, err := decompressor(r.r, h.Compression())
	if err != nil {
		return nil, r.toErr(err)
	}
	r.header = h
	r.body = body
	r.records.r = body
	if h.NumRefs() == 0 {
		r.state = afterIndex
	}
	return h, nil
}

// errOpen returns ErrClosed if the Reader has been closed.
func (r *Reader) errOpen() error {
	if r.err == ErrClosed {
		return ErrClosed
	}
	return nil
}

// Index reads the index, or returns the index read by a previous call.
// Returns ErrNoIndex if the snapshot is empty.
//
// Index cannot be called for the first time after Data, since the
// index has already been skipped.
func (r *Reader) Index() (*packedrtree.PackedRTree, error) {
	h, err := r.Header()
	if err != nil {
		return nil, err
	} else if h.NumRefs() == 0 {
		return nil, ErrNoIndex
	} else if r.index != nil {
		return r.index, r.errOpen()
	}
	if err = r.toState(afterHeader, afterIndex); err == errUnexpectedState {
		return nil, errReadPastIndex
	} else if err != nil {
		return nil, err
	}
	index, err := packedrtree.Unmarshal(r.body, h.NumRefs(), h.NodeSize())
	if err != nil {
		return nil, r.toErr(wrapErr("failed to read index", err))
	}
	numRefs := int64(h.NumRefs())
	for ref := range index.Refs() {
		if ref.Offset < 0 || ref.Offset >= numRefs {
			return nil, r.toErr(formatErr("index ref offset %d outside [0, %d)", ref.Offset, numRefs))
		}
	}
	r.index = index
	return index, nil
}

// Data reads the next record. If the index has not been read, it is
// skipped. Returns io.EOF once every record declared by the header has
// been read.
func (r *Reader) Data() (Record, error) {
	h, err := r.Header()
	if err != nil {
		return Record{}, err
	} else if r.err != nil {
		return Record{}, r.err
	}
	if r.state == afterHeader {
		if err = r.skipIndex(h); err != nil {
			return Record{}, r.toErr(err)
		}
	}
	if r.state == eof || r.numData == h.NumRefs() {
		r.state = eof
		return Record{}, io.EOF
	}
	rec, err := r.records.read()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return Record{}, r.toErr(wrapErr("failed to read record %d of %d", err, r.numData, h.NumRefs()))
	}
	r.numData++
	r.state = inData
	return rec, nil
}

func (r *Reader) skipIndex(h *Header) error {
	size, err := packedrtree.Size(h.NumRefs(), h.NodeSize())
	if err != nil {
		return err
	}
	if _, err = io.CopyN(io.Discard, r.body, size); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return wrapErr("failed to skip %d byte index", err, size)
	}
	r.state = afterIndex
	return nil
}

// DataAll reads every remaining record.
func (r *Reader) DataAll() ([]Record, error) {
	var recs []Record
	for {
		rec, err := r.Data()
		if err == io.EOF {
			return recs, nil
		} else if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}

// Close closes the Reader, releasing any decompression resources, and
// closes the underlying stream if it is an io.Closer.
func (r *Reader) Close() error {
	if r.err == ErrClosed {
		return ErrClosed
	}
	if r.body != nil {
		_ = r.body.Close()
	}
	return r.close(r.r)
}
