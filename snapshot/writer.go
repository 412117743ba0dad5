// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"io"

	"github.com/gogama/rtree/packedrtree"
)

// Writer writes a snapshot stream section by section. Call Header,
// then Index unless the header declares no refs, then Data once per
// ref, and finally Close.
//
// Calls made out of order return an error without changing the state
// of the Writer. Any error writing to the underlying stream is sticky:
// every later call returns it.
type Writer struct {
	stateful
	w       io.Writer
	header  *Header
	body    io.WriteCloser
	records recordWriter
	numData int
}

// NewWriter creates a Writer that writes a snapshot stream to w.
// Panics if w is nil.
//
// If w is an io.Closer, closing the Writer also closes w.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		textPanic("nil writer")
	}
	return &Writer{
		stateful: stateful{state: beforeHeader},
		w:        w,
	}
}

// Header writes the magic number and the header. Panics if h is nil.
func (w *Writer) Header(h *Header) error {
	if h == nil {
		textPanic("nil header")
	}
	if err := w.toState(beforeHeader, afterHeader); err == errUnexpectedState {
		return errHeaderAlreadyCalled
	} else if err != nil {
		return err
	}
	if _, err := w.w.Write(magic[:]); err != nil {
		return w.toErr(wrapErr("failed to write magic number", err))
	}
	if _, err := writeSizePrefixedTable(w.w, h.buf); err != nil {
		return w.toErr(wrapErr("failed to write header", err))
	}
	body, err := compressor(w.w, h.Compression())
	if err != nil {
		return w.toErr(err)
	}
	w.header = h
	w.body = body
	w.records.w = body
	if h.NumRefs() == 0 {
		w.state = afterIndex
	}
	return nil
}

// Index writes the index. Panics if index is nil. The number of refs
// and the node size of the index must match the header.
func (w *Writer) Index(index *packedrtree.PackedRTree) error {
	if index == nil {
		textPanic("nil index")
	}
	if w.err != nil {
		return w.err
	}
	switch w.state {
	case beforeHeader:
		return errHeaderNotCalled
	case afterHeader:
	default:
		if w.header.NumRefs() == 0 {
			return ErrNoIndex
		}
		return errWritePastIndex
	}
	if index.NumRefs() != w.header.NumRefs() || index.NodeSize() != w.header.NodeSize() {
		return fmtErr("index has %d refs with node size %d but header requires %d refs with node size %d",
			index.NumRefs(), index.NodeSize(), w.header.NumRefs(), w.header.NodeSize())
	}
	if _, err := index.Marshal(w.body); err != nil {
		return w.toErr(wrapErr("failed to write index", err))
	}
	w.state = afterIndex
	return nil
}

// Data writes the next record. Records must be written in ref offset
// order, and no more records may be written than the header declares
// refs.
func (w *Writer) Data(rec Record) error {
	if w.err != nil {
		return w.err
	}
	switch w.state {
	case beforeHeader:
		return errHeaderNotCalled
	case afterHeader:
		return errIndexNotWritten
	}
	if w.numData == w.header.NumRefs() {
		return fmtErr("header allows only %d records", w.numData)
	}
	if _, err := w.records.write(rec); err != nil {
		return w.toErr(wrapErr("failed to write record %d", err, w.numData))
	}
	w.numData++
	w.state = inData
	return nil
}

// Close flushes any compressed output and closes the underlying stream
// if it is an io.Closer. Returns the sticky error if there is one, or
// an error if the stream is incomplete.
func (w *Writer) Close() error {
	if w.err == ErrClosed {
		return ErrClosed
	}
	err := w.err
	if err == nil {
		switch {
		case w.state == beforeHeader:
			err = errHeaderNotCalled
		case w.state == afterHeader:
			err = errIndexNotWritten
		case w.numData < w.header.NumRefs():
			err = fmtErr("wrote %d of %d records", w.numData, w.header.NumRefs())
		}
	}
	if w.body != nil {
		if cerr := w.body.Close(); cerr != nil && err == nil {
			err = wrapErr("failed to flush body", cerr)
		}
	}
	if cerr := w.close(w.w); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
