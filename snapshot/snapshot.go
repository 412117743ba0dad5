// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"io"

	"github.com/gogama/rtree"
	"github.com/gogama/rtree/packedrtree"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select(rtree.TraceKey)
}

// Write writes a complete snapshot stream for s to w. The key function
// gives the Key of the Record written for each item. The stream body is
// compressed with c.
//
// Write does not close w.
func Write[T rtree.Item](w io.Writer, name string, s *packedrtree.Snapshot[T], key func(T) string, c Compression) error {
	if s == nil {
		textPanic("nil snapshot")
	} else if key == nil {
		textPanic("nil key function")
	}
	f := HeaderFields{
		Name:        name,
		Envelope:    s.Bounds(),
		NumRefs:     uint64(s.Len()),
		Compression: c,
	}
	index := s.Index()
	if index != nil {
		f.NodeSize = index.NodeSize()
	}
	h, err := NewHeader(f)
	if err != nil {
		return err
	}

	sw := NewWriter(struct{ io.Writer }{w})
	if err = sw.Header(h); err != nil {
		_ = sw.Close()
		return err
	}
	if index != nil {
		if err = sw.Index(index); err != nil {
			_ = sw.Close()
			return err
		}
	}
	for item := range s.All() {
		if err = sw.Data(Record{Key: key(item), Box: item.Bounds()}); err != nil {
			_ = sw.Close()
			return err
		}
	}
	if err = sw.Close(); err != nil {
		return err
	}
	tracer().Debugf("snapshot: wrote %q with %d records, compression %s", name, s.Len(), c)
	return nil
}

// Read reads a complete snapshot stream from r, returning its header,
// its index, and its records in ref offset order. The index is nil if
// the snapshot is empty.
//
// Read does not close r.
func Read(r io.Reader) (*Header, *packedrtree.PackedRTree, []Record, error) {
	sr := NewReader(struct{ io.Reader }{r})
	defer func() { _ = sr.Close() }()
	h, err := sr.Header()
	if err != nil {
		return nil, nil, nil, err
	}
	index, err := sr.Index()
	if err != nil && err != ErrNoIndex {
		return nil, nil, nil, err
	}
	recs, err := sr.DataAll()
	if err != nil {
		return nil, nil, nil, err
	}
	tracer().Debugf("snapshot: read %q with %d records", h.Name(), len(recs))
	return h, index, recs, nil
}
