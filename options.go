// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

const (
	// DefaultMaxFanout is the maximum number of entries per node used
	// when no WithMaxFanout option is given.
	DefaultMaxFanout = 16
)

type options struct {
	maxFanout int
	minFanout int
}

// Option configures a Tree at construction time. The fanout of a Tree
// cannot change after it is created.
type Option func(*options)

// WithMaxFanout sets the maximum number of entries a node may hold
// before it is split. The value must be at least 2.
func WithMaxFanout(n int) Option {
	return func(o *options) {
		o.maxFanout = n
	}
}

// WithMinFanout sets the minimum number of entries a non-root node must
// hold. A node that falls below this bound during removal is dissolved
// and its items are reinserted. The value must be at least 1 and at
// most (maxFanout+1)/2, so that an overflowing node can always be split
// into two valid halves.
//
// If not given, or given as zero, the minimum fanout is half the
// maximum fanout.
func WithMinFanout(n int) Option {
	return func(o *options) {
		o.minFanout = n
	}
}

func buildOptions(opts []Option) options {
	o := options{maxFanout: DefaultMaxFanout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxFanout < 2 {
		fmtPanic("max fanout must be at least 2 (got %d)", o.maxFanout)
	}
	if o.minFanout == 0 {
		o.minFanout = o.maxFanout / 2
	}
	if o.minFanout < 1 {
		fmtPanic("min fanout must be at least 1 (got %d)", o.minFanout)
	} else if o.minFanout > (o.maxFanout+1)/2 {
		fmtPanic("min fanout %d too large for max fanout %d", o.minFanout, o.maxFanout)
	}
	return o
}
