// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "github.com/npillmayer/schuko/tracing"

// TraceKey is the tracing key under which the tree reports structural
// changes such as splits, root growth and condensation.
const TraceKey = "rtree"

func tracer() tracing.Trace {
	return tracing.Select(TraceKey)
}
