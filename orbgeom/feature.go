// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orbgeom

import (
	"fmt"

	"github.com/gogama/rtree"
	"github.com/paulmach/orb/geojson"
)

// Feature wraps a GeoJSON feature as an rtree.Item. Two Features are
// the same item if they wrap the same *geojson.Feature.
type Feature struct {
	*geojson.Feature
}

// Features wraps every feature in a collection. Returns nil if fc is
// nil.
func Features(fc *geojson.FeatureCollection) []Feature {
	if fc == nil {
		return nil
	}
	fs := make([]Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f != nil {
			fs = append(fs, Feature{f})
		}
	}
	return fs
}

// Bounds returns the bounding box of the feature's geometry, or
// rtree.EmptyBox if it has none.
func (f Feature) Bounds() rtree.Box {
	if f.Feature == nil {
		return rtree.EmptyBox
	}
	return Shape{f.Geometry}.Bounds()
}

// IntersectsBox reports whether the feature's geometry meets b.
func (f Feature) IntersectsBox(b rtree.Box) bool {
	if f.Feature == nil {
		return false
	}
	return Shape{f.Geometry}.IntersectsBox(b)
}

// Key returns a string identifying the feature: its ID if it has one,
// otherwise its "name" property, otherwise the empty string.
func (f Feature) Key() string {
	if f.Feature == nil {
		return ""
	}
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	if name, ok := f.Properties["name"].(string); ok {
		return name
	}
	return ""
}
