// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orbgeom

import (
	"github.com/gogama/rtree"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Shape wraps an orb.Geometry as an rtree.Geometry. A Shape with a nil
// Geometry has empty bounds and intersects nothing.
type Shape struct {
	orb.Geometry
}

// Bounds returns the bounding box of the geometry.
func (s Shape) Bounds() rtree.Box {
	if s.Geometry == nil {
		return rtree.EmptyBox
	}
	return BoxOf(s.Geometry.Bound())
}

// IntersectsBox reports whether the geometry and b share at least one
// point. Both are treated as closed sets, so touching counts.
func (s Shape) IntersectsBox(b rtree.Box) bool {
	if s.Geometry == nil || b.IsEmpty() {
		return false
	}
	return intersects(s.Geometry, &b)
}

func intersects(g orb.Geometry, b *rtree.Box) bool {
	switch g := g.(type) {
	case orb.Point:
		return containsPoint(b, g)
	case orb.MultiPoint:
		for _, p := range g {
			if containsPoint(b, p) {
				return true
			}
		}
		return false
	case orb.LineString:
		return pathIntersects(g, b)
	case orb.MultiLineString:
		for _, ls := range g {
			if pathIntersects(ls, b) {
				return true
			}
		}
		return false
	case orb.Ring:
		return polygonIntersects(orb.Polygon{g}, b)
	case orb.Polygon:
		return polygonIntersects(g, b)
	case orb.MultiPolygon:
		for _, p := range g {
			if polygonIntersects(p, b) {
				return true
			}
		}
		return false
	case orb.Collection:
		for _, h := range g {
			if h != nil && intersects(h, b) {
				return true
			}
		}
		return false
	case orb.Bound:
		return BoxOf(g).Intersects(*b)
	default:
		return BoxOf(g.Bound()).Intersects(*b)
	}
}

func containsPoint(b *rtree.Box, p orb.Point) bool {
	return b.XMin <= p[0] && p[0] <= b.XMax && b.YMin <= p[1] && p[1] <= b.YMax
}

func pathIntersects(ps []orb.Point, b *rtree.Box) bool {
	switch len(ps) {
	case 0:
		return false
	case 1:
		return containsPoint(b, ps[0])
	}
	for i := 1; i < len(ps); i++ {
		if segmentIntersects(ps[i-1], ps[i], b) {
			return true
		}
	}
	return false
}

// polygonIntersects reports whether b meets the polygon's area. If no
// ring edge meets b, the box lies wholly inside or wholly outside the
// area, so testing one corner decides.
func polygonIntersects(p orb.Polygon, b *rtree.Box) bool {
	if len(p) == 0 || len(p[0]) == 0 {
		return false
	}
	for _, r := range p {
		if pathIntersects(r, b) || len(r) > 0 && segmentIntersects(r[len(r)-1], r[0], b) {
			return true
		}
	}
	return planar.PolygonContains(p, orb.Point{b.XMin, b.YMin})
}

// segmentIntersects reports whether the closed segment from a to c
// meets the closed box b, using Liang-Barsky clipping.
func segmentIntersects(a, c orb.Point, b *rtree.Box) bool {
	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			} else if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			} else if r < t1 {
				t1 = r
			}
		}
		return true
	}
	dx, dy := c[0]-a[0], c[1]-a[1]
	return clip(-dx, a[0]-b.XMin) &&
		clip(dx, b.XMax-a[0]) &&
		clip(-dy, a[1]-b.YMin) &&
		clip(dy, b.YMax-a[1])
}
