// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package orbgeom

import (
	"testing"

	"github.com/gogama/rtree"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
)

func TestBoxOf(t *testing.T) {
	assert.Equal(t, rtree.Box{XMin: 1, YMin: 2, XMax: 3, YMax: 4}, BoxOf(orb.Bound{Min: orb.Point{1, 2}, Max: orb.Point{3, 4}}))
	assert.Equal(t, rtree.EmptyBox, BoxOf(orb.LineString{}.Bound()))
	assert.Equal(t, rtree.EmptyBox, BoxOf(emptyBound))
}

func TestBoundOf(t *testing.T) {
	assert.Equal(t, orb.Bound{Min: orb.Point{1, 2}, Max: orb.Point{3, 4}}, BoundOf(rtree.Box{XMin: 1, YMin: 2, XMax: 3, YMax: 4}))
	assert.True(t, BoundOf(rtree.EmptyBox).IsEmpty())
}

// square is the closed ring around [x,y,x+side,y+side].
func square(x, y, side float64) orb.Ring {
	return orb.Ring{{x, y}, {x + side, y}, {x + side, y + side}, {x, y + side}, {x, y}}
}

func TestShape(t *testing.T) {
	unit := rtree.Box{XMin: 0, YMin: 0, XMax: 1, YMax: 1}
	donut := orb.Polygon{square(-10, -10, 20), square(-5, -5, 10)}

	testCases := []struct {
		name   string
		g      orb.Geometry
		b      rtree.Box
		bounds rtree.Box
		want   bool
	}{
		{
			name:   "Nil",
			b:      unit,
			bounds: rtree.EmptyBox,
		},
		{
			name:   "PointInside",
			g:      orb.Point{0.5, 0.5},
			b:      unit,
			bounds: rtree.Box{XMin: 0.5, YMin: 0.5, XMax: 0.5, YMax: 0.5},
			want:   true,
		},
		{
			name:   "PointOnEdge",
			g:      orb.Point{1, 0.25},
			b:      unit,
			bounds: rtree.Box{XMin: 1, YMin: 0.25, XMax: 1, YMax: 0.25},
			want:   true,
		},
		{
			name:   "PointOutside",
			g:      orb.Point{1.01, 0.25},
			b:      unit,
			bounds: rtree.Box{XMin: 1.01, YMin: 0.25, XMax: 1.01, YMax: 0.25},
		},
		{
			name:   "MultiPoint",
			g:      orb.MultiPoint{{5, 5}, {0, 1}},
			b:      unit,
			bounds: rtree.Box{XMin: 0, YMin: 1, XMax: 5, YMax: 5},
			want:   true,
		},
		{
			name:   "EmptyMultiPoint",
			g:      orb.MultiPoint{},
			b:      unit,
			bounds: rtree.EmptyBox,
		},
		{
			name:   "LineCrossing",
			g:      orb.LineString{{-1, 0.5}, {2, 0.5}},
			b:      unit,
			bounds: rtree.Box{XMin: -1, YMin: 0.5, XMax: 2, YMax: 0.5},
			want:   true,
		},
		{
			name:   "LineDiagonalMiss",
			g:      orb.LineString{{1.5, 0}, {3, 1.5}},
			b:      unit,
			bounds: rtree.Box{XMin: 1.5, YMin: 0, XMax: 3, YMax: 1.5},
		},
		{
			name:   "LineBoundsOverlapButMiss",
			g:      orb.LineString{{-1, 1.5}, {1.5, -1}},
			b:      rtree.Box{XMin: 0.5, YMin: 0.5, XMax: 1, YMax: 1},
			bounds: rtree.Box{XMin: -1, YMin: -1, XMax: 1.5, YMax: 1.5},
		},
		{
			name:   "LineTouchesCorner",
			g:      orb.LineString{{1, 1}, {2, 2}},
			b:      unit,
			bounds: rtree.Box{XMin: 1, YMin: 1, XMax: 2, YMax: 2},
			want:   true,
		},
		{
			name:   "MultiLineString",
			g:      orb.MultiLineString{{{5, 5}, {6, 6}}, {{0.5, -1}, {0.5, 2}}},
			b:      unit,
			bounds: rtree.Box{XMin: 0.5, YMin: -1, XMax: 6, YMax: 6},
			want:   true,
		},
		{
			name:   "RingAroundBox",
			g:      square(-1, -1, 3),
			b:      unit,
			bounds: rtree.Box{XMin: -1, YMin: -1, XMax: 2, YMax: 2},
			want:   true,
		},
		{
			name:   "PolygonHole",
			g:      donut,
			b:      unit,
			bounds: rtree.Box{XMin: -10, YMin: -10, XMax: 10, YMax: 10},
		},
		{
			name:   "PolygonSolidPart",
			g:      donut,
			b:      rtree.Box{XMin: 6, YMin: 6, XMax: 7, YMax: 7},
			bounds: rtree.Box{XMin: -10, YMin: -10, XMax: 10, YMax: 10},
			want:   true,
		},
		{
			name:   "PolygonBoxContainsHole",
			g:      donut,
			b:      rtree.Box{XMin: -6, YMin: -6, XMax: 6, YMax: 6},
			bounds: rtree.Box{XMin: -10, YMin: -10, XMax: 10, YMax: 10},
			want:   true,
		},
		{
			name:   "PolygonInsideBox",
			g:      orb.Polygon{square(0.25, 0.25, 0.5)},
			b:      unit,
			bounds: rtree.Box{XMin: 0.25, YMin: 0.25, XMax: 0.75, YMax: 0.75},
			want:   true,
		},
		{
			name:   "Triangle",
			g:      orb.Polygon{{{2, 0}, {4, 0}, {2, 2}, {2, 0}}},
			b:      rtree.Box{XMin: 3.5, YMin: 1.5, XMax: 4, YMax: 2},
			bounds: rtree.Box{XMin: 2, YMin: 0, XMax: 4, YMax: 2},
		},
		{
			name:   "MultiPolygon",
			g:      orb.MultiPolygon{donut, {square(0.25, 0.25, 0.5)}},
			b:      unit,
			bounds: rtree.Box{XMin: -10, YMin: -10, XMax: 10, YMax: 10},
			want:   true,
		},
		{
			name:   "Collection",
			g:      orb.Collection{orb.Point{9, 9}, orb.LineString{{0, 0}, {0, 0.5}}},
			b:      unit,
			bounds: rtree.Box{XMin: 0, YMin: 0, XMax: 9, YMax: 9},
			want:   true,
		},
		{
			name:   "Bound",
			g:      orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{3, 3}},
			b:      unit,
			bounds: rtree.Box{XMin: 1, YMin: 1, XMax: 3, YMax: 3},
			want:   true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			s := Shape{testCase.g}

			assert.Equal(t, testCase.bounds, s.Bounds())
			assert.Equal(t, testCase.want, s.IntersectsBox(testCase.b))
			assert.False(t, s.IntersectsBox(rtree.EmptyBox))
		})
	}
}

func TestFeature(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	a := geojson.NewFeature(orb.Point{1, 2})
	a.ID = 7
	b := geojson.NewFeature(orb.LineString{{0, 0}, {4, 4}})
	b.Properties["name"] = "diagonal"
	c := geojson.NewFeature(nil)
	fc.Append(a)
	fc.Append(b)
	fc.Append(c)

	fs := Features(fc)

	assert.Equal(t, []Feature{{a}, {b}, {c}}, fs)
	assert.Nil(t, Features(nil))
	assert.Equal(t, "7", fs[0].Key())
	assert.Equal(t, "diagonal", fs[1].Key())
	assert.Equal(t, "", fs[2].Key())
	assert.Equal(t, rtree.Box{XMin: 1, YMin: 2, XMax: 1, YMax: 2}, fs[0].Bounds())
	assert.Equal(t, rtree.EmptyBox, fs[2].Bounds())
	assert.True(t, fs[1].IntersectsBox(rtree.Box{XMin: 3, YMin: 3, XMax: 5, YMax: 5}))
	assert.False(t, fs[1].IntersectsBox(rtree.Box{XMin: 3, YMin: 0, XMax: 4, YMax: 1}))
	assert.False(t, fs[2].IntersectsBox(rtree.Box{XMin: 3, YMin: 0, XMax: 4, YMax: 1}))

	tree := rtree.New[Feature]()
	tree.InsertSlice(fs)
	var keys []string
	for f := range tree.QueryGeometry(Shape{orb.LineString{{0, 2}, {2, 2}}}) {
		keys = append(keys, f.Key())
	}
	assert.ElementsMatch(t, []string{"7", "diagonal"}, keys)
	assert.True(t, tree.Remove(fs[2]))
	assert.Equal(t, 2, tree.Len())
}
