// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"math"
	"strconv"
	"strings"
)

// Box is an axis-aligned bounding rectangle, also called an extent.
//
// A Box is a closed rectangle: its edges belong to it, so two boxes
// that merely touch intersect. The zero Box is the degenerate box
// containing only the origin. Use EmptyBox, not the zero Box, for a
// box that contains nothing.
type Box struct {
	XMin float64
	YMin float64
	XMax float64
	YMax float64
}

// EmptyBox is the empty extent. It is the identity element for Union
// and Expand, and it intersects and contains nothing, not even itself.
var EmptyBox = Box{
	XMin: math.Inf(1),
	YMin: math.Inf(1),
	XMax: math.Inf(-1),
	YMax: math.Inf(-1),
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.XMin > b.XMax || b.YMin > b.YMax
}

// Width returns the extent of the box along the X axis.
func (b Box) Width() float64 {
	return b.XMax - b.XMin
}

// Height returns the extent of the box along the Y axis.
func (b Box) Height() float64 {
	return b.YMax - b.YMin
}

func (b Box) midX() float64 {
	return (b.XMin + b.XMax) / 2
}

func (b Box) midY() float64 {
	return (b.YMin + b.YMax) / 2
}

// Area returns the area of the box. The area of an empty box is zero.
func (b Box) Area() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Width() * b.Height()
}

// Perimeter returns the perimeter of the box. The perimeter of an
// empty box is zero.
func (b Box) Perimeter() float64 {
	if b.IsEmpty() {
		return 0
	}
	return 2 * (b.Width() + b.Height())
}

// Expand grows b, if necessary, so that it contains c.
func (b *Box) Expand(c *Box) {
	if c.XMin < b.XMin {
		b.XMin = c.XMin
	}
	if c.YMin < b.YMin {
		b.YMin = c.YMin
	}
	if c.XMax > b.XMax {
		b.XMax = c.XMax
	}
	if c.YMax > b.YMax {
		b.YMax = c.YMax
	}
}

// ExpandXY grows b, if necessary, so that it contains the point (x, y).
func (b *Box) ExpandXY(x, y float64) {
	if x < b.XMin {
		b.XMin = x
	}
	if y < b.YMin {
		b.YMin = y
	}
	if x > b.XMax {
		b.XMax = x
	}
	if y > b.YMax {
		b.YMax = y
	}
}

// Union returns the smallest box containing both b and c.
func (b Box) Union(c Box) Box {
	b.Expand(&c)
	return b
}

// Intersects reports whether b and c share at least one point.
func (b Box) Intersects(c Box) bool {
	return b.XMin <= c.XMax && c.XMin <= b.XMax &&
		b.YMin <= c.YMax && c.YMin <= b.YMax
}

// Bounds returns b itself, so a Box can be stored in a Tree or used as
// a query Geometry.
func (b Box) Bounds() Box {
	return b
}

// IntersectsBox is Intersects. With Bounds it makes every Box a
// Geometry, and QueryGeometry with a Box behaves exactly like Query.
func (b Box) IntersectsBox(c Box) bool {
	return b.Intersects(c)
}

// Contains reports whether every point of c is also in b. An empty box
// neither contains nor is contained by any box.
func (b Box) Contains(c Box) bool {
	if b.IsEmpty() || c.IsEmpty() {
		return false
	}
	return b.XMin <= c.XMin && c.XMax <= b.XMax &&
		b.YMin <= c.YMin && c.YMax <= b.YMax
}

// Enlargement returns how much area b would have to gain in order to
// also contain c.
func (b Box) Enlargement(c Box) float64 {
	return b.Union(c).Area() - b.Area()
}

// String returns the box formatted as "[XMin,YMin,XMax,YMax]".
func (b Box) String() string {
	var s strings.Builder
	s.WriteByte('[')
	s.WriteString(formatCoord(b.XMin))
	s.WriteByte(',')
	s.WriteString(formatCoord(b.YMin))
	s.WriteByte(',')
	s.WriteString(formatCoord(b.XMax))
	s.WriteByte(',')
	s.WriteString(formatCoord(b.YMax))
	s.WriteByte(']')
	return s.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 32)
}
