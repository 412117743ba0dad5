// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package hilbert computes positions along a Hilbert space-filling
// curve, used to order boxes so that boxes near each other in the plane
// end up near each other in a packed tree.
package hilbert

import "math"

const (
	// Order is the order of the Hilbert curve.
	Order = 16
	// max is the maximum X- or Y-coordinate accepted by XY.
	//
	// In a Hilbert curve of order N, X- and Y- coordinates range from
	// zero to 2^N-1, so in a Hilbert curve of order 1, the X- and Y-
	// coordinates range from 0 to 1, and so on.
	max = (1 << Order) - 1
)

// Grid maps points within an extent onto the Hilbert curve's integer
// coordinate grid.
type Grid struct {
	x, y, w, h float64
}

// NewGrid returns a Grid covering the rectangle whose lower-left corner
// is (x, y) and whose width and height are w and h.
func NewGrid(x, y, w, h float64) Grid {
	return Grid{x: x, y: y, w: w, h: h}
}

// Index returns the Hilbert curve index of the point (px, py). Points
// outside the grid are clamped onto its edge.
func (g Grid) Index(px, py float64) uint32 {
	return XY(scale(px, g.x, g.w), scale(py, g.y, g.h))
}

func scale(p, origin, extent float64) uint32 {
	if extent <= 0 || math.IsInf(extent, 0) || math.IsNaN(extent) {
		return 0
	}
	r := math.Floor(max * (p - origin) / extent)
	if r <= 0 || math.IsNaN(r) {
		return 0
	} else if r >= max {
		return max
	}
	return uint32(r)
}

// XY calculates the Hilbert curve index of a given two-dimensional
// grid coordinate.
//
// NOTES:
//   - Based on https://github.com/rawrunprotected/hilbert_curves, which
//     is in the public domain.
func XY(x, y uint32) uint32 {
	a := x ^ y
	b := 0xFFFF ^ a
	c := 0xFFFF ^ (x | y)
	d := x & (y ^ 0xFFFF)

	A := a | (b >> 1)
	B := (a >> 1) ^ a
	C := ((c >> 1) ^ (b & (d >> 1))) ^ c
	D := ((a & (c >> 1)) ^ (d >> 1)) ^ d

	a = A
	b = B
	c = C
	d = D
	A = (a & (a >> 2)) ^ (b & (b >> 2))
	B = (a & (b >> 2)) ^ (b & ((a ^ b) >> 2))
	C ^= (a & (c >> 2)) ^ (b & (d >> 2))
	D ^= (b & (c >> 2)) ^ ((a ^ b) & (d >> 2))

	a = A
	b = B
	c = C
	d = D
	A = (a & (a >> 4)) ^ (b & (b >> 4))
	B = (a & (b >> 4)) ^ (b & ((a ^ b) >> 4))
	C ^= (a & (c >> 4)) ^ (b & (d >> 4))
	D ^= (b & (c >> 4)) ^ ((a ^ b) & (d >> 4))

	a = A
	b = B
	c = C
	d = D
	C ^= (a & (c >> 8)) ^ (b & (d >> 8))
	D ^= (b & (c >> 8)) ^ ((a ^ b) & (d >> 8))

	a = C ^ (C >> 1)
	b = D ^ (D >> 1)

	i0 := x ^ y
	i1 := b | (0xFFFF ^ (i0 | a))

	i0 = (i0 | (i0 << 8)) & 0x00FF00FF
	i0 = (i0 | (i0 << 4)) & 0x0F0F0F0F
	i0 = (i0 | (i0 << 2)) & 0x33333333
	i0 = (i0 | (i0 << 1)) & 0x55555555

	i1 = (i1 | (i1 << 8)) & 0x00FF00FF
	i1 = (i1 | (i1 << 4)) & 0x0F0F0F0F
	i1 = (i1 | (i1 << 2)) & 0x33333333
	i1 = (i1 | (i1 << 1)) & 0x55555555

	return (i1 << 1) | i0
}
