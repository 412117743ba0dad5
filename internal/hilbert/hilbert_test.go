// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package hilbert

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXY(t *testing.T) {
	testCases := []struct {
		x, y     uint32
		expected uint32
	}{
		{0, 0, 0},
		{1, 0, 1},
		{1, 1, 2},
		{0, 1, 3},
		{0x8000, 0x8000, 0x80000000},
		{0, 0xFFFF, 0x55555555},
		{0xFFFF, 0xFFFF, 0xAAAAAAAA},
		{0xFFFF, 0, 0xFFFFFFFF},
	}

	for _, testCase := range testCases {
		t.Run(fmt.Sprintf("x=%d,y=%d", testCase.x, testCase.y), func(t *testing.T) {
			assert.Equal(t, testCase.expected, XY(testCase.x, testCase.y))
		})
	}

	t.Run("FirstSquareIsContiguous", func(t *testing.T) {
		seen := make(map[uint32]bool)
		for x := uint32(0); x < 4; x++ {
			for y := uint32(0); y < 4; y++ {
				i := XY(x, y)
				assert.Less(t, i, uint32(16))
				assert.False(t, seen[i], "duplicate index %d", i)
				seen[i] = true
			}
		}
	})
}

func TestGrid_Index(t *testing.T) {
	g := NewGrid(-10, -10, 20, 20)

	testCases := []struct {
		name     string
		x, y     float64
		expected uint32
	}{
		{"LowerLeft", -10, -10, 0},
		{"UpperLeft", -10, 10, 0x55555555},
		{"UpperRight", 10, 10, 0xAAAAAAAA},
		{"LowerRight", 10, -10, 0xFFFFFFFF},
		{"ClampedLow", -100, -100, 0},
		{"ClampedHigh", 100, -100, 0xFFFFFFFF},
		{"NaN", math.NaN(), math.NaN(), 0},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, g.Index(testCase.x, testCase.y))
		})
	}

	t.Run("Degenerate", func(t *testing.T) {
		assert.Equal(t, uint32(0), NewGrid(0, 0, 0, 0).Index(5, 5))
		assert.Equal(t, uint32(0), NewGrid(0, 0, math.Inf(1), 1).Index(5, 0))
	})
}
