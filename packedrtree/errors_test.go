// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	t.Run("textErr", func(t *testing.T) {
		assert.EqualError(t, textErr("foo"), "packedrtree: foo")
	})

	t.Run("wrapErr", func(t *testing.T) {
		cause := errors.New("the root cause")
		err := wrapErr("failed to read %d nodes", cause, 3)

		assert.ErrorIs(t, err, cause)
		assert.EqualError(t, err, "packedrtree: failed to read 3 nodes: the root cause")
	})

	t.Run("sentinelErr", func(t *testing.T) {
		err := sentinelErr(ErrCorrupt, "node %d is %s", 7, "bad")

		assert.ErrorIs(t, err, ErrCorrupt)
		assert.NotErrorIs(t, err, ErrTooLarge)
		assert.EqualError(t, err, "packedrtree: corrupt index: node 7 is bad")
	})

	t.Run("textPanic", func(t *testing.T) {
		assert.PanicsWithValue(t, "packedrtree: foo", func() {
			textPanic("foo")
		})
	})
}
