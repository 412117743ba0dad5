// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package packedrtree

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt is wrapped by the error Unmarshal returns when the
	// node array it reads is not laid out the way a packed tree with
	// the given reference count and node size must be.
	ErrCorrupt = textErr("corrupt index")
	// ErrTooLarge is wrapped by errors reporting a tree whose node
	// count or byte size cannot be represented.
	ErrTooLarge = textErr("index too large")
)

const packageName = "packedrtree: "

func textErr(text string) error {
	return errors.New(packageName + text)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}

// sentinelErr returns an error wrapping sentinel whose message is the
// sentinel's followed by the formatted detail.
func sentinelErr(sentinel error, format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{sentinel}, a...)...)
}

func textPanic(text string) {
	panic(packageName + text)
}
