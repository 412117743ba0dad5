// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every error returned from Tree.Check.
var ErrInvariant = textErr("invariant violated")

const packageName = "rtree: "

func textErr(text string) error {
	return errors.New(packageName + text)
}

func invariantErr(format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvariant}, a...)...)
}

func textPanic(text string) {
	panic(packageName + text)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
