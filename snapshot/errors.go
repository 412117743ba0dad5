// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"errors"
	"fmt"
)

var (
	// ErrNoIndex is returned when attempting to read or write the index
	// of an empty snapshot, which has none.
	ErrNoIndex = textErr("no index")
	// ErrClosed is returned when attempting to perform an operation on
	// a Reader or Writer which has been closed.
	ErrClosed = textErr("closed")
	// ErrFormat is wrapped by every error reporting input that is not a
	// well-formed snapshot stream.
	ErrFormat = textErr("bad format")

	errUnexpectedState     = textErr("unexpected state")
	errHeaderNotCalled     = textErr("must call Header()")
	errHeaderAlreadyCalled = textErr("Header() has already been called")
	errIndexNotWritten     = textErr("header requires index but no index written")
	errWritePastIndex      = textErr("write position is past index")
	errReadPastIndex       = textErr("read position is past index")
)

const packageName = "snapshot: "

func textErr(text string) error {
	return errors.New(packageName + text)
}

func fmtErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format, a...)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}

// formatErr returns an error wrapping ErrFormat.
func formatErr(format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrFormat}, a...)...)
}

func textPanic(text string) {
	panic(packageName + text)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
