// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot

import "io"

// stateful tracks the position of a Reader or Writer within the
// sections of a snapshot stream, together with any sticky error.
type stateful struct {
	state state
	err   error
}

type state int

const (
	uninitialized state = iota
	beforeHeader
	afterHeader
	afterIndex
	inData
	eof
)

func (s state) String() string {
	switch s {
	case beforeHeader:
		return "beforeHeader"
	case afterHeader:
		return "afterHeader"
	case afterIndex:
		return "afterIndex"
	case inData:
		return "inData"
	case eof:
		return "eof"
	default:
		return "uninitialized"
	}
}

func (s *stateful) close(a interface{}) error {
	if s.err == ErrClosed {
		return ErrClosed
	}

	s.err = ErrClosed

	if c, ok := a.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}

	return nil
}

func (s *stateful) sanityCheckState() {
	if s.state == uninitialized || s.state > eof {
		fmtPanic("logic error: invalid state %s (%d)", s.state, int(s.state))
	}
}

// toState moves from the expected state to a new state. It returns the
// sticky error, if any, or errUnexpectedState if the current state is
// not the expected one.
func (s *stateful) toState(expected, to state) error {
	if s.err != nil {
		return s.err
	}

	if s.state == expected {
		s.state = to
		return nil
	}

	s.sanityCheckState()

	return errUnexpectedState
}

// toErr makes err sticky, so every later operation returns it.
func (s *stateful) toErr(err error) error {
	if s.err != nil {
		textPanic("logic error: already in error state")
	}

	s.err = err
	return err
}
