// SPDX-License-Identifier: MIT

package frame

import (
	"errors"
	"fmt"
)

// ErrEmptyStack indicates an empty frame list was presented to Load or
// to a consistency check.
var ErrEmptyStack = errors.New("frame: image list is empty")

// ShapeMismatchError indicates a frame's dimensions differ from the first
// frame in the stack.
type ShapeMismatchError struct {
	Index        int
	GotH, GotW   int
	WantH, WantW int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("frame: image %d shape (%d, %d) incompatible with (%d, %d)",
		e.Index, e.GotH, e.GotW, e.WantH, e.WantW)
}

// UnitMismatchError indicates a frame's unit differs from the first frame's.
type UnitMismatchError struct {
	Index     int
	Want, Got string
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("frame: image %d unit incompatible: got %q, want %q", e.Index, e.Got, e.Want)
}
