// SPDX-License-Identifier: MIT
//
// Package frame defines the combiner's input/output atom (Frame) and the
// working-memory unit consumed by the reduction pipeline (MaskedSlab).
//
// Frame normalizes three kinds of caller input into one shape:
//
//	Array2DInput     - a bare [][]float64, no metadata.
//	NativeFrameInput - an already-built *Frame, passed through unchanged.
//	FitsLikeInput    - a (data, header) pair resembling a FITS HDU.
//
// normalize is the single exhaustive switch over this tagged variant;
// non-native inputs are wrapped with a default all-false mask, absent
// uncertainty, and empty metadata.
//
// A Frame's Data and Uncertainty are held behind a Backing, which is either
// InMemory (a plain [][]float64) or a memory-mapped temporary provided by
// imcombine/internal/diskcache when the combiner's UseDiskCache option is
// set. The combiner only ever reads row ranges through this interface.
//
// Errors:
//
//	ErrEmptyStack      - Load was given zero inputs.
//	ShapeMismatchError - a frame's (rows, cols) differs from the first.
//	UnitMismatchError  - a frame's unit differs from the first.
//
// Complexity: normalize is O(rows*cols) only for Array2DInput/FitsLikeInput
// (building the default mask); NativeFrameInput is O(1).
package frame
