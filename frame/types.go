// SPDX-License-Identifier: MIT

package frame

// Frame is the combiner's input/output atom: a 2-D image with optional
// pixel-wise 1-sigma uncertainty, a mandatory boolean mask (true = rejected
// or invalid), an opaque unit identifier, and ordered metadata.
//
// A Frame is immutable from the combiner's point of view: nothing in this
// module mutates Data, Uncertainty, or Mask of a caller-supplied Frame.
type Frame struct {
	Data        Backing
	Uncertainty Backing // nil means "unknown"; disables uncertainty propagation for the whole stack
	Mask        [][]bool
	Unit        string
	Meta        *Meta
	Height      int
	Width       int
}

// HasUncertainty reports whether this frame carries an uncertainty array.
func (f *Frame) HasUncertainty() bool {
	return f.Uncertainty != nil
}

// MaskedSlab is the working-memory unit for one row-range of the stack:
// K frames by W' columns, for data, mask, and (optionally) uncertainty.
// Built by the chunk planner, consumed by the rejection and reduction
// stages, then dropped.
type MaskedSlab struct {
	Data        [][]float64 // (K, W')
	Mask        [][]bool    // (K, W')
	Uncertainty [][]float64 // (K, W') or nil when uncertainty propagation is disabled
}

// NumFrames returns K, the number of frames in the slab.
func (s *MaskedSlab) NumFrames() int {
	return len(s.Data)
}

// Width returns W', the number of columns in the slab.
func (s *MaskedSlab) Width() int {
	if len(s.Data) == 0 {
		return 0
	}
	return len(s.Data[0])
}
