// SPDX-License-Identifier: MIT

package frame

// FrameInput is the tagged variant accepted by Load: callers may supply an
// already-built Frame, a bare 2-D array, or a FITS-like (data, header)
// pair. normalize is the single exhaustive switch over these three cases,
// replacing runtime type dispatch with explicit, checkable alternatives.
type FrameInput interface {
	isFrameInput()
}

// Array2DInput wraps a bare row-major 2-D array with no metadata, no
// uncertainty, and an all-false mask.
type Array2DInput struct {
	Data [][]float64
	Unit string
}

func (Array2DInput) isFrameInput() {}

// NativeFrameInput passes an already-built *Frame through unchanged.
type NativeFrameInput struct {
	Frame *Frame
}

func (NativeFrameInput) isFrameInput() {}

// FitsLikeInput resembles a FITS HDU: pixel data plus a loosely typed
// header map. Header entries are copied into the resulting Frame's Meta in
// map iteration order (callers needing deterministic key order should
// prefer NativeFrameInput with a pre-built *Meta).
type FitsLikeInput struct {
	Data   [][]float64
	Unit   string
	Header map[string]any
}

func (FitsLikeInput) isFrameInput() {}

// normalize converts one FrameInput into a *Frame. It reports whether the
// input was already native, so Load can emit its one-time warning only
// when at least one input required adaptation.
func normalize(in FrameInput) (f *Frame, wasNative bool) {
	switch v := in.(type) {
	case NativeFrameInput:
		return v.Frame, true

	case Array2DInput:
		return arrayToFrame(v.Data, v.Unit, nil), false

	case FitsLikeInput:
		f := arrayToFrame(v.Data, v.Unit, nil)
		for k, val := range v.Header {
			f.Meta.Set(k, val)
		}
		return f, false

	default:
		// Exhaustiveness is enforced by the unexported isFrameInput marker;
		// reaching here means a caller implemented the interface directly.
		panic("frame: unrecognized FrameInput implementation")
	}
}

func arrayToFrame(data [][]float64, unit string, backing Backing) *Frame {
	rows := len(data)
	cols := 0
	if rows > 0 {
		cols = len(data[0])
	}
	mask := make([][]bool, rows)
	for i := range mask {
		mask[i] = make([]bool, cols)
	}
	if backing == nil {
		backing = NewInMemory(data)
	}
	return &Frame{
		Data:   backing,
		Mask:   mask,
		Unit:   unit,
		Meta:   NewMeta(),
		Height: rows,
		Width:  cols,
	}
}
