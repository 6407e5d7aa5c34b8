package imcombine

import (
	"math"

	"github.com/astropop-go/imcombine/frame"
)

// buildSlab reads rows [rowLo, rowHi) from every frame and flattens them
// into a MaskedSlab: one row of length (rowHi-rowLo)*width per frame. The
// initial mask is the input mask OR'd with non-finite(data), matching the
// ingest rule applied before any configured clip runs.
func buildSlab(frames []*frame.Frame, rowLo, rowHi int, withUncertainty bool) (*frame.MaskedSlab, error) {
	k := len(frames)
	rows := rowHi - rowLo

	slab := &frame.MaskedSlab{
		Data: make([][]float64, k),
		Mask: make([][]bool, k),
	}
	if withUncertainty {
		slab.Uncertainty = make([][]float64, k)
	}

	for i, fr := range frames {
		dataRows, err := fr.Data.Rows(rowLo, rowHi)
		if err != nil {
			return nil, err
		}

		flatData := make([]float64, 0, rows*fr.Width)
		flatMask := make([]bool, 0, rows*fr.Width)
		for r := 0; r < rows; r++ {
			flatData = append(flatData, dataRows[r]...)
			flatMask = append(flatMask, fr.Mask[rowLo+r]...)
		}
		for p, v := range flatData {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				flatMask[p] = true
			}
		}
		slab.Data[i] = flatData
		slab.Mask[i] = flatMask

		if withUncertainty {
			uRows, uerr := fr.Uncertainty.Rows(rowLo, rowHi)
			if uerr != nil {
				return nil, uerr
			}
			flatU := make([]float64, 0, rows*fr.Width)
			for r := 0; r < rows; r++ {
				flatU = append(flatU, uRows[r]...)
			}
			slab.Uncertainty[i] = flatU
		}
	}
	return slab, nil
}
