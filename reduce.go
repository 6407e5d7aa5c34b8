package imcombine

import (
	"math"

	"github.com/astropop-go/imcombine/estimator"
	"github.com/astropop-go/imcombine/frame"
)

// reduceSlab computes the combined value (and, when withUncertainty,
// propagated uncertainty) for every pixel in slab, writing into outData/
// outMask/outUncertainty at the rows this slab covers. A pixel with zero
// unmasked contributors is masked in the output and left at its zero value.
func reduceSlab(slab *frame.MaskedSlab, method Method, withUncertainty bool, outData [][]float64, outMask [][]bool, outUncertainty [][]float64, rowLo, width int) {
	k := slab.NumFrames()
	total := slab.Width()

	vals := make([]float64, 0, k)
	sigmas := make([]float64, 0, k)

	for p := 0; p < total; p++ {
		vals = vals[:0]
		sigmas = sigmas[:0]
		for i := 0; i < k; i++ {
			if slab.Mask[i][p] {
				continue
			}
			vals = append(vals, slab.Data[i][p])
			if withUncertainty {
				sigmas = append(sigmas, slab.Uncertainty[i][p])
			}
		}

		r := p / width
		c := p % width
		row := rowLo + r

		if len(vals) == 0 {
			outMask[row][c] = true
			continue
		}

		n := float64(len(vals))
		switch method {
		case MethodSum:
			outData[row][c] = sumFloat(vals)
			if withUncertainty {
				outUncertainty[row][c] = math.Sqrt(sumSquares(sigmas))
			}
		case MethodMean:
			outData[row][c] = sumFloat(vals) / n
			if withUncertainty {
				outUncertainty[row][c] = math.Sqrt(sumSquares(sigmas)) / n
			}
		case MethodMedian:
			outData[row][c] = estimator.Median(vals)
			if withUncertainty {
				outUncertainty[row][c] = estimator.Std(vals) / math.Sqrt(n)
			}
		}
	}
}

func sumFloat(vals []float64) float64 {
	var s float64
	for _, v := range vals {
		s += v
	}
	return s
}

func sumSquares(vals []float64) float64 {
	var s float64
	for _, v := range vals {
		s += v * v
	}
	return s
}
