package clip

import (
	"math"

	"github.com/astropop-go/imcombine/estimator"
)

// SigmaClip rejects entries of arr more than low/high deviations away from
// a centre estimate, plus every non-finite entry. Either of low, high may
// be nil to leave that side unconstrained; both nil rejects only
// non-finite values.
//
// cen and dev are invariant to non-finite input: they are evaluated only
// over the finite subset of arr.
//
// A finite entry x is rejected iff x < c-low·d (low set) or x > c+high·d
// (high set), where c = cen.Reduce(finite), d = dev.Reduce(finite).
func SigmaClip(arr []float64, low, high *float64, cen, dev estimator.Estimator) []bool {
	mask := make([]bool, len(arr))
	finite := make([]float64, 0, len(arr))
	for i, v := range arr {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			mask[i] = true
			continue
		}
		finite = append(finite, v)
	}
	if len(finite) == 0 {
		return mask
	}

	c := cen.Reduce(finite)
	d := dev.Reduce(finite)

	var lowBound, highBound float64
	if low != nil {
		lowBound = c - (*low)*d
	}
	if high != nil {
		highBound = c + (*high)*d
	}

	for i, v := range arr {
		if mask[i] {
			continue
		}
		if low != nil && v < lowBound {
			mask[i] = true
			continue
		}
		if high != nil && v > highBound {
			mask[i] = true
		}
	}
	return mask
}

// ParseThresholds canonicalizes a sigma-clip threshold specification: a
// single value is treated as a symmetric (s, s) pair; a two-element slice
// is (low, high), where a math.NaN() entry leaves that side unconstrained
// (nil). An empty slice leaves both sides nil. More than two elements is
// invalid.
func ParseThresholds(thresholds []float64) (low, high *float64, err error) {
	switch len(thresholds) {
	case 0:
		return nil, nil, nil
	case 1:
		v := thresholds[0]
		return &v, &v, nil
	case 2:
		l, h := thresholds[0], thresholds[1]
		var lp, hp *float64
		if !math.IsNaN(l) {
			lp = &l
		}
		if !math.IsNaN(h) {
			hp = &h
		}
		return lp, hp, nil
	default:
		return nil, nil, ErrInvalidThresholds
	}
}
