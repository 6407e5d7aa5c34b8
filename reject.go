package imcombine

import (
	"github.com/astropop-go/imcombine/clip"
	"github.com/astropop-go/imcombine/estimator"
	"github.com/astropop-go/imcombine/frame"
)

// rejectSlab applies the configured clips along the frame axis (one call
// per pixel column, gathering the K per-frame values), OR'ing each result
// into the slab's existing mask. Order is deterministic: minmax first,
// then sigma; pre-existing bits are never cleared.
func rejectSlab(slab *frame.MaskedSlab, cfg *CombinerConfig, cen, dev estimator.Estimator) {
	k := slab.NumFrames()
	w := slab.Width()
	if k == 0 || w == 0 {
		return
	}

	vals := make([]float64, k)

	if cfg.MinMaxLo != nil || cfg.MinMaxHi != nil {
		for p := 0; p < w; p++ {
			for i := 0; i < k; i++ {
				vals[i] = slab.Data[i][p]
			}
			mask := clip.MinMaxClip(vals, cfg.MinMaxLo, cfg.MinMaxHi)
			for i := 0; i < k; i++ {
				slab.Mask[i][p] = slab.Mask[i][p] || mask[i]
			}
		}
	}

	if cfg.SigmaLow != nil || cfg.SigmaHigh != nil {
		for p := 0; p < w; p++ {
			for i := 0; i < k; i++ {
				vals[i] = slab.Data[i][p]
			}
			mask := clip.SigmaClip(vals, cfg.SigmaLow, cfg.SigmaHigh, cen, dev)
			for i := 0; i < k; i++ {
				slab.Mask[i][p] = slab.Mask[i][p] || mask[i]
			}
		}
	}
}
