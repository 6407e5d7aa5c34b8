package imcombine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/astropop-go/imcombine/clip"
	"github.com/astropop-go/imcombine/estimator"
	"github.com/astropop-go/imcombine/frame"
	"github.com/astropop-go/imcombine/internal/diskcache"
)

// Combiner drives the combine pipeline for one configuration. A Combiner
// may be reused across multiple Combine calls; each call clears its own
// cached temporaries on return, success or failure.
type Combiner struct {
	cfg   *CombinerConfig
	cache *diskcache.Registry
	log   zerolog.Logger
}

// NewCombiner builds a Combiner with defaults (max_memory 1e9, dtype
// float64, merge_header no_merge, disk cache disabled, no-op logger),
// then applies opts in order.
func NewCombiner(opts ...CombinerOption) *Combiner {
	cfg := newCombinerConfig(opts...)
	c := &Combiner{cfg: cfg, log: cfg.Logger}
	if cfg.UseDiskCache {
		c.cache = diskcache.NewRegistry(cfg.CacheDir)
	}
	return c
}

// SetSigmaClip configures sigma clipping. A nil thresholds disables
// clipping and clears both estimator names. A non-nil thresholds with both
// cen and dev empty defaults to "median"/"mad_std". Invalid thresholds or
// unknown estimator names fail with ConfigError, leaving the Combiner's
// prior sigma configuration untouched.
func (c *Combiner) SetSigmaClip(thresholds []float64, cen, dev string) error {
	if thresholds == nil {
		c.cfg.SigmaLow, c.cfg.SigmaHigh = nil, nil
		c.cfg.SigmaCenFn, c.cfg.SigmaDevFn = "", ""
		return nil
	}

	low, high, err := clip.ParseThresholds(thresholds)
	if err != nil {
		return &ConfigError{Msg: err.Error()}
	}

	if cen == "" && dev == "" {
		cen, dev = "median", "mad_std"
	}
	if _, err := estimator.Lookup(cen); err != nil {
		return &ConfigError{Msg: fmt.Sprintf("unknown centre estimator %q", cen)}
	}
	if _, err := estimator.Lookup(dev); err != nil {
		return &ConfigError{Msg: fmt.Sprintf("unknown deviation estimator %q", dev)}
	}

	c.cfg.SigmaLow, c.cfg.SigmaHigh = low, high
	c.cfg.SigmaCenFn, c.cfg.SigmaDevFn = cen, dev
	return nil
}

// SetMinMaxClip configures min/max clipping. Either bound may be nil to
// leave that side unconstrained; if both are given and lo > hi, they are
// swapped.
func (c *Combiner) SetMinMaxClip(lo, hi *float64) error {
	if lo != nil && hi != nil && *lo > *hi {
		lo, hi = hi, lo
	}
	c.cfg.MinMaxLo, c.cfg.MinMaxHi = lo, hi
	return nil
}

// SetMergeHeader configures the header-merge policy. MergeSelectedKeys
// requires a non-empty keys list. An unknown mode fails with ConfigError.
func (c *Combiner) SetMergeHeader(mode MergeMode, keys []string) error {
	switch mode {
	case MergeNone, MergeFirst, MergeOnlyEqual, MergeSelectedKeys:
	default:
		return &ConfigError{Msg: fmt.Sprintf("unknown merge mode %q", mode)}
	}
	if mode == MergeSelectedKeys && len(keys) == 0 {
		return &ConfigError{Msg: "No key assigned"}
	}
	c.cfg.MergeHeader = mode
	c.cfg.MergeHeaderKeys = keys
	return nil
}

// Clear drops cached temporaries. Safe to call multiple times, including
// on a Combiner that never used disk caching.
func (c *Combiner) Clear() {
	if c.cache != nil {
		_ = c.cache.Clear()
	}
}

// Combine runs the full pipeline: load and validate the stack, plan
// memory-bounded row chunks, reject outliers, reduce, merge headers, and
// return the output frame. Cancellation is checked between chunks only.
func (c *Combiner) Combine(ctx context.Context, inputs []frame.FrameInput, method Method) (*frame.Frame, error) {
	defer c.Clear()

	if method != MethodMedian && method != MethodMean && method != MethodSum {
		return nil, fmt.Errorf("imcombine: %w: %q", ErrInvalidMethod, method)
	}
	if err := validateDtype(c.cfg.Dtype); err != nil {
		return nil, err
	}

	var strategy frame.CacheStrategy
	if c.cache != nil {
		strategy = c.cache
	}

	frames, warn, err := frame.Load(inputs, strategy)
	if err != nil {
		var cacheErr *diskcache.IOError
		if errors.As(err, &cacheErr) {
			return nil, &IOError{Path: cacheErr.Path, Err: cacheErr.Err}
		}
		return nil, fmt.Errorf("imcombine: %w", err)
	}
	if warn {
		c.log.Warn().Msg(frame.NonFrameWarning)
	}

	if err := frame.CheckConsistency(frames); err != nil {
		return nil, fmt.Errorf("imcombine: %w", err)
	}

	h, w := frames[0].Height, frames[0].Width
	n := len(frames)
	b := elementSize(c.cfg.Dtype)

	uncertaintyOK := true
	for _, fr := range frames {
		if !fr.HasUncertainty() {
			uncertaintyOK = false
			break
		}
	}
	if !uncertaintyOK {
		c.log.Debug().Msg("One or more frames have empty uncertainty. Some features are disabled.")
	}

	cen, dev, err := c.resolveSigmaEstimators()
	if err != nil {
		return nil, err
	}

	plans := planChunks(n, h, w, b, method, c.cfg.MaxMemory)
	if len(plans) > 1 {
		c.log.Debug().Msgf("Splitting the images into %d chunks.", len(plans))
	}

	outData := make([][]float64, h)
	outMask := make([][]bool, h)
	var outUncertainty [][]float64
	if uncertaintyOK {
		outUncertainty = make([][]float64, h)
	}
	for i := 0; i < h; i++ {
		outData[i] = make([]float64, w)
		outMask[i] = make([]bool, w)
		if uncertaintyOK {
			outUncertainty[i] = make([]float64, w)
		}
	}

	for _, plan := range plans {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		slab, serr := buildSlab(frames, plan.RowLo, plan.RowHi, uncertaintyOK)
		if serr != nil {
			return nil, fmt.Errorf("imcombine: %w", serr)
		}

		rejectSlab(slab, c.cfg, cen, dev)
		reduceSlab(slab, method, uncertaintyOK, outData, outMask, outUncertainty, plan.RowLo, w)
	}

	meta, merr := mergeHeader(frames, c.cfg.MergeHeader, c.cfg.MergeHeaderKeys, method)
	if merr != nil {
		return nil, merr
	}

	out := &frame.Frame{
		Data:   frame.NewInMemory(outData),
		Mask:   outMask,
		Unit:   frames[0].Unit,
		Meta:   meta,
		Height: h,
		Width:  w,
	}
	if uncertaintyOK {
		out.Uncertainty = frame.NewInMemory(outUncertainty)
	}
	return out, nil
}

func (c *Combiner) resolveSigmaEstimators() (cen, dev estimator.Estimator, err error) {
	if c.cfg.SigmaCenFn == "" && c.cfg.SigmaDevFn == "" {
		return nil, nil, nil
	}
	cen, err = estimator.Lookup(c.cfg.SigmaCenFn)
	if err != nil {
		return nil, nil, &ConfigError{Msg: fmt.Sprintf("unknown centre estimator %q", c.cfg.SigmaCenFn)}
	}
	dev, err = estimator.Lookup(c.cfg.SigmaDevFn)
	if err != nil {
		return nil, nil, &ConfigError{Msg: fmt.Sprintf("unknown deviation estimator %q", c.cfg.SigmaDevFn)}
	}
	return cen, dev, nil
}
