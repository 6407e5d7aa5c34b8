// Package clip implements the rejection primitives used by the combiner's
// rejection stage: MinMaxClip and SigmaClip. Both are pure functions over a
// flat []float64 and return a boolean rejection mask of the same length,
// where true marks a rejected (outlier or non-finite) entry.
//
// Non-finite entries (NaN, +Inf, -Inf) are always rejected regardless of
// thresholds; neither function ever panics on input containing them.
//
// Errors:
//
//	ErrInvalidThresholds - ParseThresholds was given more than two threshold
//	  values.
//
// MinMaxClip and SigmaClip return no error; SigmaClip takes its estimators
// as estimator.Estimator values, resolved by the caller (for example via
// estimator.Lookup).
//
// Complexity: MinMaxClip is O(n); SigmaClip is O(n) per estimator call plus
// the estimator's own cost (O(n log n) for the median/mad_std built-ins).
package clip
