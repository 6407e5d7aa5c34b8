// SPDX-License-Identifier: MIT
//
// Package estimator provides the central-tendency and deviation estimators
// used by sigma-clipping rejection. It defines the Estimator capability
// interface and a small registry of named built-ins ("median", "mean",
// "std", "mad_std"), plus an adapter (EstimatorFunc) so callers can supply
// their own reduction functions under the same interface.
//
// Built-ins:
//
//	median  - sorts a copy of the input; even-length inputs average the two
//	          central order statistics.
//	mean    - arithmetic mean.
//	std     - population standard deviation (ddof=0).
//	mad_std - median absolute deviation scaled by 1.4826 to approximate a
//	          Gaussian sample's standard deviation.
//
// Errors:
//
//	ErrUnknownEstimator - Lookup was given a name outside the built-in set.
//
// Complexity: every built-in is O(n) or O(n log n) (median/mad_std sort
// their input); Lookup is O(1).
package estimator
