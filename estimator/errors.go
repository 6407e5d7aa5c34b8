// SPDX-License-Identifier: MIT

package estimator

import "errors"

// ErrUnknownEstimator indicates a requested estimator name has no built-in
// registration and no callable was supplied in its place.
var ErrUnknownEstimator = errors.New("estimator: unknown estimator name")
