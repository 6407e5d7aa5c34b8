package clip

import "errors"

// ErrInvalidThresholds indicates ParseThresholds received a thresholds value
// with more than two elements.
var ErrInvalidThresholds = errors.New("clip: thresholds must have at most 2 elements")
