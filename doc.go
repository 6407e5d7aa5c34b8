// Package imcombine combines a stack of 2-D scientific image frames into a
// single output frame, applying per-pixel outlier rejection, uncertainty
// propagation, mask propagation, and header merging, while bounding peak
// memory through a chunked row-slab planner.
//
// # Pipeline
//
// A Combiner drives five stages: frame.Load normalizes heterogeneous
// inputs, planChunks splits the stack into memory-bounded row ranges,
// rejectSlab applies configured clips, reduceSlab computes the combined
// pixel value and propagated uncertainty, and mergeHeader assembles the
// output metadata.
//
// # Configuration
//
// NewCombiner accepts CombinerOptions (WithMaxMemory, WithDtype,
// WithDiskCache, WithMergeHeader, WithLogger). After construction,
// SetSigmaClip, SetMinMaxClip, and SetMergeHeader adjust rejection and
// merge behavior; each validates eagerly and leaves the Combiner
// unchanged on failure.
//
// # Errors
//
// Combine returns ConfigError for invalid configuration, frame.ErrEmptyStack
// for an empty stack, *frame.ShapeMismatchError or *frame.UnitMismatchError
// for an inconsistent stack, ErrInvalidMethod for an unrecognized method,
// and IOError when disk-cache materialization fails. All are wrapped with
// an "imcombine:" prefix.
package imcombine
