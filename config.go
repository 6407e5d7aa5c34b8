package imcombine

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Method selects the per-pixel reduction applied by the reduction stage.
type Method string

const (
	MethodMedian Method = "median"
	MethodMean   Method = "mean"
	MethodSum    Method = "sum"
)

// MergeMode selects the header merger's policy (§4.6).
type MergeMode string

const (
	MergeNone         MergeMode = "no_merge"
	MergeFirst        MergeMode = "first"
	MergeOnlyEqual    MergeMode = "only_equal"
	MergeSelectedKeys MergeMode = "selected_keys"
)

// Dtype names the working buffer's floating precision. Go has no native
// float16, so the three-kind acceptance of the original system narrows to
// two: Float32 and Float64. Dtype sets the element size the chunk planner
// budgets for; pixel values are held and combined as float64 whichever
// Dtype is chosen.
type Dtype string

const (
	Float32 Dtype = "float32"
	Float64 Dtype = "float64"
)

func elementSize(d Dtype) int64 {
	if d == Float32 {
		return 4
	}
	return 8
}

func validateDtype(d Dtype) error {
	if d != Float32 && d != Float64 {
		return &ConfigError{Msg: fmt.Sprintf("%q is not a valid float dtype.", string(d))}
	}
	return nil
}

// CombinerConfig is the configuration snapshot a Combiner carries between
// calls. It is never mutated concurrently with a Combine call; construction
// via NewCombiner and the Set* mutators are the only writers.
type CombinerConfig struct {
	MaxMemory    int64
	Dtype        Dtype
	UseDiskCache bool
	CacheDir     string

	SigmaLow, SigmaHigh    *float64
	SigmaCenFn, SigmaDevFn string

	MinMaxLo, MinMaxHi *float64

	MergeHeader     MergeMode
	MergeHeaderKeys []string

	Logger zerolog.Logger
}

// CombinerOption customizes a Combiner at construction time.
type CombinerOption func(*CombinerConfig)

// WithMaxMemory sets the planner's byte budget (default 1e9).
func WithMaxMemory(bytes int64) CombinerOption {
	return func(cfg *CombinerConfig) {
		if bytes > 0 {
			cfg.MaxMemory = bytes
		}
	}
}

// WithDtype sets the Dtype (default Float64); see Dtype for what it affects.
func WithDtype(d Dtype) CombinerOption {
	return func(cfg *CombinerConfig) {
		cfg.Dtype = d
	}
}

// WithDiskCache enables the memory-mapped backing strategy for ingested
// frames, materializing temporaries under dir (empty uses os.TempDir()).
func WithDiskCache(dir string) CombinerOption {
	return func(cfg *CombinerConfig) {
		cfg.UseDiskCache = true
		cfg.CacheDir = dir
	}
}

// WithMergeHeader sets the initial header-merge policy; equivalent to
// calling SetMergeHeader immediately after construction, but fails only at
// Combine time rather than eagerly (construction never returns an error).
func WithMergeHeader(mode MergeMode, keys []string) CombinerOption {
	return func(cfg *CombinerConfig) {
		cfg.MergeHeader = mode
		cfg.MergeHeaderKeys = keys
	}
}

// WithLogger injects a zerolog.Logger for the three emitted log records.
// Defaults to zerolog.Nop(): a Combiner never logs unless a caller opts in.
func WithLogger(l zerolog.Logger) CombinerOption {
	return func(cfg *CombinerConfig) {
		cfg.Logger = l
	}
}

func newCombinerConfig(opts ...CombinerOption) *CombinerConfig {
	cfg := &CombinerConfig{
		MaxMemory:   1_000_000_000,
		Dtype:       Float64,
		MergeHeader: MergeNone,
		Logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
