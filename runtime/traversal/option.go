package traversal

import (
	"fmt"

	"github.com/go-logr/logr"
)

// Options bound and anchor a traversal pass.
type Options struct {
	// Anchor is the start time of the seeds, epoch milliseconds.
	Anchor int64 `json:"anchor" yaml:"anchor"`
	// MaxLoopDepth is the number of times an element may be revisited on a
	// single path before the path is cut off.
	MaxLoopDepth int `json:"maxLoopDepth" yaml:"maxLoopDepth"`
	// MaxInstances caps the number of emitted timings.
	MaxInstances int `json:"maxInstances" yaml:"maxInstances"`
	// MultiInstanceCount is used when a multi-instance activity has no numeric cardinality.
	MultiInstanceCount int `json:"multiInstanceCount" yaml:"multiInstanceCount"`
	// MaxMultiInstance caps multi-instance expansion.
	MaxMultiInstance int `json:"maxMultiInstance" yaml:"maxMultiInstance"`
	// FlushPendingJoins fires joins that never completed once nothing else can move.
	FlushPendingJoins bool `json:"flushPendingJoins" yaml:"flushPendingJoins"`
}

// DefaultOptions returns the default traversal bounds
func DefaultOptions() Options {
	return Options{
		MaxLoopDepth:       1,
		MaxInstances:       10000,
		MultiInstanceCount: 3,
		MaxMultiInstance:   10,
		FlushPendingJoins:  true,
	}
}

// Validate checks option bounds
func (o *Options) Validate() error {
	switch {
	case o.MaxLoopDepth < 0:
		return fmt.Errorf("maxLoopDepth must be >= 0")
	case o.MaxInstances <= 0:
		return fmt.Errorf("maxInstances must be > 0")
	case o.MultiInstanceCount <= 0:
		return fmt.Errorf("multiInstanceCount must be > 0")
	case o.MaxMultiInstance <= 0:
		return fmt.Errorf("maxMultiInstance must be > 0")
	}
	return nil
}

// Option customises the engine
type Option func(e *Engine)

// WithOptions replaces all options
func WithOptions(options Options) Option {
	return func(e *Engine) { e.options = options }
}

// WithAnchor sets the seed start time in epoch milliseconds
func WithAnchor(anchor int64) Option {
	return func(e *Engine) { e.options.Anchor = anchor }
}

// WithMaxLoopDepth sets the per-path revisit bound
func WithMaxLoopDepth(depth int) Option {
	return func(e *Engine) { e.options.MaxLoopDepth = depth }
}

// WithMaxInstances sets the timing cap
func WithMaxInstances(count int) Option {
	return func(e *Engine) { e.options.MaxInstances = count }
}

// WithMultiInstance sets the default and maximum multi-instance expansion
func WithMultiInstance(defaultCount, maxCount int) Option {
	return func(e *Engine) {
		e.options.MultiInstanceCount = defaultCount
		e.options.MaxMultiInstance = maxCount
	}
}

// WithFlushPendingJoins toggles forced firing of incomplete joins
func WithFlushPendingJoins(flag bool) Option {
	return func(e *Engine) { e.options.FlushPendingJoins = flag }
}

// WithLogger sets the logger
func WithLogger(logger logr.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}
