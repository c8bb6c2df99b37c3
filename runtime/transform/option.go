package transform

import (
	"fmt"

	"github.com/go-logr/logr"
)

// Mode selects how multiple instances of one element become timeline rows.
type Mode string

const (
	// ModeEvery emits one row per instance.
	ModeEvery Mode = "every"
	// ModeEarliest emits the earliest instance and ghosts the others.
	ModeEarliest Mode = "earliest"
	// ModeLatest emits the latest instance and ghosts the others.
	ModeLatest Mode = "latest"
)

// Options controls the transformation
type Options struct {
	Mode Mode `json:"mode" yaml:"mode"`
	// ChronologicalSorting orders rows of a component by start time instead of traversal order.
	ChronologicalSorting bool `json:"chronologicalSorting" yaml:"chronologicalSorting"`
	// HeuristicDefaultFlows classifies flows named "default" or "else" as default flows.
	HeuristicDefaultFlows bool `json:"heuristicDefaultFlows" yaml:"heuristicDefaultFlows"`
}

// DefaultOptions returns the default transformation options
func DefaultOptions() Options {
	return Options{Mode: ModeEvery, HeuristicDefaultFlows: true}
}

// Validate checks the mode
func (o *Options) Validate() error {
	switch o.Mode {
	case ModeEvery, ModeEarliest, ModeLatest:
		return nil
	case "":
		o.Mode = ModeEvery
		return nil
	}
	return fmt.Errorf("unsupported transform mode: %q", o.Mode)
}

// Option customises the transformer
type Option func(t *Transformer)

// WithOptions replaces all options
func WithOptions(options Options) Option {
	return func(t *Transformer) { t.options = options }
}

// WithMode sets the occurrence mode
func WithMode(mode Mode) Option {
	return func(t *Transformer) { t.options.Mode = mode }
}

// WithChronologicalSorting toggles start-time ordering within components
func WithChronologicalSorting(flag bool) Option {
	return func(t *Transformer) { t.options.ChronologicalSorting = flag }
}

// WithHeuristicDefaultFlows toggles name based default flow detection
func WithHeuristicDefaultFlows(flag bool) Option {
	return func(t *Transformer) { t.options.HeuristicDefaultFlows = flag }
}

// WithLogger sets the logger
func WithLogger(logger logr.Logger) Option {
	return func(t *Transformer) { t.logger = logger }
}
