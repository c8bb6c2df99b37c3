package flowline

import (
	"errors"
	"fmt"
	"time"

	"github.com/viant/flowline/internal/clock"
	"github.com/viant/flowline/render"
	"github.com/viant/flowline/render/chart"
	"github.com/viant/flowline/runtime/transform"
	"github.com/viant/flowline/runtime/traversal"
)

// Config is a serialisable representation of the engine configuration. It can
// be populated from YAML, TOML, JSON or environment variables; DefaultConfig
// carries the package defaults of every section.
type Config struct {
	Traversal TraversalConfig `json:"traversal" yaml:"traversal" mapstructure:"traversal" toml:"traversal"`
	Transform TransformConfig `json:"transform" yaml:"transform" mapstructure:"transform" toml:"transform"`
	Renderer  RendererConfig  `json:"renderer" yaml:"renderer" mapstructure:"renderer" toml:"renderer"`
	Tracing   TracingConfig   `json:"tracing" yaml:"tracing" mapstructure:"tracing" toml:"tracing"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log" toml:"log"`
}

// TraversalConfig bounds the flow traversal
type TraversalConfig struct {
	// Anchor is the RFC3339 start time of the process; empty means now, truncated to the minute.
	Anchor             string `json:"anchor,omitempty" yaml:"anchor,omitempty" mapstructure:"anchor" toml:"anchor"`
	MaxLoopDepth       int    `json:"maxLoopDepth" yaml:"maxLoopDepth" mapstructure:"maxLoopDepth" toml:"maxLoopDepth"`
	MaxInstances       int    `json:"maxInstances" yaml:"maxInstances" mapstructure:"maxInstances" toml:"maxInstances"`
	MultiInstanceCount int    `json:"multiInstanceCount" yaml:"multiInstanceCount" mapstructure:"multiInstanceCount" toml:"multiInstanceCount"`
	MaxMultiInstance   int    `json:"maxMultiInstance" yaml:"maxMultiInstance" mapstructure:"maxMultiInstance" toml:"maxMultiInstance"`
	FlushPendingJoins  bool   `json:"flushPendingJoins" yaml:"flushPendingJoins" mapstructure:"flushPendingJoins" toml:"flushPendingJoins"`
}

// TransformConfig controls how timings become timeline rows
type TransformConfig struct {
	Mode                  string `json:"mode" yaml:"mode" mapstructure:"mode" toml:"mode"`
	ChronologicalSorting  bool   `json:"chronologicalSorting" yaml:"chronologicalSorting" mapstructure:"chronologicalSorting" toml:"chronologicalSorting"`
	HeuristicDefaultFlows bool   `json:"heuristicDefaultFlows" yaml:"heuristicDefaultFlows" mapstructure:"heuristicDefaultFlows" toml:"heuristicDefaultFlows"`
}

// RendererConfig sizes the chart and styles the painted elements
type RendererConfig struct {
	Width          float64 `json:"width" yaml:"width" mapstructure:"width" toml:"width"`
	Height         float64 `json:"height" yaml:"height" mapstructure:"height" toml:"height"`
	PixelRatio     float64 `json:"pixelRatio" yaml:"pixelRatio" mapstructure:"pixelRatio" toml:"pixelRatio"`
	Zoom           float64 `json:"zoom" yaml:"zoom" mapstructure:"zoom" toml:"zoom"`
	AutoFit        bool    `json:"autoFit" yaml:"autoFit" mapstructure:"autoFit" toml:"autoFit"`
	AutoFitPadding float64 `json:"autoFitPadding" yaml:"autoFitPadding" mapstructure:"autoFitPadding" toml:"autoFitPadding"`
	render.Config  `yaml:",inline" mapstructure:",squash"`
}

// TracingConfig enables the OpenTelemetry stdout exporter
type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled" toml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName" mapstructure:"serviceName" toml:"serviceName"`
	ServiceVersion string `json:"serviceVersion,omitempty" yaml:"serviceVersion,omitempty" mapstructure:"serviceVersion" toml:"serviceVersion"`
	// OutputFile receives spans; empty writes to stdout.
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty" mapstructure:"outputFile" toml:"outputFile"`
}

// LogConfig sets the logger verbosity
type LogConfig struct {
	Verbosity int `json:"verbosity" yaml:"verbosity" mapstructure:"verbosity" toml:"verbosity"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	traversalOptions := traversal.DefaultOptions()
	transformOptions := transform.DefaultOptions()
	chartOptions := chart.DefaultOptions()
	return &Config{
		Traversal: TraversalConfig{
			MaxLoopDepth:       traversalOptions.MaxLoopDepth,
			MaxInstances:       traversalOptions.MaxInstances,
			MultiInstanceCount: traversalOptions.MultiInstanceCount,
			MaxMultiInstance:   traversalOptions.MaxMultiInstance,
			FlushPendingJoins:  traversalOptions.FlushPendingJoins,
		},
		Transform: TransformConfig{
			Mode:                  string(transformOptions.Mode),
			ChronologicalSorting:  transformOptions.ChronologicalSorting,
			HeuristicDefaultFlows: transformOptions.HeuristicDefaultFlows,
		},
		Renderer: RendererConfig{
			Width:          chartOptions.Width,
			Height:         chartOptions.Height,
			PixelRatio:     chartOptions.PixelRatio,
			Zoom:           chartOptions.Zoom,
			AutoFit:        chartOptions.AutoFit,
			AutoFitPadding: chartOptions.AutoFitPadding,
			Config:         render.DefaultConfig(),
		},
		Tracing: TracingConfig{ServiceName: "flowline"},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if _, err := c.Traversal.Options(); err != nil {
		errs = append(errs, fmt.Errorf("traversal: %w", err))
	}
	if _, err := c.Transform.Options(); err != nil {
		errs = append(errs, fmt.Errorf("transform: %w", err))
	}
	chartOptions := c.Renderer.ChartOptions()
	if err := chartOptions.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("renderer: %w", err))
	}
	if err := c.Renderer.Config.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("renderer: %w", err))
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		errs = append(errs, fmt.Errorf("tracing.serviceName must be set when tracing is enabled"))
	}
	return errors.Join(errs...)
}

// Options returns engine options; the anchor defaults to the current minute.
func (c *TraversalConfig) Options() (traversal.Options, error) {
	ret := traversal.Options{
		MaxLoopDepth:       c.MaxLoopDepth,
		MaxInstances:       c.MaxInstances,
		MultiInstanceCount: c.MultiInstanceCount,
		MaxMultiInstance:   c.MaxMultiInstance,
		FlushPendingJoins:  c.FlushPendingJoins,
	}
	anchor, err := c.AnchorTime()
	if err != nil {
		return ret, err
	}
	ret.Anchor = anchor.UnixMilli()
	return ret, ret.Validate()
}

// AnchorTime parses Anchor.
func (c *TraversalConfig) AnchorTime() (time.Time, error) {
	if c.Anchor == "" {
		return clock.Now().Truncate(time.Minute), nil
	}
	ret, err := time.Parse(time.RFC3339, c.Anchor)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid anchor %q: %w", c.Anchor, err)
	}
	return ret, nil
}

// Options returns transformer options
func (c *TransformConfig) Options() (transform.Options, error) {
	ret := transform.Options{
		Mode:                  transform.Mode(c.Mode),
		ChronologicalSorting:  c.ChronologicalSorting,
		HeuristicDefaultFlows: c.HeuristicDefaultFlows,
	}
	return ret, ret.Validate()
}

// ChartOptions returns the chart viewport settings
func (c *RendererConfig) ChartOptions() chart.Options {
	ret := chart.DefaultOptions()
	ret.Width = c.Width
	ret.Height = c.Height
	ret.PixelRatio = c.PixelRatio
	ret.Zoom = c.Zoom
	ret.AutoFit = c.AutoFit
	ret.AutoFitPadding = c.AutoFitPadding
	return ret
}
