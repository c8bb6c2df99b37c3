package chart

import (
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/viant/flowline/model/gantt"
	"github.com/viant/flowline/render"
	"github.com/viant/flowline/render/canvas"
	"github.com/viant/flowline/render/canvas/raster"
	"github.com/viant/flowline/render/frame"
	"github.com/viant/flowline/render/timescale"
)

// Options represents chart viewport settings
type Options struct {
	// Width and Height of the whole chart; the ruler takes the top render.TimelineHeight pixels.
	Width          float64 `json:"width" yaml:"width" mapstructure:"width"`
	Height         float64 `json:"height" yaml:"height" mapstructure:"height"`
	PixelRatio     float64 `json:"pixelRatio" yaml:"pixelRatio" mapstructure:"pixelRatio"`
	Zoom           float64 `json:"zoom" yaml:"zoom" mapstructure:"zoom"`
	AutoFit        bool    `json:"autoFit" yaml:"autoFit" mapstructure:"autoFit"`
	AutoFitPadding float64 `json:"autoFitPadding" yaml:"autoFitPadding" mapstructure:"autoFitPadding"`
	// ZoomStep is the zoom change per wheel notch (100 delta units).
	ZoomStep    float64             `json:"zoomStep" yaml:"zoomStep" mapstructure:"zoomStep"`
	Curve       timescale.ZoomCurve `json:"curve" yaml:"curve" mapstructure:"curve"`
	CurrentDate int64               `json:"currentDate,omitempty" yaml:"currentDate,omitempty" mapstructure:"currentDate"`
	Location    *time.Location      `json:"-" yaml:"-"`
	Frame       frame.Config        `json:"frame" yaml:"frame" mapstructure:"frame"`
}

// DefaultOptions returns the default viewport
func DefaultOptions() Options {
	return Options{
		Width:          1200,
		Height:         600,
		PixelRatio:     1,
		Zoom:           50,
		AutoFit:        true,
		AutoFitPadding: 0.1,
		ZoomStep:       5,
		Curve:          timescale.DefaultZoomCurve(),
		Frame:          frame.DefaultConfig(),
	}
}

// Validate checks viewport settings
func (o *Options) Validate() error {
	if o.Width <= 0 || o.Height <= render.TimelineHeight {
		return fmt.Errorf("invalid chart size %vx%v: height must exceed the %v pixel ruler", o.Width, o.Height, render.TimelineHeight)
	}
	if o.PixelRatio <= 0 {
		return fmt.Errorf("invalid pixel ratio: %v", o.PixelRatio)
	}
	if o.AutoFitPadding < 0 || o.AutoFitPadding >= 0.5 {
		return fmt.Errorf("invalid autoFitPadding: %v", o.AutoFitPadding)
	}
	if o.Curve.MinScale <= 0 || o.Curve.MaxScale <= o.Curve.MinScale {
		return fmt.Errorf("invalid zoom curve: [%v, %v]", o.Curve.MinScale, o.Curve.MaxScale)
	}
	return nil
}

// CanvasFactory allocates a layer canvas of the given logical size.
type CanvasFactory func(width, height, pixelRatio float64) (canvas.Canvas, error)

// RasterFactory allocates raster canvases
func RasterFactory(width, height, pixelRatio float64) (canvas.Canvas, error) {
	return raster.New(width, height, pixelRatio)
}

// Option configures a chart
type Option func(c *Chart)

// WithOptions replaces the viewport settings
func WithOptions(options Options) Option {
	return func(c *Chart) {
		c.options = options
	}
}

// WithRenderer sets the renderer
func WithRenderer(renderer *render.Renderer) Option {
	return func(c *Chart) {
		c.renderer = renderer
	}
}

// WithCanvasFactory sets the layer canvas factory
func WithCanvasFactory(factory CanvasFactory) Option {
	return func(c *Chart) {
		c.factory = factory
	}
}

// WithOnElementClick registers the selection callback
func WithOnElementClick(fn func(element gantt.Element)) Option {
	return func(c *Chart) {
		c.onElementClick = fn
	}
}

// WithOnZoomChange registers the zoom callback
func WithOnZoomChange(fn func(zoom float64)) Option {
	return func(c *Chart) {
		c.onZoomChange = fn
	}
}

// WithOnViewChange registers the visible time range callback
func WithOnViewChange(fn func(start, end float64)) Option {
	return func(c *Chart) {
		c.onViewChange = fn
	}
}

// WithLogger sets the logger
func WithLogger(logger logr.Logger) Option {
	return func(c *Chart) {
		c.logger = logger
	}
}
