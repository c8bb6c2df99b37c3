package render

import (
	"context"
	"errors"
	"image/color"
	"time"

	"github.com/go-logr/logr"
	"github.com/viant/flowline/internal/logging"
	"github.com/viant/flowline/model/gantt"
	"github.com/viant/flowline/render/canvas"
	"github.com/viant/flowline/render/timescale"
	"github.com/viant/flowline/tracing"
)

// ErrNoLayer is returned when neither the timeline nor the content canvas is set.
var ErrNoLayer = errors.New("render: no layer to paint")

// Layers are the canvases painted by Render. Either may be nil.
type Layers struct {
	Timeline canvas.Canvas
	Content  canvas.Canvas
}

// Stats summarizes one painted frame.
type Stats struct {
	Rows         int           `json:"rows"`
	Elements     int           `json:"elements"`
	Skipped      int           `json:"skipped"`
	Fallbacks    int           `json:"fallbacks"`
	Ghosts       int           `json:"ghosts"`
	Dependencies int           `json:"dependencies"`
	Ticks        int           `json:"ticks"`
	Elapsed      time.Duration `json:"elapsed"`
	// Visible lists the ids of elements within the painted row range.
	Visible []string `json:"visible,omitempty"`
}

// Renderer paints timeline elements onto canvases.
type Renderer struct {
	config  Config
	palette palette
	logger  logr.Logger
}

// Option configures a renderer
type Option func(r *Renderer)

// WithConfig replaces the default config
func WithConfig(config Config) Option {
	return func(r *Renderer) {
		r.config = config
	}
}

// WithLogger sets the logger
func WithLogger(logger logr.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// New creates a renderer
func New(opts ...Option) *Renderer {
	ret := &Renderer{config: DefaultConfig(), logger: logging.Default()}
	for _, opt := range opts {
		opt(ret)
	}
	ret.palette = newPalette(ret.config)
	return ret
}

// Config returns the effective config
func (r *Renderer) Config() Config { return r.config }

// Render paints the ruler and the content layers for view.
func (r *Renderer) Render(ctx context.Context, layers Layers, view *View, elements []gantt.Element, dependencies []*gantt.Dependency) (*Stats, error) {
	if layers.Timeline == nil && layers.Content == nil {
		return nil, ErrNoLayer
	}
	_, span := tracing.StartSpan(ctx, "flowline.paint", "INTERNAL")
	started := time.Now()
	stats := &Stats{}
	if layers.Timeline != nil {
		stats.Ticks = r.RenderTimeline(layers.Timeline, view)
	}
	if layers.Content != nil {
		r.renderContent(layers.Content, view, elements, dependencies, stats)
	}
	stats.Elapsed = time.Since(started)
	span.WithCount("elements", stats.Elements).WithCount("dependencies", stats.Dependencies).WithCount("rows", stats.Rows)
	tracing.EndSpan(span, nil)
	r.logger.V(2).Info("frame painted", "rows", stats.Rows, "elements", stats.Elements, "skipped", stats.Skipped,
		"dependencies", stats.Dependencies, "elapsed", stats.Elapsed)
	return stats, nil
}

// RenderContent paints rows, grid, marker, dependencies and elements.
func (r *Renderer) RenderContent(c canvas.Canvas, view *View, elements []gantt.Element, dependencies []*gantt.Dependency) *Stats {
	stats := &Stats{}
	r.renderContent(c, view, elements, dependencies, stats)
	return stats
}

func (r *Renderer) renderContent(c canvas.Canvas, view *View, elements []gantt.Element, dependencies []*gantt.Dependency, stats *Stats) {
	c.Clear(r.palette.background)
	if view.RowEnd >= view.RowStart {
		stats.Rows = view.RowEnd - view.RowStart + 1
	}
	c.Save()
	c.Translate(0, -view.ScrollTop)
	r.renderRows(c, view, elements)
	c.Restore()

	r.renderGrid(c, view, 0, view.Height, false)
	r.renderMarker(c, view, 0, view.Height)
	if view.Matrix == nil || view.Matrix.Scale <= 0 {
		return
	}

	c.Save()
	c.Translate(0, -view.ScrollTop)
	if r.config.ShowDependencies {
		stats.Dependencies = r.renderDependencies(c, view, elements, dependencies)
	}
	r.renderElements(c, view, elements, stats)
	c.Restore()
}

func (r *Renderer) renderRows(c canvas.Canvas, view *View, elements []gantt.Element) {
	for row := view.RowStart; row <= view.RowEnd && row < len(elements); row++ {
		if row < 0 {
			continue
		}
		y := float64(row) * RowHeight
		element := elements[row]
		switch {
		case element.Common().ID == view.SelectedID && view.SelectedID != "":
			c.SetFillColor(r.palette.selectedRow)
		case element.Type() == gantt.TypeGroup:
			c.SetFillColor(r.palette.groupRow)
		case row%2 == 1:
			c.SetFillColor(r.palette.stripe)
		default:
			continue
		}
		c.FillRect(0, y, view.Width, RowHeight)
	}
}

// renderGrid draws vertical grid lines between top and bottom. On the ruler
// the tick sizes apply and major ticks carry labels.
func (r *Renderer) renderGrid(c canvas.Canvas, view *View, top, bottom float64, ruler bool) int {
	if view.Matrix == nil || view.Matrix.Scale <= 0 {
		return 0
	}
	major, minor := timescale.Levels(view.Matrix.Scale)
	count := 0
	levels := []struct {
		step  timescale.Step
		style GridLine
		color color.NRGBA
	}{
		{minor, r.config.Grid.Minor, r.palette.minor},
		{major, r.config.Grid.Major, r.palette.major},
	}
	for i, level := range levels {
		if i == 0 && minor == major {
			continue
		}
		ticks := timescale.Ticks(view.Matrix, view.Width, level.step, view.Location)
		count += len(ticks)
		c.SetStrokeColor(level.color)
		c.SetLineWidth(level.style.LineWidth)
		c.SetLineDash()
		from := top
		if ruler && level.style.TimelineTickSize > 0 {
			from = bottom - level.style.TimelineTickSize
		}
		c.BeginPath()
		for _, tick := range ticks {
			c.MoveTo(tick.X, from)
			c.LineTo(tick.X, bottom)
		}
		c.Stroke()
	}
	return count
}

func (r *Renderer) renderMarker(c canvas.Canvas, view *View, top, bottom float64) {
	if view.CurrentDate <= 0 || view.Matrix == nil {
		return
	}
	x := view.Matrix.TransformPoint(view.CurrentDate)
	if x < 0 || x > view.Width {
		return
	}
	c.SetStrokeColor(r.palette.marker)
	c.SetLineWidth(2)
	c.SetLineDash()
	c.BeginPath()
	c.MoveTo(x, top)
	c.LineTo(x, bottom)
	c.Stroke()
}

// RenderTimeline paints the ruler and returns the number of ticks drawn.
func (r *Renderer) RenderTimeline(c canvas.Canvas, view *View) int {
	width, height := c.Size()
	c.Clear(r.palette.background)
	if view.Matrix == nil || view.Matrix.Scale <= 0 {
		return 0
	}
	count := r.renderGrid(c, view, 0, height, true)

	c.SetStrokeColor(r.palette.major)
	c.SetLineWidth(1)
	c.BeginPath()
	c.MoveTo(0, height-0.5)
	c.LineTo(width, height-0.5)
	c.Stroke()

	major, _ := timescale.Levels(view.Matrix.Scale)
	c.SetFillColor(r.palette.text)
	c.SetTextAlign(canvas.AlignLeft)
	c.SetTextBaseline(canvas.BaselineMiddle)
	size := canvas.FontSize(c.PixelRatio())
	previous := ""
	for _, tick := range timescale.Ticks(view.Matrix, view.Width, major, view.Location) {
		if tick.Context != "" && tick.Context != previous {
			c.SetFont(canvas.Font{Size: size, Bold: true})
			c.FillText(tick.Context, tick.X+4, height*0.3)
			previous = tick.Context
		}
		c.SetFont(canvas.Font{Size: size})
		c.FillText(tick.Label, tick.X+4, height*0.62)
	}
	r.renderMarker(c, view, 0, height)
	return count
}

// CurrentTimeUnit returns the unit labelled on the ruler at scale.
func CurrentTimeUnit(scale float64) timescale.Unit {
	major, _ := timescale.Levels(scale)
	return major.Unit
}

type palette struct {
	task, milestone, group color.NRGBA
	text, background       color.NRGBA
	marker, dependency     color.NRGBA
	highlight              color.NRGBA
	major, minor           color.NRGBA
	stripe                 color.NRGBA
	selectedRow, groupRow  color.NRGBA
	labelBackground        color.NRGBA
	white                  color.NRGBA
}

func newPalette(config Config) palette {
	defaults := DefaultConfig()
	return palette{
		task:            canvas.ColorOr(config.TaskColor, canvas.MustColor(defaults.TaskColor)),
		milestone:       canvas.ColorOr(config.MilestoneColor, canvas.MustColor(defaults.MilestoneColor)),
		group:           canvas.ColorOr(config.GroupColor, canvas.MustColor(defaults.GroupColor)),
		text:            canvas.ColorOr(config.TextColor, canvas.MustColor(defaults.TextColor)),
		background:      canvas.ColorOr(config.BackgroundColor, canvas.MustColor(defaults.BackgroundColor)),
		marker:          canvas.ColorOr(config.MarkerColor, canvas.MustColor(defaults.MarkerColor)),
		dependency:      canvas.ColorOr(config.DependencyColor, canvas.MustColor(defaults.DependencyColor)),
		highlight:       canvas.ColorOr(config.HighlightColor, canvas.MustColor(defaults.HighlightColor)),
		major:           canvas.ColorOr(config.Grid.Major.Color, canvas.MustColor(defaults.Grid.Major.Color)),
		minor:           canvas.ColorOr(config.Grid.Minor.Color, canvas.MustColor(defaults.Grid.Minor.Color)),
		stripe:          canvas.MustColor("#FAFAFA"),
		selectedRow:     canvas.MustColor("rgba(24, 144, 255, 0.1)"),
		groupRow:        canvas.MustColor("rgba(114, 46, 209, 0.05)"),
		labelBackground: canvas.MustColor("rgba(255, 255, 255, 0.65)"),
		white:           canvas.MustColor("#FFFFFF"),
	}
}
