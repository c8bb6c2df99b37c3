package chart

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/go-logr/logr"
	xdraw "golang.org/x/image/draw"

	"github.com/viant/flowline/internal/logging"
	"github.com/viant/flowline/model/gantt"
	"github.com/viant/flowline/render"
	"github.com/viant/flowline/render/frame"
	"github.com/viant/flowline/render/timescale"
)

var (
	// ErrClosed is returned by operations on a closed chart.
	ErrClosed = errors.New("chart: closed")
	// ErrNotRaster is returned by Snapshot when a layer has no backing image.
	ErrNotRaster = errors.New("chart: layers are not raster canvases")
)

// pointDuration is the span fitted when all elements share one instant.
const pointDuration = 60 * 60 * 1000

// WheelEvent is a mouse wheel or trackpad gesture over the content layer.
type WheelEvent struct {
	X, Y           float64
	DeltaX, DeltaY float64
	// Ctrl zooms around the cursor instead of scrolling.
	Ctrl bool
}

type imageSource interface {
	Image() *image.RGBA
}

// Chart owns the viewport state of a timeline: zoom, horizontal center,
// vertical scroll, hover and selection. Every change requests a frame; frames
// coalesce so only the latest state paints.
type Chart struct {
	options   Options
	renderer  *render.Renderer
	factory   CanvasFactory
	logger    logr.Logger
	scheduler *frame.Scheduler

	onElementClick func(element gantt.Element)
	onZoomChange   func(zoom float64)
	onViewChange   func(start, end float64)

	mux          sync.Mutex
	layers       render.Layers
	elements     []gantt.Element
	dependencies []*gantt.Dependency
	zoom         float64
	center       float64
	scrollTop    float64
	hoveredID    string
	selectedID   string
	stats        *render.Stats
	lastStart    float64
	lastEnd      float64
	closed       bool
}

// New creates a chart with its ruler and content canvases.
func New(opts ...Option) (*Chart, error) {
	ret := &Chart{options: DefaultOptions(), factory: RasterFactory, logger: logging.Default()}
	for _, opt := range opts {
		opt(ret)
	}
	if err := ret.options.Validate(); err != nil {
		return nil, err
	}
	if ret.renderer == nil {
		ret.renderer = render.New(render.WithLogger(ret.logger))
	}
	var err error
	o := ret.options
	if ret.layers.Timeline, err = ret.factory(o.Width, render.TimelineHeight, o.PixelRatio); err != nil {
		return nil, fmt.Errorf("failed to create timeline canvas: %w", err)
	}
	if ret.layers.Content, err = ret.factory(o.Width, o.Height-render.TimelineHeight, o.PixelRatio); err != nil {
		return nil, fmt.Errorf("failed to create content canvas: %w", err)
	}
	ret.zoom = timescale.ClampZoom(o.Zoom)
	ret.center = float64(o.CurrentDate)
	ret.scheduler = frame.New(o.Frame)
	return ret, nil
}

// SetData replaces the painted rows and requests a frame.
func (c *Chart) SetData(elements []gantt.Element, dependencies []*gantt.Dependency) error {
	c.mux.Lock()
	if c.closed {
		c.mux.Unlock()
		return ErrClosed
	}
	c.elements = elements
	c.dependencies = dependencies
	if c.selectedID != "" && c.rowOf(c.selectedID) < 0 {
		c.selectedID = ""
	}
	c.hoveredID = ""
	c.scrollTop = c.clampScroll(c.scrollTop)
	zoomed := false
	if c.options.AutoFit {
		zoomed = c.fit()
	}
	zoom := c.zoom
	c.mux.Unlock()
	if zoomed {
		c.notifyZoom(zoom)
	}
	return c.Render()
}

// Render requests a frame.
func (c *Chart) Render() error {
	_, err := c.scheduler.Request(c.paint)
	if errors.Is(err, frame.ErrClosed) {
		return ErrClosed
	}
	return err
}

// Flush paints the pending frame now; it reports whether one was pending.
func (c *Chart) Flush(ctx context.Context) bool {
	return c.scheduler.Flush(ctx)
}

// Start paints requested frames until ctx is done or the chart is closed.
func (c *Chart) Start(ctx context.Context) error {
	return c.scheduler.Start(ctx)
}

// Scroll sets the vertical offset of the content layer.
func (c *Chart) Scroll(top float64) {
	c.mux.Lock()
	c.scrollTop = c.clampScroll(top)
	c.mux.Unlock()
	_ = c.Render()
}

// ScrollTop returns the vertical offset of the content layer.
func (c *Chart) ScrollTop() float64 {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.scrollTop
}

// Wheel zooms around the cursor when Ctrl is held; otherwise it pans by
// DeltaX and scrolls by DeltaY.
func (c *Chart) Wheel(event WheelEvent) {
	c.mux.Lock()
	if !event.Ctrl {
		scale := c.scale()
		c.center += event.DeltaX / scale
		c.scrollTop = c.clampScroll(c.scrollTop + event.DeltaY)
		c.mux.Unlock()
		_ = c.Render()
		return
	}
	zoom := timescale.ClampZoom(c.zoom - event.DeltaY/100*c.options.ZoomStep)
	changed := zoom != c.zoom
	if changed {
		m := c.matrix()
		c.zoom = zoom
		c.center = m.ZoomAt(event.X, c.scale()).InverseTransform(c.options.Width / 2)
	}
	c.mux.Unlock()
	if changed {
		c.notifyZoom(zoom)
		_ = c.Render()
	}
}

// SetZoom sets the zoom level in [0, 100], keeping the center time.
func (c *Chart) SetZoom(zoom float64) {
	zoom = timescale.ClampZoom(zoom)
	c.mux.Lock()
	changed := zoom != c.zoom
	c.zoom = zoom
	c.mux.Unlock()
	if changed {
		c.notifyZoom(zoom)
		_ = c.Render()
	}
}

// Zoom returns the zoom level.
func (c *Chart) Zoom() float64 {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.zoom
}

// Pan drags the content by dx pixels; positive dx reveals earlier times.
func (c *Chart) Pan(dx float64) {
	c.mux.Lock()
	c.center = c.matrix().Pan(dx).InverseTransform(c.options.Width / 2)
	c.mux.Unlock()
	_ = c.Render()
}

// CenterOn moves the viewport so t sits at the horizontal center.
func (c *Chart) CenterOn(t float64) {
	c.mux.Lock()
	c.center = t
	c.mux.Unlock()
	_ = c.Render()
}

// Resize changes the chart size and pixel ratio and repaints both layers.
func (c *Chart) Resize(width, height, pixelRatio float64) error {
	c.mux.Lock()
	if c.closed {
		c.mux.Unlock()
		return ErrClosed
	}
	options := c.options
	options.Width, options.Height, options.PixelRatio = width, height, pixelRatio
	if err := options.Validate(); err != nil {
		c.mux.Unlock()
		return err
	}
	c.options = options
	c.layers.Timeline.Resize(width, render.TimelineHeight, pixelRatio)
	c.layers.Content.Resize(width, height-render.TimelineHeight, pixelRatio)
	c.scrollTop = c.clampScroll(c.scrollTop)
	c.mux.Unlock()
	return c.Render()
}

// Hover updates the hovered element from a content-layer point and returns its id.
func (c *Chart) Hover(x, y float64) string {
	c.mux.Lock()
	id := c.hitTest(x, y)
	changed := id != c.hoveredID
	c.hoveredID = id
	c.mux.Unlock()
	if changed {
		_ = c.Render()
	}
	return id
}

// Click toggles the selection of the element under a content-layer point and
// returns the selected id. Clicking empty space clears the selection.
func (c *Chart) Click(x, y float64) string {
	c.mux.Lock()
	id := c.hitTest(x, y)
	var clicked gantt.Element
	switch {
	case id == "" || id == c.selectedID:
		c.selectedID = ""
	default:
		c.selectedID = id
		clicked = c.elements[c.rowOf(id)]
	}
	selected := c.selectedID
	onClick := c.onElementClick
	c.mux.Unlock()
	if clicked != nil && onClick != nil {
		onClick(clicked)
	}
	_ = c.Render()
	return selected
}

// Select sets the selected element; an unknown id clears the selection.
func (c *Chart) Select(id string) {
	c.mux.Lock()
	if c.rowOf(id) < 0 {
		id = ""
	}
	c.selectedID = id
	c.mux.Unlock()
	_ = c.Render()
}

// Selected returns the selected element id.
func (c *Chart) Selected() string {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.selectedID
}

// AutoFit zooms so every timed element fits the width with padding on both
// sides. It reports false when no element has a timestamp.
func (c *Chart) AutoFit() bool {
	c.mux.Lock()
	before := c.zoom
	ok := c.fit()
	zoom := c.zoom
	c.mux.Unlock()
	if !ok {
		return false
	}
	if zoom != before {
		c.notifyZoom(zoom)
	}
	_ = c.Render()
	return true
}

// ScrollToElement brings the row of id to the vertical middle of the viewport
// and centers its time span.
func (c *Chart) ScrollToElement(id string) bool {
	c.mux.Lock()
	row := c.rowOf(id)
	if row < 0 {
		c.mux.Unlock()
		return false
	}
	contentHeight := c.options.Height - render.TimelineHeight
	c.scrollTop = c.clampScroll(float64(row)*render.RowHeight + render.RowHeight/2 - contentHeight/2)
	if start, end := c.elements[row].Span(); start > 0 {
		if end < start {
			end = start
		}
		c.center = float64(start) + float64(end-start)/2
	}
	c.mux.Unlock()
	_ = c.Render()
	return true
}

// VisibleRange returns the time span covered by the chart width.
func (c *Chart) VisibleRange() (start, end float64) {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.matrix().VisibleRange(c.options.Width)
}

// CurrentTimeUnit returns the unit of the major ruler ticks.
func (c *Chart) CurrentTimeUnit() timescale.Unit {
	c.mux.Lock()
	defer c.mux.Unlock()
	return render.CurrentTimeUnit(c.scale())
}

// Stats returns the statistics of the last painted frame, or nil.
func (c *Chart) Stats() *render.Stats {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.stats
}

// FrameStats returns frame scheduling counters.
func (c *Chart) FrameStats() frame.Stats {
	return c.scheduler.Stats()
}

// Layers returns the ruler and content canvases.
func (c *Chart) Layers() render.Layers {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.layers
}

// Snapshot paints any pending frame and writes the ruler stacked over the
// content as a PNG at device resolution.
func (c *Chart) Snapshot(ctx context.Context, w io.Writer) error {
	c.Flush(ctx)
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.closed {
		return ErrClosed
	}
	timeline, ok := c.layers.Timeline.(imageSource)
	if !ok {
		return ErrNotRaster
	}
	content, ok := c.layers.Content.(imageSource)
	if !ok {
		return ErrNotRaster
	}
	top, body := timeline.Image(), content.Image()
	width := max(top.Bounds().Dx(), body.Bounds().Dx())
	composed := image.NewRGBA(image.Rect(0, 0, width, top.Bounds().Dy()+body.Bounds().Dy()))
	xdraw.Draw(composed, top.Bounds(), top, top.Bounds().Min, xdraw.Src)
	offset := image.Pt(0, top.Bounds().Dy())
	xdraw.Draw(composed, body.Bounds().Add(offset), body, body.Bounds().Min, xdraw.Src)
	if err := png.Encode(w, composed); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// Close cancels the pending frame; later requests fail with ErrClosed.
func (c *Chart) Close() {
	c.mux.Lock()
	c.closed = true
	c.mux.Unlock()
	c.scheduler.Close()
}

func (c *Chart) paint(ctx context.Context) {
	c.mux.Lock()
	if c.closed {
		c.mux.Unlock()
		return
	}
	view := c.view()
	stats, err := c.renderer.Render(ctx, c.layers, view, c.elements, c.dependencies)
	if err != nil {
		c.logger.Error(err, "failed to paint frame")
	}
	c.stats = stats
	start, end := view.Matrix.VisibleRange(view.Width)
	changed := start != c.lastStart || end != c.lastEnd
	c.lastStart, c.lastEnd = start, end
	onViewChange := c.onViewChange
	c.mux.Unlock()
	if changed && onViewChange != nil {
		onViewChange(start, end)
	}
}

func (c *Chart) view() *render.View {
	contentHeight := c.options.Height - render.TimelineHeight
	rowStart, rowEnd := render.VisibleRows(c.scrollTop, contentHeight, len(c.elements))
	return &render.View{
		Matrix:      c.matrix(),
		Width:       c.options.Width,
		Height:      contentHeight,
		ScrollTop:   c.scrollTop,
		RowStart:    rowStart,
		RowEnd:      rowEnd,
		HoveredID:   c.hoveredID,
		SelectedID:  c.selectedID,
		CurrentDate: c.options.CurrentDate,
		Location:    c.options.Location,
	}
}

func (c *Chart) scale() float64 {
	return c.options.Curve.CalculateScale(c.zoom)
}

// matrix maps the center time to the middle of the chart width.
func (c *Chart) matrix() *timescale.Matrix {
	scale := c.scale()
	return timescale.FromVisibleStart(c.center-c.options.Width/2/scale, scale)
}

func (c *Chart) fit() bool {
	start, end, ok := gantt.Bounds(c.elements)
	if !ok {
		return false
	}
	duration := end - start
	if duration <= 0 {
		duration = pointDuration
	}
	scale := timescale.FitScale(duration, c.options.Width, c.options.AutoFitPadding)
	c.zoom = c.options.Curve.CalculateZoom(scale)
	c.center = float64(start) + float64(end-start)/2
	return true
}

func (c *Chart) hitTest(x, y float64) string {
	return render.HitTest(c.elements, c.matrix(), c.options.Width, c.scrollTop, x, y)
}

func (c *Chart) rowOf(id string) int {
	for i, element := range c.elements {
		if element.Common().ID == id {
			return i
		}
	}
	return -1
}

func (c *Chart) clampScroll(top float64) float64 {
	limit := float64(len(c.elements))*render.RowHeight - (c.options.Height - render.TimelineHeight)
	return math.Max(0, math.Min(top, math.Max(limit, 0)))
}

func (c *Chart) notifyZoom(zoom float64) {
	if c.onZoomChange != nil {
		c.onZoomChange(zoom)
	}
}
