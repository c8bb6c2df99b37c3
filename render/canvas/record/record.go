// Package record provides a canvas that records painting operations instead
// of rasterizing them. It backs headless hit-testing and renderer tests.
package record

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/viant/flowline/render/canvas"
)

// Kind names a recorded operation.
type Kind string

const (
	KindClear  Kind = "clear"
	KindFill   Kind = "fill"
	KindStroke Kind = "stroke"
	KindText   Kind = "text"
)

// Op is one painting operation with the state it was issued under.
type Op struct {
	Kind Kind
	// Bounds of the painted path or text box in logical pixels, before clipping.
	Bounds   canvas.Rectangle
	Clip     canvas.Rectangle
	Color    color.NRGBA
	Alpha    float64
	Width    float64
	Dash     []float64
	Font     canvas.Font
	Text     string
	Align    canvas.Align
	Baseline canvas.Baseline
	Path     []canvas.Subpath
}

// Visible reports whether the op intersects its clip region.
func (o *Op) Visible() bool {
	if o.Kind == KindClear {
		return true
	}
	b := o.Bounds
	if b.Max.X == b.Min.X {
		b.Max.X += 1
	}
	if b.Max.Y == b.Min.Y {
		b.Max.Y += 1
	}
	return !b.Intersect(o.Clip).Empty()
}

// Canvas records operations; text is measured with a fixed advance per rune.
type Canvas struct {
	canvas.Context
	ratio float64
	// Advance is the text width per rune as a fraction of the font size.
	Advance float64
	Ops     []*Op
}

var _ canvas.Canvas = (*Canvas)(nil)

// New creates a recording canvas
func New(width, height, pixelRatio float64) *Canvas {
	ret := &Canvas{Advance: 0.6}
	ret.Resize(width, height, pixelRatio)
	return ret
}

func (c *Canvas) Size() (float64, float64) { return c.Bounds.Max.X, c.Bounds.Max.Y }

func (c *Canvas) PixelRatio() float64 { return c.ratio }

// Resize resets the state and drops recorded operations.
func (c *Canvas) Resize(width, height, pixelRatio float64) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	c.ratio = pixelRatio
	c.Reset(width, height)
	c.Ops = nil
}

func (c *Canvas) Clear(col color.Color) {
	c.Ops = append(c.Ops, &Op{Kind: KindClear, Bounds: c.Bounds, Clip: c.Bounds, Color: canvas.NRGBA(col), Alpha: 1})
}

func (c *Canvas) Fill() { c.paint(KindFill, c.FillColor) }

func (c *Canvas) Stroke() { c.paint(KindStroke, c.StrokeColor) }

func (c *Canvas) FillRect(x, y, w, h float64) {
	c.RectPath(x, y, w, h)
	c.Fill()
}

func (c *Canvas) StrokeRect(x, y, w, h float64) {
	c.RectPath(x, y, w, h)
	c.Stroke()
}

func (c *Canvas) paint(kind Kind, col color.NRGBA) {
	path := make([]canvas.Subpath, len(c.Path()))
	for i, sub := range c.Path() {
		path[i] = canvas.Subpath{Points: append([]canvas.Point(nil), sub.Points...), Closed: sub.Closed}
	}
	c.Ops = append(c.Ops, &Op{
		Kind:   kind,
		Bounds: c.PathBounds(),
		Clip:   c.ClipRect,
		Color:  col,
		Alpha:  c.Alpha,
		Width:  c.LineWidth,
		Dash:   append([]float64(nil), c.LineDash...),
		Path:   path,
	})
}

func (c *Canvas) FillText(text string, x, y float64) {
	origin := c.Origin(x, y)
	width := c.MeasureText(text)
	switch c.Align {
	case canvas.AlignCenter:
		origin.X -= width / 2
	case canvas.AlignRight:
		origin.X -= width
	}
	c.Ops = append(c.Ops, &Op{
		Kind:     KindText,
		Bounds:   canvas.Rectangle{Min: origin, Max: canvas.Point{X: origin.X + width, Y: origin.Y + c.Font.Size}},
		Clip:     c.ClipRect,
		Color:    c.FillColor,
		Alpha:    c.Alpha,
		Font:     c.Font,
		Text:     text,
		Align:    c.Align,
		Baseline: c.Baseline,
	})
}

func (c *Canvas) MeasureText(text string) float64 {
	size := c.Font.Size
	if size <= 0 {
		size = canvas.FontSize(c.ratio)
	}
	return float64(utf8.RuneCountInString(text)) * size * c.Advance
}

// Filter returns the recorded operations of kind.
func (c *Canvas) Filter(kind Kind) []*Op {
	var ret []*Op
	for _, op := range c.Ops {
		if op.Kind == kind {
			ret = append(ret, op)
		}
	}
	return ret
}

// Texts returns the strings drawn, in order.
func (c *Canvas) Texts() []string {
	var ret []string
	for _, op := range c.Filter(KindText) {
		ret = append(ret, op.Text)
	}
	return ret
}

// FindText returns the first text op containing fragment.
func (c *Canvas) FindText(fragment string) *Op {
	for _, op := range c.Filter(KindText) {
		if strings.Contains(op.Text, fragment) {
			return op
		}
	}
	return nil
}

// ResetOps drops recorded operations and keeps the surface.
func (c *Canvas) ResetOps() { c.Ops = c.Ops[:0] }
