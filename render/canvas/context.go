package canvas

import (
	"image/color"
	"math"
)

// curveSegments is the number of line segments a cubic curve is flattened into.
const curveSegments = 16

// Point is a position in logical pixels.
type Point struct{ X, Y float64 }

// Subpath is a polyline, optionally closed.
type Subpath struct {
	Points []Point
	Closed bool
}

// Rectangle is an axis-aligned box; Max is exclusive.
type Rectangle struct {
	Min, Max Point
}

// Empty reports whether r has no area.
func (r Rectangle) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Intersect returns the overlap of r and o.
func (r Rectangle) Intersect(o Rectangle) Rectangle {
	ret := Rectangle{
		Min: Point{math.Max(r.Min.X, o.Min.X), math.Max(r.Min.Y, o.Min.Y)},
		Max: Point{math.Min(r.Max.X, o.Max.X), math.Min(r.Max.Y, o.Max.Y)},
	}
	if ret.Empty() {
		return Rectangle{}
	}
	return ret
}

// Contains reports whether p lies inside r.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// State is the drawing state captured by Save and restored by Restore.
type State struct {
	FillColor   color.NRGBA
	StrokeColor color.NRGBA
	LineWidth   float64
	LineDash    []float64
	Alpha       float64
	Font        Font
	Align       Align
	Baseline    Baseline
	Offset      Point
	ClipRect    Rectangle
}

// Context carries the state stack and the current path. Backends embed it
// and add the painting operations.
type Context struct {
	State
	stack []State
	path  []Subpath
	// Bounds is the full logical surface
	Bounds Rectangle
}

// Reset restores the initial state for a surface of the given logical size.
func (c *Context) Reset(width, height float64) {
	c.Bounds = Rectangle{Max: Point{width, height}}
	c.State = State{
		FillColor:   color.NRGBA{A: 255},
		StrokeColor: color.NRGBA{A: 255},
		LineWidth:   1,
		Alpha:       1,
		Font:        Font{Size: 12},
		ClipRect:    c.Bounds,
	}
	c.stack = c.stack[:0]
	c.path = nil
}

func (c *Context) Save() {
	saved := c.State
	saved.LineDash = append([]float64(nil), c.LineDash...)
	c.stack = append(c.stack, saved)
}

func (c *Context) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.State = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Context) Translate(dx, dy float64) {
	c.Offset.X += dx
	c.Offset.Y += dy
}

func (c *Context) SetFillColor(col color.Color)   { c.FillColor = NRGBA(col) }
func (c *Context) SetStrokeColor(col color.Color) { c.StrokeColor = NRGBA(col) }
func (c *Context) SetLineWidth(width float64)     { c.LineWidth = width }
func (c *Context) SetFont(font Font)              { c.Font = font }
func (c *Context) SetTextAlign(align Align)       { c.Align = align }
func (c *Context) SetTextBaseline(b Baseline)     { c.Baseline = b }

func (c *Context) SetLineDash(pattern ...float64) {
	c.LineDash = append([]float64(nil), pattern...)
}

func (c *Context) SetAlpha(alpha float64) {
	c.Alpha = math.Max(0, math.Min(1, alpha))
}

func (c *Context) BeginPath() { c.path = c.path[:0] }

func (c *Context) MoveTo(x, y float64) {
	c.path = append(c.path, Subpath{Points: []Point{c.at(x, y)}})
}

func (c *Context) LineTo(x, y float64) {
	if len(c.path) == 0 {
		c.MoveTo(x, y)
		return
	}
	last := &c.path[len(c.path)-1]
	last.Points = append(last.Points, c.at(x, y))
}

func (c *Context) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	if len(c.path) == 0 {
		c.MoveTo(c1x, c1y)
	}
	last := &c.path[len(c.path)-1]
	p0 := last.Points[len(last.Points)-1]
	p1, p2, p3 := c.at(c1x, c1y), c.at(c2x, c2y), c.at(x, y)
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		u := 1 - t
		a, b, cc, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
		last.Points = append(last.Points, Point{
			X: a*p0.X + b*p1.X + cc*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + cc*p2.Y + d*p3.Y,
		})
	}
}

func (c *Context) Rect(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

func (c *Context) ClosePath() {
	if len(c.path) == 0 {
		return
	}
	c.path[len(c.path)-1].Closed = true
}

// Clip narrows the clip region to the bounding box of the current path.
func (c *Context) Clip() {
	c.ClipRect = c.ClipRect.Intersect(c.PathBounds())
}

// Path returns the current path in absolute logical coordinates.
func (c *Context) Path() []Subpath { return c.path }

// PathBounds returns the bounding box of the current path.
func (c *Context) PathBounds() Rectangle {
	first := true
	var ret Rectangle
	for _, sub := range c.path {
		for _, p := range sub.Points {
			if first {
				ret = Rectangle{Min: p, Max: p}
				first = false
				continue
			}
			ret.Min.X, ret.Min.Y = math.Min(ret.Min.X, p.X), math.Min(ret.Min.Y, p.Y)
			ret.Max.X, ret.Max.Y = math.Max(ret.Max.X, p.X), math.Max(ret.Max.Y, p.Y)
		}
	}
	return ret
}

// RectPath replaces the current path with a rectangle; used by FillRect.
func (c *Context) RectPath(x, y, w, h float64) {
	c.BeginPath()
	c.Rect(x, y, w, h)
}

// Origin returns the translated position of (x, y).
func (c *Context) Origin(x, y float64) Point { return c.at(x, y) }

func (c *Context) at(x, y float64) Point {
	return Point{X: x + c.Offset.X, Y: y + c.Offset.Y}
}

// Dash splits a polyline into the visible dashes of pattern.
func Dash(sub Subpath, pattern []float64) []Subpath {
	points := sub.Points
	if sub.Closed && len(points) > 1 {
		points = append(append([]Point(nil), points...), points[0])
	}
	total := 0.0
	for _, v := range pattern {
		total += v
	}
	if len(pattern) == 0 || total <= 0 || len(points) < 2 {
		return []Subpath{{Points: points}}
	}
	if len(pattern)%2 == 1 {
		pattern = append(append([]float64(nil), pattern...), pattern...)
	}
	var ret []Subpath
	idx, left, on := 0, pattern[0], true
	current := []Point{points[0]}
	for i := 1; i < len(points); i++ {
		from, to := points[i-1], points[i]
		length := math.Hypot(to.X-from.X, to.Y-from.Y)
		pos := 0.0
		for length-pos > left {
			pos += left
			t := pos / length
			p := Point{X: from.X + (to.X-from.X)*t, Y: from.Y + (to.Y-from.Y)*t}
			if on {
				ret = append(ret, Subpath{Points: append(current, p)})
			}
			current = []Point{p}
			on = !on
			idx = (idx + 1) % len(pattern)
			left = pattern[idx]
		}
		left -= length - pos
		current = append(current, to)
	}
	if on && len(current) > 1 {
		ret = append(ret, Subpath{Points: current})
	}
	return ret
}
