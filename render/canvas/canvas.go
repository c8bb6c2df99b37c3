package canvas

import "image/color"

// Align is the horizontal text anchor.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Baseline is the vertical text anchor.
type Baseline int

const (
	BaselineAlphabetic Baseline = iota
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

// Font selects a face by logical size.
type Font struct {
	Size float64
	Bold bool
}

// Canvas is an immediate-mode 2D surface addressed in logical pixels.
// Implementations scale by PixelRatio onto their backing store.
type Canvas interface {
	// Size returns the logical width and height.
	Size() (width, height float64)
	PixelRatio() float64
	// Resize reallocates the backing store and resets the drawing state.
	Resize(width, height, pixelRatio float64)
	Clear(c color.Color)

	Save()
	Restore()
	Translate(dx, dy float64)

	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
	SetLineWidth(width float64)
	SetLineDash(pattern ...float64)
	SetAlpha(alpha float64)
	SetFont(font Font)
	SetTextAlign(align Align)
	SetTextBaseline(baseline Baseline)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64)
	Rect(x, y, w, h float64)
	ClosePath()
	Fill()
	Stroke()
	// Clip intersects the clip region with the bounds of the current path.
	Clip()

	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	FillText(text string, x, y float64)
	MeasureText(text string) float64
}
