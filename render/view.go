package render

import (
	"math"
	"time"

	"github.com/viant/flowline/model/gantt"
	"github.com/viant/flowline/render/timescale"
)

// View is the per-frame render context: where the viewport is and what is
// hovered or selected. The renderer reads it and never keeps it.
type View struct {
	Matrix *timescale.Matrix
	// Width and Height of the content viewport in logical pixels.
	Width  float64
	Height float64
	// ScrollTop is the vertical scroll offset of the content layer.
	ScrollTop float64
	// RowStart and RowEnd bound the painted rows, inclusive.
	RowStart int
	RowEnd   int

	HoveredID  string
	SelectedID string
	// CurrentDate draws a marker line when positive.
	CurrentDate int64
	Location    *time.Location
}

// VisibleRows returns the inclusive row range to paint for a scroll offset.
// Rows past the viewport bottom are overscanned; end is -1 when total is 0.
func VisibleRows(scrollTop, viewportHeight float64, total int) (start, end int) {
	if total <= 0 {
		return 0, -1
	}
	start = int(math.Floor(math.Max(scrollTop, 0) / RowHeight))
	end = int(math.Ceil((scrollTop + viewportHeight + Overscan*RowHeight) / RowHeight))
	if start > total-1 {
		start = total - 1
	}
	if end > total-1 {
		end = total - 1
	}
	return start, end
}

// RowAt returns the row under content offset y.
func RowAt(y, scrollTop float64) int {
	return int(math.Floor((y + scrollTop) / RowHeight))
}

// Box is the painted extent of an element in content coordinates.
type Box struct {
	X, Y, W, H float64
	// Center is the diamond position of milestones.
	Center float64
	// Fallback is set when the element has no usable timestamps.
	Fallback bool
}

// Contains reports whether (x, y) lies within b.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// Layout computes the box of element painted on row.
func Layout(element gantt.Element, row int, m *timescale.Matrix, width float64) Box {
	top := float64(row) * RowHeight
	start, end := element.Span()
	switch actual := element.(type) {
	case *gantt.Milestone:
		mid := top + RowHeight/2
		if start <= 0 {
			x := width * 0.15
			return Box{X: x - MilestoneSize/2, Y: mid - MilestoneSize/2, W: MilestoneSize, H: MilestoneSize, Center: x, Fallback: true}
		}
		startX := m.TransformPoint(start)
		if !actual.HasRange() {
			return Box{X: startX - MilestoneSize/2, Y: mid - MilestoneSize/2, W: MilestoneSize, H: MilestoneSize, Center: startX}
		}
		endX := m.TransformPoint(end)
		center := (startX + endX) / 2
		x0 := math.Min(startX, center-MilestoneSize/2)
		x1 := math.Max(endX, center+MilestoneSize/2)
		return Box{X: x0, Y: top + 4, W: x1 - x0, H: RowHeight - 8, Center: center}
	case *gantt.Group:
		x, w, fallback := span(start, end, m, width)
		return Box{X: x, Y: top + 2, W: w, H: RowHeight - 4, Fallback: fallback}
	}
	x, w, fallback := span(start, end, m, width)
	return Box{X: x, Y: top + TaskPadding, W: w, H: RowHeight - 2*TaskPadding, Fallback: fallback}
}

// span maps a time range onto x and width, substituting a fixed position
// for missing timestamps so the element stays visible.
func span(start, end int64, m *timescale.Matrix, width float64) (x, w float64, fallback bool) {
	if start <= 0 || end <= 0 {
		return width * 0.15, width * 0.2, true
	}
	x = m.TransformPoint(start)
	w = math.Max(m.TransformPoint(end)-x, ElementMinWidth)
	return x, w, false
}

// HitTest returns the id of the element under content point (x, y), or "".
func HitTest(elements []gantt.Element, m *timescale.Matrix, width, scrollTop, x, y float64) string {
	row := RowAt(y, scrollTop)
	if row < 0 || row >= len(elements) {
		return ""
	}
	element := elements[row]
	box := Layout(element, row, m, width)
	if box.Contains(x, y+scrollTop) {
		return element.Common().ID
	}
	return ""
}
