package render

import (
	"image/color"
	"math"

	"github.com/viant/flowline/model/gantt"
	"github.com/viant/flowline/render/canvas"
)

const (
	elbowGap     = 8.0
	arrowLength  = 6.0
	arrowSpread  = 4.0
	curveReach   = 30.0
	ghostOpacity = 0.35
)

// renderDependencies draws arrows with at least one end, or a span, within
// the painted rows. Arrows leaving the selected element are drawn last and
// emphasized.
func (r *Renderer) renderDependencies(c canvas.Canvas, view *View, elements []gantt.Element, dependencies []*gantt.Dependency) int {
	if len(dependencies) == 0 {
		return 0
	}
	rows := make(map[string]int, len(elements))
	for i, element := range elements {
		rows[element.Common().ID] = i
	}
	highlighted := map[string]bool{}
	if view.SelectedID != "" {
		for _, dependency := range gantt.Outgoing(dependencies, view.SelectedID) {
			highlighted[dependency.ID] = true
		}
	}
	count := 0
	var emphasized []*gantt.Dependency
	for _, dependency := range dependencies {
		if highlighted[dependency.ID] {
			emphasized = append(emphasized, dependency)
			continue
		}
		if r.drawDependency(c, view, elements, rows, dependency, false) {
			count++
		}
	}
	for _, dependency := range emphasized {
		if r.drawDependency(c, view, elements, rows, dependency, true) {
			count++
		}
	}
	return count
}

func (r *Renderer) drawDependency(c canvas.Canvas, view *View, elements []gantt.Element, rows map[string]int, dependency *gantt.Dependency, highlighted bool) bool {
	sourceRow, ok := rows[dependency.SourceID]
	if !ok {
		return false
	}
	targetRow, ok := rows[dependency.TargetID]
	if !ok {
		return false
	}
	if max(sourceRow, targetRow) < view.RowStart || min(sourceRow, targetRow) > view.RowEnd {
		return false
	}
	source := Layout(elements[sourceRow], sourceRow, view.Matrix, view.Width)
	target := Layout(elements[targetRow], targetRow, view.Matrix, view.Width)
	startToStart := dependency.Type == gantt.StartToStart
	sx := source.X + source.W
	if startToStart {
		sx = source.X
	}
	tx := target.X
	sy := float64(sourceRow)*RowHeight + RowHeight/2
	ty := float64(targetRow)*RowHeight + RowHeight/2
	if math.Max(sx, tx) < 0 || math.Min(sx, tx) > view.Width {
		return false
	}

	c.Save()
	r.dependencyStyle(c, dependency, highlighted)
	c.BeginPath()
	c.MoveTo(sx, sy)
	switch {
	case r.config.CurvedDependencies:
		reach := math.Max(curveReach, math.Abs(tx-sx)/2)
		if startToStart {
			c.BezierCurveTo(sx-reach, sy, tx-reach, ty, tx, ty)
		} else {
			c.BezierCurveTo(sx+reach, sy, tx-reach, ty, tx, ty)
		}
	case startToStart:
		left := math.Min(sx, tx) - elbowGap
		c.LineTo(left, sy)
		c.LineTo(left, ty)
		c.LineTo(tx, ty)
	case tx-sx >= 2*elbowGap:
		c.LineTo(sx+elbowGap, sy)
		c.LineTo(sx+elbowGap, ty)
		c.LineTo(tx, ty)
	default:
		mid := (sy + ty) / 2
		if sourceRow == targetRow {
			mid = sy + RowHeight/2
		}
		c.LineTo(sx+elbowGap, sy)
		c.LineTo(sx+elbowGap, mid)
		c.LineTo(tx-elbowGap, mid)
		c.LineTo(tx-elbowGap, ty)
		c.LineTo(tx, ty)
	}
	c.Stroke()

	c.SetFillColor(r.dependencyColor(dependency, highlighted))
	c.BeginPath()
	c.MoveTo(tx, ty)
	c.LineTo(tx-arrowLength, ty-arrowSpread)
	c.LineTo(tx-arrowLength, ty+arrowSpread)
	c.ClosePath()
	c.Fill()
	c.Restore()
	return true
}

func (r *Renderer) dependencyStyle(c canvas.Canvas, dependency *gantt.Dependency, highlighted bool) {
	width := 1.0
	if highlighted {
		width = 2
	}
	switch dependency.FlowType {
	case gantt.FlowConditional:
		c.SetLineDash(6, 3)
	case gantt.FlowBoundary:
		c.SetLineDash(2, 2)
	case gantt.FlowBoundaryNonInterrupting:
		c.SetLineDash(2, 4)
	case gantt.FlowMessage:
		c.SetLineDash(8, 4)
	default:
		c.SetLineDash()
	}
	c.SetStrokeColor(r.dependencyColor(dependency, highlighted))
	c.SetLineWidth(width)
	if dependency.IsGhost {
		c.SetAlpha(ghostOpacity)
	} else {
		c.SetAlpha(1)
	}
}

func (r *Renderer) dependencyColor(dependency *gantt.Dependency, highlighted bool) color.NRGBA {
	switch {
	case highlighted:
		return r.palette.highlight
	case dependency.FlowType == gantt.FlowDefault:
		return canvas.Lighten(r.palette.dependency, 15)
	}
	return r.palette.dependency
}
