package render

import (
	"image/color"
	"math"

	"github.com/viant/flowline/model/gantt"
	"github.com/viant/flowline/render/canvas"
)

const (
	labelInset     = 4.0
	bracketArm     = 5.0
	rangeBracket   = 6.0
	hatchSpacing   = 6.0
	hatchOpacity   = 0.15
	labelPadding   = 2.0
	milestoneLabel = 200.0
)

// renderElements paints elements whose row falls within the view.
func (r *Renderer) renderElements(c canvas.Canvas, view *View, elements []gantt.Element, stats *Stats) {
	p := &painter{renderer: r, canvas: c, view: view, stats: stats}
	for row := view.RowStart; row <= view.RowEnd && row < len(elements); row++ {
		if row < 0 {
			continue
		}
		element := elements[row]
		stats.Visible = append(stats.Visible, element.Common().ID)
		p.row = row
		p.hovered = element.Common().ID == view.HoveredID && view.HoveredID != ""
		p.box = Layout(element, row, view.Matrix, view.Width)
		if gantt.Match[bool](element, p) {
			stats.Elements++
			if p.box.Fallback {
				stats.Fallbacks++
			}
			continue
		}
		stats.Skipped++
	}
}

// painter draws one element per call; each method reports whether anything was drawn.
type painter struct {
	renderer *Renderer
	canvas   canvas.Canvas
	view     *View
	stats    *Stats
	row      int
	hovered  bool
	box      Box
}

func (p *painter) Task(task *gantt.Task) bool {
	c, box := p.canvas, p.box
	if box.X+box.W < 0 || box.X > p.view.Width {
		return false
	}
	fill := p.fill(task.Color, p.renderer.palette.task)
	c.Save()
	c.BeginPath()
	c.Rect(math.Max(0, box.X), box.Y, math.Min(box.W, p.view.Width-box.X), box.H)
	c.Clip()
	p.style(fill)
	c.FillRect(math.Floor(box.X), math.Floor(box.Y), math.Ceil(box.W), math.Ceil(box.H))
	c.Restore()

	if label := p.label(task); box.W > 20 && label != "" {
		p.text(label, box.X+labelInset, box.Y+box.H/2, box.W-2*labelInset, p.renderer.palette.white, canvas.AlignLeft, canvas.BaselineMiddle, false)
	}
	p.ghostBars(task.GhostOccurrences, canvas.ColorOr(task.Color, p.renderer.palette.task))
	return true
}

func (p *painter) Milestone(milestone *gantt.Milestone) bool {
	c, box := p.canvas, p.box
	start, end := milestone.Span()
	startX, endX := box.Center, box.Center
	if !box.Fallback {
		startX = p.view.Matrix.TransformPoint(start)
		endX = p.view.Matrix.TransformPoint(end)
	}
	if endX < -MilestoneSize || startX > p.view.Width+MilestoneSize {
		return false
	}
	mid := float64(p.row)*RowHeight + RowHeight/2
	fill := p.fill(milestone.Color, p.renderer.palette.milestone)

	if milestone.HasRange() && !box.Fallback && endX-startX > MilestoneSize*1.5 {
		rangeHeight := RowHeight - 8
		rangeY := mid - rangeHeight/2
		left, right := math.Max(startX, 0), math.Min(endX, p.view.Width)
		c.Save()
		c.BeginPath()
		c.Rect(left, rangeY, right-left, rangeHeight)
		c.Clip()
		c.SetStrokeColor(canvas.WithAlpha(fill, hatchOpacity))
		c.SetLineWidth(1)
		c.SetLineDash()
		c.BeginPath()
		// stride is anchored at startX so the hatch does not shift when panning
		origin := startX - rangeHeight
		first := origin + math.Ceil((left-rangeHeight-origin)/hatchSpacing)*hatchSpacing
		for x := math.Max(first, origin); x < right+rangeHeight; x += hatchSpacing {
			c.MoveTo(x, rangeY)
			c.LineTo(x+rangeHeight, rangeY+rangeHeight)
		}
		c.Stroke()
		c.Restore()

		c.Save()
		c.SetStrokeColor(fill)
		c.SetLineWidth(2)
		c.SetAlpha(p.alpha())
		c.BeginPath()
		c.MoveTo(startX+rangeBracket, rangeY)
		c.LineTo(startX, rangeY)
		c.LineTo(startX, rangeY+rangeHeight)
		c.LineTo(startX+rangeBracket, rangeY+rangeHeight)
		c.MoveTo(endX-rangeBracket, rangeY)
		c.LineTo(endX, rangeY)
		c.LineTo(endX, rangeY+rangeHeight)
		c.LineTo(endX-rangeBracket, rangeY+rangeHeight)
		c.Stroke()
		c.Restore()
	}

	c.Save()
	p.style(fill)
	diamond(c, box.Center, mid)
	c.Fill()
	c.Restore()

	if label := p.label(milestone); label != "" {
		p.labelWithBackground(label, box.Center+MilestoneSize/2+labelInset, mid, milestoneLabel)
	}
	p.ghostDiamonds(milestone.GhostOccurrences, canvas.ColorOr(milestone.Color, p.renderer.palette.milestone))
	return true
}

func (p *painter) Group(group *gantt.Group) bool {
	c, box := p.canvas, p.box
	if box.X+box.W < 0 || box.X > p.view.Width {
		return false
	}
	stroke := p.fill(group.Color, p.renderer.palette.group)
	c.Save()
	c.SetStrokeColor(stroke)
	c.SetLineWidth(2)
	c.SetLineDash()
	c.SetAlpha(p.alpha())
	left, right := box.X, box.X+box.W
	c.BeginPath()
	if left >= -bracketArm && left <= p.view.Width {
		c.MoveTo(left+bracketArm, box.Y)
		c.LineTo(left, box.Y)
		c.LineTo(left, box.Y+box.H)
		c.LineTo(left+bracketArm, box.Y+box.H)
	}
	if right >= 0 && right <= p.view.Width+bracketArm {
		c.MoveTo(right-bracketArm, box.Y)
		c.LineTo(right, box.Y)
		c.LineTo(right, box.Y+box.H)
		c.LineTo(right-bracketArm, box.Y+box.H)
	}
	c.Stroke()
	c.Restore()

	if label := p.label(group); box.W > 30 && label != "" {
		base := canvas.ColorOr(group.Color, p.renderer.palette.group)
		p.text(label, box.X+box.W/2, box.Y+2, box.W-10, base, canvas.AlignCenter, canvas.BaselineTop, true)
	}
	p.ghostBars(group.GhostOccurrences, canvas.ColorOr(group.Color, p.renderer.palette.group))
	return true
}

// fill returns the element color, darkened while hovered.
func (p *painter) fill(value string, fallback color.NRGBA) color.NRGBA {
	ret := canvas.ColorOr(value, fallback)
	if p.hovered {
		return canvas.Darken(ret, 10)
	}
	return ret
}

func (p *painter) alpha() float64 {
	if p.hovered {
		return HoverOpacity
	}
	return 1
}

func (p *painter) style(fill color.NRGBA) {
	p.canvas.SetFillColor(fill)
	p.canvas.SetAlpha(p.alpha())
}

func (p *painter) label(element gantt.Element) string {
	base := element.Common()
	if base.Name == "" {
		return ""
	}
	config := p.renderer.config
	return gantt.Decorate(base.Name, base, config.ShowInstanceNumbers, config.ShowLoopIcons)
}

func (p *painter) text(label string, x, y, maxWidth float64, col color.NRGBA, align canvas.Align, baseline canvas.Baseline, bold bool) {
	c := p.canvas
	c.Save()
	c.SetFont(canvas.Font{Size: canvas.FontSize(c.PixelRatio()), Bold: bold})
	c.SetFillColor(col)
	c.SetAlpha(1)
	c.SetTextAlign(align)
	c.SetTextBaseline(baseline)
	c.FillText(canvas.Ellipsize(c, label, maxWidth), x, y)
	c.Restore()
}

func (p *painter) labelWithBackground(label string, x, y, maxWidth float64) {
	c := p.canvas
	size := canvas.FontSize(c.PixelRatio())
	c.Save()
	c.SetFont(canvas.Font{Size: size})
	display := canvas.Ellipsize(c, label, maxWidth)
	width := c.MeasureText(display)
	c.SetAlpha(1)
	c.SetFillColor(p.renderer.palette.labelBackground)
	c.FillRect(x-labelPadding, y-size/2-labelPadding, width+2*labelPadding, size+2*labelPadding)
	c.SetFillColor(p.renderer.palette.text)
	c.SetTextAlign(canvas.AlignLeft)
	c.SetTextBaseline(canvas.BaselineMiddle)
	c.FillText(display, x, y)
	c.Restore()
}

func (p *painter) ghostBars(occurrences []gantt.Occurrence, fill color.NRGBA) {
	if len(occurrences) == 0 {
		return
	}
	c := p.canvas
	y := float64(p.row)*RowHeight + TaskPadding
	height := RowHeight - 2*TaskPadding
	c.Save()
	c.SetAlpha(GhostOpacity)
	c.SetFillColor(fill)
	for _, ghost := range occurrences {
		end := ghost.End
		if end == 0 {
			end = ghost.Start
		}
		x := p.view.Matrix.TransformPoint(ghost.Start)
		width := math.Max(p.view.Matrix.TransformPoint(end)-x, ElementMinWidth)
		if x+width < 0 || x > p.view.Width {
			continue
		}
		c.FillRect(math.Floor(x), math.Floor(y), math.Ceil(width), math.Ceil(height))
		p.stats.Ghosts++
	}
	c.Restore()
}

func (p *painter) ghostDiamonds(occurrences []gantt.Occurrence, fill color.NRGBA) {
	if len(occurrences) == 0 {
		return
	}
	c := p.canvas
	mid := float64(p.row)*RowHeight + RowHeight/2
	c.Save()
	c.SetAlpha(GhostOpacity)
	c.SetFillColor(fill)
	for _, ghost := range occurrences {
		x := p.view.Matrix.TransformPoint(ghost.Start)
		if x < -MilestoneSize || x > p.view.Width+MilestoneSize {
			continue
		}
		diamond(c, x, mid)
		c.Fill()
		p.stats.Ghosts++
	}
	c.Restore()
}

func diamond(c canvas.Canvas, x, y float64) {
	half := MilestoneSize / 2
	c.BeginPath()
	c.MoveTo(x, y-half)
	c.LineTo(x+half, y)
	c.LineTo(x, y+half)
	c.LineTo(x-half, y)
	c.ClosePath()
}
