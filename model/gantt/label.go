package gantt

import "strconv"

const (
	LoopCutGlyph = "✕"
	LoopGlyph    = "↻"
)

// DisplayLabel returns the element name, or its source id, decorated with its instance number
// when several instances exist and, if withIcons is set, a loop glyph.
func DisplayLabel(element Element, withIcons bool) string {
	base := element.Common()
	label := base.Name
	if label == "" {
		label = base.SourceID
	}
	if label == "" {
		label = base.ID
	}
	return Decorate(label, base, true, withIcons)
}

// Decorate appends the instance suffix and loop glyph of base to label.
func Decorate(label string, base *Base, numbers, icons bool) string {
	if numbers && base.InstanceNumber > 0 && base.TotalInstances > 1 {
		label += " #" + strconv.Itoa(base.InstanceNumber)
	}
	if !icons {
		return label
	}
	switch {
	case base.IsLoopCut:
		label += " " + LoopCutGlyph
	case base.IsLoop:
		label += " " + LoopGlyph
	}
	return label
}
