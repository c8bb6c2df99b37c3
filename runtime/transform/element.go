package transform

import (
	"github.com/viant/flowline/model/bpmn"
	"github.com/viant/flowline/model/gantt"
	"github.com/viant/flowline/runtime/traversal"
)

// converter builds the visual primitive of one timing. Sequence flows and
// unrecognised elements yield nil.
type converter struct {
	timing *traversal.Timing
	base   gantt.Base
	// attachedTo is the timeline id of the boundary host instance
	attachedTo string
}

func newConverter(timing *traversal.Timing, id string) *converter {
	element := timing.Element.Base()
	ret := &converter{timing: timing}
	ret.base = gantt.Base{
		ID:                 id,
		Name:               element.Name,
		Start:              timing.StartTime,
		TypeLabel:          bpmn.TypeLabel(timing.Element),
		SourceID:           timing.ElementID,
		InstanceID:         timing.InstanceID,
		IsPathCutoff:       timing.IsPathCutoff,
		IsLoop:             timing.IsLoop,
		IsLoopCut:          timing.IsLoopCut,
		HierarchyLevel:     timing.HierarchyLevel,
		ParentSubProcessID: timing.ParentSubProcessID,
	}
	if lane := element.Lane; lane != nil {
		ret.base.Lane = &gantt.Lane{ID: lane.ID, Name: lane.Name, Level: lane.Level}
	}
	return ret
}

func (c *converter) Task(*bpmn.Task) gantt.Element {
	return &gantt.Task{Base: c.base, End: c.timing.EndTime}
}

func (c *converter) Event(event *bpmn.Event) gantt.Element {
	if event.IsBoundary() {
		attachedTo := c.attachedTo
		if attachedTo == "" {
			attachedTo = bpmn.ExtractAttachedToID(event)
		}
		cancel := event.Interrupting()
		return &gantt.Milestone{Base: c.base, IsBoundaryEvent: true, AttachedToID: attachedTo, CancelActivity: &cancel}
	}
	ret := &gantt.Milestone{Base: c.base}
	if c.timing.EndTime > c.timing.StartTime {
		ret.End = gantt.Int64(c.timing.EndTime)
	}
	return ret
}

func (c *converter) Gateway(*bpmn.Gateway) gantt.Element {
	ret := &gantt.Milestone{Base: c.base}
	if c.timing.EndTime > c.timing.StartTime {
		ret.End = gantt.Int64(c.timing.EndTime)
	}
	return ret
}

func (c *converter) SequenceFlow(*bpmn.SequenceFlow) gantt.Element { return nil }

func (c *converter) SubProcess(sub *bpmn.SubProcess) gantt.Element {
	if !c.timing.IsGroup {
		return &gantt.Task{Base: c.base, End: c.timing.EndTime}
	}
	return &gantt.Group{
		Base:         c.base,
		End:          c.timing.EndTime,
		ChildIDs:     []string{},
		IsExpanded:   sub.IsExpanded(),
		IsSubProcess: true,
		HasChildren:  len(c.timing.ChildInstanceIDs) > 0,
	}
}

func (c *converter) Unknown(*bpmn.Unknown) gantt.Element { return nil }
