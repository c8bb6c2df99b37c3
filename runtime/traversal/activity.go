package traversal

import (
	"github.com/viant/flowline/model/bpmn"
	"github.com/viant/flowline/model/gantt"
)

// subProcess times a sub-process instance by traversing its children in a
// nested scope. The instance spans the latest child end; without children it
// falls back to its own planned duration. Collapsed sub-processes keep only
// the envelope.
func (r *run) subProcess(sc *scope, entry *Entry, sub *bpmn.SubProcess, start int64) *Timing {
	group := r.emit(sc, entry, sub, start, 0)
	if group == nil {
		return nil
	}
	expanded := sub.IsExpanded()
	mark := len(r.result.Timings)
	var counters map[string]int
	if !expanded {
		counters = make(map[string]int, len(r.counters))
		for k, v := range r.counters {
			counters[k] = v
		}
	}

	child := r.newScope(sub.Elements, sc.level+1, sub, group.InstanceID)
	r.traverse(child, start, entry.PathKey+"/")

	end := start
	for _, timing := range child.emitted {
		if timing.EndTime > end {
			end = timing.EndTime
		}
	}
	if len(child.emitted) == 0 {
		end = start + r.duration(sub)
	}
	group.EndTime = end
	group.Duration = end - start
	if expanded {
		group.IsGroup = true
		for _, timing := range child.emitted {
			group.ChildInstanceIDs = append(group.ChildInstanceIDs, timing.InstanceID)
		}
		return group
	}
	r.result.Timings = r.result.Timings[:mark]
	r.counters = counters
	return group
}

// attachBoundary schedules every boundary event of the host activity off
// this host instance.
func (r *run) attachBoundary(sc *scope, entry *Entry, host *Timing) {
	if host == nil {
		return
	}
	for _, event := range sc.index.Boundary(host.ElementID) {
		from := Provenance{SourceElementID: host.ElementID, SourceInstanceID: host.InstanceID}
		sc.queue = append(sc.queue, entry.advance(event.ID, entry.PathKey, host.StartTime, from))
	}
}

// duration returns the planned duration of element in milliseconds. Values
// are computed once per element; malformed values count as zero and are
// reported once.
func (r *run) duration(element bpmn.Element) int64 {
	base := element.Base()
	if ret, ok := r.durations[base.ID]; ok {
		return ret
	}
	var ret int64
	value, present, err := bpmn.ExtractDuration(element)
	switch {
	case err != nil:
		raw := bpmn.PlannedDuration(element)
		r.engine.logger.Info("malformed planned duration", "elementId", base.ID, "value", raw, "error", err.Error())
		r.issue(element, gantt.SeverityWarning, "malformed planned duration "+raw+", using 0")
	case present:
		ret = value.Milliseconds()
	default:
		r.recordDefault(element)
	}
	r.durations[base.ID] = ret
	return ret
}

func (r *run) recordDefault(element bpmn.Element) {
	var durationType gantt.DurationType
	switch element.Kind() {
	case bpmn.KindTask:
		durationType = gantt.DurationTask
	case bpmn.KindEvent:
		durationType = gantt.DurationEvent
	default:
		return
	}
	base := element.Base()
	if r.defaults[base.ID] {
		return
	}
	r.defaults[base.ID] = true
	r.result.DefaultDurations = append(r.result.DefaultDurations, &gantt.DefaultDuration{
		ElementID:   base.ID,
		ElementType: bpmn.TypeLabel(element),
		ElementName: base.Name,
		Type:        durationType,
	})
}
