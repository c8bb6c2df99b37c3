package traversal

import (
	"strconv"

	"github.com/viant/flowline/model/bpmn"
	"github.com/viant/flowline/model/gantt"
)

// visitor emits the timing of one element instance and returns the timing
// the path continues from, nil when the path ends.
type visitor struct {
	run   *run
	scope *scope
	entry *Entry
}

func (v *visitor) Task(task *bpmn.Task) *Timing {
	return v.run.repeat(v.scope, v.entry, task, task.Loop, func(entry *Entry, start int64) *Timing {
		timing := v.run.emit(v.scope, entry, task, start, v.run.duration(task))
		v.run.attachBoundary(v.scope, entry, timing)
		return timing
	})
}

func (v *visitor) Event(event *bpmn.Event) *Timing {
	if !event.IsBoundary() {
		return v.run.emit(v.scope, v.entry, event, v.entry.CurrentTime, v.run.duration(event))
	}
	// boundary events sit at host start plus their own delay
	delay := v.run.duration(event)
	at := v.entry.CurrentTime + delay
	timing := v.run.emit(v.scope, v.entry, event, at, 0)
	if timing != nil {
		timing.Duration = delay
		timing.AttachedToInstanceID = v.entry.SourceInstanceID
	}
	return timing
}

func (v *visitor) Gateway(gateway *bpmn.Gateway) *Timing {
	return v.run.emit(v.scope, v.entry, gateway, v.entry.CurrentTime, v.run.duration(gateway))
}

func (v *visitor) SequenceFlow(*bpmn.SequenceFlow) *Timing {
	return nil
}

func (v *visitor) SubProcess(subProcess *bpmn.SubProcess) *Timing {
	return v.run.repeat(v.scope, v.entry, subProcess, subProcess.Loop, func(entry *Entry, start int64) *Timing {
		timing := v.run.subProcess(v.scope, entry, subProcess, start)
		v.run.attachBoundary(v.scope, entry, timing)
		return timing
	})
}

func (v *visitor) Unknown(element *bpmn.Unknown) *Timing {
	return v.run.emit(v.scope, v.entry, element, v.entry.CurrentTime, 0)
}

// repeat expands loop characteristics into instances produced by once and
// returns the instance the path continues from.
func (r *run) repeat(sc *scope, entry *Entry, element bpmn.Element, loop *bpmn.LoopCharacteristics, once func(entry *Entry, start int64) *Timing) *Timing {
	if loop == nil {
		return once(entry, entry.CurrentTime)
	}
	options := r.engine.options
	id := element.Base().ID
	switch loop.Type {
	case bpmn.LoopMultiInstance:
		count := loop.Cardinality
		if count <= 0 {
			count = options.MultiInstanceCount
		}
		if count > options.MaxMultiInstance {
			count = options.MaxMultiInstance
		}
		if !loop.IsSequential {
			var last *Timing
			for i := 0; i < count; i++ {
				timing := once(entry, entry.CurrentTime)
				if timing == nil {
					break
				}
				if last == nil || timing.EndTime >= last.EndTime {
					last = timing
				}
			}
			return last
		}
		return r.chain(entry, id, count, false, once)
	case bpmn.LoopStandard:
		count := loop.Maximum
		unbounded := count <= 0
		if unbounded {
			count = options.MaxLoopDepth + 1
		}
		return r.chain(entry, id, count, unbounded, once)
	}
	r.issue(element, gantt.SeverityWarning, "unsupported loop characteristics "+string(loop.Type))
	return once(entry, entry.CurrentTime)
}

// chain runs count instances back to back. Each follow-up instance records a
// synthetic provenance pointing at its predecessor.
func (r *run) chain(entry *Entry, elementID string, count int, markCut bool, once func(entry *Entry, start int64) *Timing) *Timing {
	var last *Timing
	current := entry
	for i := 0; i < count; i++ {
		start := entry.CurrentTime
		if last != nil {
			start = last.EndTime
			current = &Entry{
				ElementID:        entry.ElementID,
				PathKey:          entry.PathKey,
				CurrentTime:      start,
				Visited:          entry.Visited,
				PathVisits:       entry.PathVisits,
				FlowID:           LoopFlowID(elementID, i),
				SourceElementID:  elementID,
				SourceInstanceID: last.InstanceID,
			}
		}
		timing := once(current, start)
		if timing == nil {
			break
		}
		if i > 0 {
			timing.IsLoop = true
			timing.IsLoopInstance = true
		}
		last = timing
	}
	if markCut && last != nil {
		last.IsLoopCut = true
	}
	return last
}

// LoopFlowID names the synthetic flow linking consecutive loop instances.
func LoopFlowID(elementID string, iteration int) string {
	return elementID + "_loop_" + strconv.Itoa(iteration)
}
